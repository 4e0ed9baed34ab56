package models

// Event represents one shared-expense event (a trip, a dinner, a household).
// An event owns its participants and its expense ledger; balances and debts
// are derived from the ledger on demand and are never stored.
type Event struct {
	// ID is the unique identifier for the event (UUID format).
	ID string

	// Title is the display name of the event (e.g., "Ski Trip 2026").
	Title string

	// CreatedAt is the Unix timestamp when the event was created.
	CreatedAt int64
}
