package models

// Participant represents a person sharing expenses within one event.
// Identity is immutable once created; the bank fields only matter to
// settlement notification surfaces, never to the balance engine.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// EventID is the event this participant belongs to.
	EventID string

	// Name is the display name of the participant.
	Name string

	// Email is an optional contact address for debt reminders.
	Email string

	// IBAN is an optional bank account number for settling debts.
	IBAN string

	// BIC is an optional bank identifier code, paired with IBAN.
	BIC string

	// CreatedAt is the Unix timestamp when the participant was added.
	// Insertion order doubles as the stable tie-break in debt netting.
	CreatedAt int64
}
