package models

// Debt represents a derived pairwise transfer that would settle part of the
// outstanding balances of an event. Debts are recomputed fresh from the
// expense ledger on every query; they carry no identity and are never
// persisted or mutated. Marking a debt paid means appending a settlement
// expense to the ledger, not flipping Settled on this value.
type Debt struct {
	// DebtorID is the participant who owes.
	DebtorID string

	// CreditorID is the participant who is owed. Never equal to DebtorID.
	CreditorID string

	// Amount is the transfer amount in the display currency, rounded to two
	// decimal places. Always positive.
	Amount float64

	// Settled reports whether this debt has been paid. Freshly derived debts
	// are always outstanding; settled pairs simply stop appearing.
	Settled bool
}

// Balance represents the net position of one participant: positive means the
// participant is owed money, negative means they owe. Derived, not stored.
type Balance struct {
	// ParticipantID identifies the participant.
	ParticipantID string

	// Amount is the net balance in the display currency.
	Amount float64
}
