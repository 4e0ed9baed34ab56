package models

import "time"

// CategorySettlement is the reserved expense category that records a paid
// debt in the ledger. Expenses in this category are what make a settlement
// durable: the next recomputation cancels the settled debt out.
const CategorySettlement = "debt settlement"

// Expense represents a single payment made by one participant on behalf of a
// set of beneficiaries. The amount and currency recorded at creation time are
// immutable; display-currency conversion always starts from these originals
// so repeated conversion cannot compound drift.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// EventID is the event whose ledger this expense belongs to.
	EventID string

	// PayerID is the participant who paid. The payer need not be a
	// beneficiary.
	PayerID string

	// Amount is the amount paid, in Currency. Always positive.
	Amount float64

	// Currency is the ISO 4217 code the amount was paid in (e.g., "EUR").
	Currency string

	// Description is a human-readable label for the expense.
	Description string

	// Category is a free-form tag. CategorySettlement is reserved.
	Category string

	// Beneficiaries are the participant IDs the payment was made for.
	// Never empty; order carries no meaning.
	Beneficiaries []string

	// Date is the calendar date the expense occurred on. Exchange rates are
	// resolved against this date, not against query time.
	Date time.Time

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
