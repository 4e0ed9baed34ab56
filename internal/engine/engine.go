// Package engine computes per-participant balances and the pairwise debts
// that settle them. It is the algorithmic core of Splitty: pure functions of
// their inputs, no I/O, no shared state, safe to call concurrently against
// independent ledger snapshots.
package engine

import "errors"

// Validation errors reject bad expenses before any computation runs.
var (
	// ErrNoBeneficiaries is returned for an expense with an empty
	// beneficiary set.
	ErrNoBeneficiaries = errors.New("expense has no beneficiaries")

	// ErrNonPositiveAmount is returned for an expense whose amount is zero
	// or negative.
	ErrNonPositiveAmount = errors.New("expense amount must be positive")

	// ErrUnknownParticipant is returned when an expense references a payer
	// or beneficiary that is not part of the event.
	ErrUnknownParticipant = errors.New("expense references unknown participant")
)

// ErrInvariant marks a violated internal invariant: a non-conserving balance
// set, a self-debt, or a negative transfer. These indicate a bug, not bad
// user input, and netting aborts rather than emit an inconsistent list.
var ErrInvariant = errors.New("netting invariant violated")

// Expense carries the minimal expense information needed for balance
// calculation. Amounts must already be converted to the display currency;
// conversion is the caller's concern and always starts from the original
// recorded amount.
type Expense struct {
	PayerID       string
	Amount        float64
	Beneficiaries []string
}

// Debt is a single transfer from debtor to creditor. Output of NetDebts.
type Debt struct {
	DebtorID   string
	CreditorID string
	Amount     float64
}
