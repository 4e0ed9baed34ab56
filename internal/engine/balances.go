package engine

import "fmt"

// ComputeBalances folds an expense ledger into a net balance per participant:
// each expense credits its payer with the full amount and debits every
// beneficiary an equal share. A payer who is also a beneficiary receives the
// share deduction like anyone else, netting down their own credit.
//
// Shares are not rounded here. Rounding happens once, at debt emission in
// NetDebts, so rounding error cannot accumulate across many small expenses.
//
// The sum of all returned balances is zero up to floating-point noise: every
// expense redistributes a fixed total. Callers rely on this conservation
// property and NetDebts enforces it.
func ComputeBalances(expenses []Expense, participantIDs []string) (map[string]float64, error) {
	balances := make(map[string]float64, len(participantIDs))
	for _, id := range participantIDs {
		balances[id] = 0
	}

	for _, exp := range expenses {
		if exp.Amount <= 0 {
			return nil, fmt.Errorf("%w: got %v", ErrNonPositiveAmount, exp.Amount)
		}
		if len(exp.Beneficiaries) == 0 {
			return nil, fmt.Errorf("%w: payer %s", ErrNoBeneficiaries, exp.PayerID)
		}
		if _, ok := balances[exp.PayerID]; !ok {
			return nil, fmt.Errorf("%w: payer %s", ErrUnknownParticipant, exp.PayerID)
		}

		balances[exp.PayerID] += exp.Amount

		share := exp.Amount / float64(len(exp.Beneficiaries))
		for _, id := range exp.Beneficiaries {
			if _, ok := balances[id]; !ok {
				return nil, fmt.Errorf("%w: beneficiary %s", ErrUnknownParticipant, id)
			}
			balances[id] -= share
		}
	}

	return balances, nil
}
