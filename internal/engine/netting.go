package engine

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	// zeroThreshold is half a cent in the display currency: balances within
	// it of zero are treated as settled.
	zeroThreshold = 0.005

	// conservationEpsilon bounds how far the balance sum may drift from zero
	// before the input is considered corrupt.
	conservationEpsilon = 1e-6
)

// party is one side of the netting: amount is always positive (the credit
// for creditors, the debt magnitude for debtors), order is the participant
// insertion index used as a stable tie-break.
type party struct {
	id     string
	amount float64
	order  int
}

// NetDebts reduces net balances to an ordered list of pairwise debts by
// repeatedly matching the largest creditor with the largest debtor and
// settling the smaller of the two amounts. Ties between equal balances break
// on participantOrder, so the output is deterministic for a given input.
//
// Each emitted amount is rounded to two decimal places, half up, at emission
// only; the residual sub-cent imbalance this leaves (bounded by the number of
// debts) is display noise, not an error.
//
// The greedy matching produces the minimum transfer count when there is a
// single creditor or a single debtor. For general many-to-many imbalances it
// is a heuristic.
func NetDebts(balances map[string]float64, participantOrder []string) ([]Debt, error) {
	var sum float64
	for _, b := range balances {
		sum += b
	}
	if math.Abs(sum) > conservationEpsilon {
		return nil, fmt.Errorf("%w: balance sum is %g, want 0", ErrInvariant, sum)
	}

	order := make(map[string]int, len(participantOrder))
	for i, id := range participantOrder {
		order[id] = i
	}

	var creditors, debtors []party
	for _, id := range participantOrder {
		bal := balances[id]
		switch {
		case bal > zeroThreshold:
			creditors = append(creditors, party{id: id, amount: bal, order: order[id]})
		case bal < -zeroThreshold:
			debtors = append(debtors, party{id: id, amount: -bal, order: order[id]})
		}
	}

	var debts []Debt
	for len(creditors) > 0 && len(debtors) > 0 {
		ci := largest(creditors)
		di := largest(debtors)
		creditor := &creditors[ci]
		debtor := &debtors[di]

		if debtor.id == creditor.id {
			return nil, fmt.Errorf("%w: %s owes itself", ErrInvariant, debtor.id)
		}

		transfer := math.Min(creditor.amount, debtor.amount)
		amount := round2(transfer)
		if amount < 0 {
			return nil, fmt.Errorf("%w: negative transfer %v", ErrInvariant, amount)
		}
		if amount > 0 {
			debts = append(debts, Debt{
				DebtorID:   debtor.id,
				CreditorID: creditor.id,
				Amount:     amount,
			})
		}

		creditor.amount -= transfer
		debtor.amount -= transfer
		if creditor.amount <= zeroThreshold {
			creditors = remove(creditors, ci)
		}
		if debtor.amount <= zeroThreshold {
			debtors = remove(debtors, di)
		}
	}

	return debts, nil
}

// largest returns the index of the party with the biggest amount, breaking
// ties on insertion order.
func largest(parties []party) int {
	best := 0
	for i := 1; i < len(parties); i++ {
		if parties[i].amount > parties[best].amount ||
			(parties[i].amount == parties[best].amount && parties[i].order < parties[best].order) {
			best = i
		}
	}
	return best
}

func remove(parties []party, i int) []party {
	return append(parties[:i], parties[i+1:]...)
}

// round2 rounds to two decimal places, half up. Going through decimal avoids
// the usual float trap where e.g. 3.335 is stored as 3.33499... and would
// round down.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
