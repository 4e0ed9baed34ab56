package engine

import (
	"errors"
	"math"
	"testing"
)

func TestNetDebts(t *testing.T) {
	tests := []struct {
		name     string
		balances map[string]float64
		order    []string
		want     []Debt
	}{
		{
			name:     "single creditor two debtors, larger debtor first",
			balances: map[string]float64{"P1": 60, "P2": -15, "P3": -45},
			order:    []string{"P1", "P2", "P3"},
			want: []Debt{
				{DebtorID: "P3", CreditorID: "P1", Amount: 45},
				{DebtorID: "P2", CreditorID: "P1", Amount: 15},
			},
		},
		{
			name:     "single debtor two creditors",
			balances: map[string]float64{"A": -100, "B": 70, "C": 30},
			order:    []string{"A", "B", "C"},
			want: []Debt{
				{DebtorID: "A", CreditorID: "B", Amount: 70},
				{DebtorID: "A", CreditorID: "C", Amount: 30},
			},
		},
		{
			// C(-120) is the largest debtor against A(100), settling 100.
			// Then D(-70) outweighs C's remaining 20 against B(90).
			name:     "many to many",
			balances: map[string]float64{"A": 100, "B": 90, "C": -120, "D": -70},
			order:    []string{"A", "B", "C", "D"},
			want: []Debt{
				{DebtorID: "C", CreditorID: "A", Amount: 100},
				{DebtorID: "D", CreditorID: "B", Amount: 70},
				{DebtorID: "C", CreditorID: "B", Amount: 20},
			},
		},
		{
			name:     "equal balances tie-break on insertion order",
			balances: map[string]float64{"A": 50, "B": 50, "C": -50, "D": -50},
			order:    []string{"A", "B", "C", "D"},
			want: []Debt{
				{DebtorID: "C", CreditorID: "A", Amount: 50},
				{DebtorID: "D", CreditorID: "B", Amount: 50},
			},
		},
		{
			name:     "all settled within threshold",
			balances: map[string]float64{"A": 0.004, "B": -0.004},
			order:    []string{"A", "B"},
			want:     nil,
		},
		{
			name:     "empty input",
			balances: map[string]float64{},
			order:    nil,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NetDebts(tt.balances, tt.order)
			if err != nil {
				t.Fatalf("NetDebts() error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("NetDebts() = %v, want %v", got, tt.want)
			}
			for i, want := range tt.want {
				if got[i].DebtorID != want.DebtorID || got[i].CreditorID != want.CreditorID {
					t.Errorf("debt[%d] = %s->%s, want %s->%s",
						i, got[i].DebtorID, got[i].CreditorID, want.DebtorID, want.CreditorID)
				}
				if math.Abs(got[i].Amount-want.Amount) > 0.005 {
					t.Errorf("debt[%d] amount = %v, want %v", i, got[i].Amount, want.Amount)
				}
			}
		})
	}
}

func TestNetDebtsProperties(t *testing.T) {
	balances := map[string]float64{
		"A": 123.41, "B": -41.13, "C": -7.55, "D": -100.03, "E": 25.30,
	}
	order := []string{"A", "B", "C", "D", "E"}

	debts, err := NetDebts(balances, order)
	if err != nil {
		t.Fatalf("NetDebts() error: %v", err)
	}

	t.Run("no self debt", func(t *testing.T) {
		for _, d := range debts {
			if d.DebtorID == d.CreditorID {
				t.Errorf("self debt emitted for %s", d.DebtorID)
			}
			if d.Amount <= 0 {
				t.Errorf("non-positive debt %v from %s", d.Amount, d.DebtorID)
			}
		}
	})

	t.Run("per-party totals match balances", func(t *testing.T) {
		// Within rounding, everything a creditor receives equals their
		// positive balance, and everything a debtor pays equals their debit.
		totals := make(map[string]float64)
		for _, d := range debts {
			totals[d.CreditorID] += d.Amount
			totals[d.DebtorID] -= d.Amount
		}
		tolerance := 0.01 * float64(len(debts))
		for id, bal := range balances {
			if math.Abs(totals[id]-bal) > tolerance {
				t.Errorf("party %s settled %v, balance %v", id, totals[id], bal)
			}
		}
	})

	t.Run("idempotent on unchanged balances", func(t *testing.T) {
		again, err := NetDebts(balances, order)
		if err != nil {
			t.Fatalf("NetDebts() error: %v", err)
		}
		if len(again) != len(debts) {
			t.Fatalf("second run emitted %d debts, first %d", len(again), len(debts))
		}
		for i := range debts {
			if again[i] != debts[i] {
				t.Errorf("debt[%d] differs across runs: %v vs %v", i, debts[i], again[i])
			}
		}
	})
}

func TestNetDebtsRounding(t *testing.T) {
	// 10 split three ways leaves repeating decimals; emitted amounts must be
	// rounded half-up to cents, not truncated.
	balances, err := ComputeBalances([]Expense{
		{PayerID: "A", Amount: 10, Beneficiaries: []string{"B", "C", "D"}},
	}, []string{"A", "B", "C", "D"})
	if err != nil {
		t.Fatalf("ComputeBalances() error: %v", err)
	}

	debts, err := NetDebts(balances, []string{"A", "B", "C", "D"})
	if err != nil {
		t.Fatalf("NetDebts() error: %v", err)
	}
	if len(debts) != 3 {
		t.Fatalf("got %d debts, want 3", len(debts))
	}
	for _, d := range debts {
		if d.Amount != 3.33 {
			t.Errorf("debt %s->%s = %v, want 3.33", d.DebtorID, d.CreditorID, d.Amount)
		}
	}
}

func TestNetDebtsInvariants(t *testing.T) {
	t.Run("non-conserving balances abort", func(t *testing.T) {
		_, err := NetDebts(map[string]float64{"A": 10, "B": -3}, []string{"A", "B"})
		if !errors.Is(err, ErrInvariant) {
			t.Fatalf("NetDebts() error = %v, want ErrInvariant", err)
		}
	})
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{3.333333, 3.33},
		{3.335, 3.34}, // half rounds up, despite 3.335 being stored as 3.3349…
		{15.0, 15.0},
		{0.005, 0.01},
		{44.999999999, 45.0},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
