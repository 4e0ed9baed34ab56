package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/splitty/splitty/internal/service"
)

type balanceResponse struct {
	ParticipantID string  `json:"participant_id"`
	Amount        float64 `json:"amount"`
}

type debtResponse struct {
	DebtorID   string  `json:"debtor_id"`
	CreditorID string  `json:"creditor_id"`
	Amount     float64 `json:"amount"`
	Settled    bool    `json:"settled"`
}

func (s *Server) balances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.svc.Balances(r.Context(), r.PathValue("id"), s.displayCurrency(r))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]balanceResponse, 0, len(balances))
	for _, b := range balances {
		resp = append(resp, balanceResponse{ParticipantID: b.ParticipantID, Amount: b.Amount})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) debts(w http.ResponseWriter, r *http.Request) {
	debts, err := s.svc.Debts(r.Context(), r.PathValue("id"), s.displayCurrency(r))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]debtResponse, 0, len(debts))
	for _, d := range debts {
		resp = append(resp, debtResponse{
			DebtorID:   d.DebtorID,
			CreditorID: d.CreditorID,
			Amount:     d.Amount,
			Settled:    d.Settled,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type settleRequest struct {
	DebtorID   string  `json:"debtor_id"`
	CreditorID string  `json:"creditor_id"`
	Amount     float64 `json:"amount"`
}

type settleResponse struct {
	Settlement expenseResponse `json:"settlement"`
	Debts      []debtResponse  `json:"debts"`
}

// settle records a settlement expense for the pair and returns the recomputed
// debt list, which no longer contains the settled debt.
func (s *Server) settle(w http.ResponseWriter, r *http.Request) {
	var req settleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	eventID := r.PathValue("id")
	displayCurrency := s.displayCurrency(r)

	expense, err := s.svc.Settle(r.Context(), eventID, req.DebtorID, req.CreditorID, req.Amount, displayCurrency)
	if err != nil {
		writeError(w, err)
		return
	}

	debts, err := s.svc.Debts(r.Context(), eventID, displayCurrency)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := settleResponse{Settlement: toExpenseResponse(expense)}
	resp.Debts = make([]debtResponse, 0, len(debts))
	for _, d := range debts {
		resp.Debts = append(resp.Debts, debtResponse{
			DebtorID:   d.DebtorID,
			CreditorID: d.CreditorID,
			Amount:     d.Amount,
			Settled:    d.Settled,
		})
	}
	writeJSON(w, http.StatusCreated, resp)
}

// decodeJSON decodes a request body, mapping malformed JSON to a validation
// error.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", service.ErrInvalidInput, err)
	}
	return nil
}
