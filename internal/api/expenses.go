package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/splitty/splitty/internal/models"
	"github.com/splitty/splitty/internal/service"
)

// expenseDateFormat is the calendar-date form accepted and emitted by the API.
const expenseDateFormat = "2006-01-02"

type expenseRequest struct {
	PayerID       string   `json:"payer_id"`
	Amount        float64  `json:"amount"`
	Currency      string   `json:"currency"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Beneficiaries []string `json:"beneficiaries"`
	Date          string   `json:"date"` // YYYY-MM-DD, defaults to today
}

type expenseResponse struct {
	ID            string   `json:"id"`
	PayerID       string   `json:"payer_id"`
	Amount        float64  `json:"amount"`
	Currency      string   `json:"currency"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category,omitempty"`
	Beneficiaries []string `json:"beneficiaries"`
	Date          string   `json:"date"`
	CreatedAt     int64    `json:"created_at"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	return expenseResponse{
		ID:            e.ID,
		PayerID:       e.PayerID,
		Amount:        e.Amount,
		Currency:      e.Currency,
		Description:   e.Description,
		Category:      e.Category,
		Beneficiaries: e.Beneficiaries,
		Date:          e.Date.Format(expenseDateFormat),
		CreatedAt:     e.CreatedAt,
	}
}

func (s *Server) addExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	expense := &models.Expense{
		PayerID:       req.PayerID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Description:   req.Description,
		Category:      req.Category,
		Beneficiaries: req.Beneficiaries,
	}
	if req.Date != "" {
		date, err := time.Parse(expenseDateFormat, req.Date)
		if err != nil {
			writeError(w, fmt.Errorf("%w: date %q, want YYYY-MM-DD", service.ErrInvalidInput, req.Date))
			return
		}
		expense.Date = date
	}

	if err := s.svc.AddExpense(r.Context(), r.PathValue("id"), expense); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.svc.ListExpenses(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		resp = append(resp, toExpenseResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) removeExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RemoveExpense(r.Context(), r.PathValue("id"), r.PathValue("eid")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
