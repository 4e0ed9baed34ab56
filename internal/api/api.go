// Package api exposes the event ledger and its derived debt views over a
// JSON HTTP API. It is plumbing around the service layer: request decoding,
// error mapping, response encoding, nothing else.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/splitty/splitty/internal/currency"
	"github.com/splitty/splitty/internal/engine"
	"github.com/splitty/splitty/internal/service"
	"github.com/splitty/splitty/internal/storage"
)

// Server holds the API handlers for one EventService.
type Server struct {
	svc             *service.EventService
	defaultCurrency string
}

// NewServer creates an API server. defaultCurrency is the display currency
// used when a request does not pass ?currency=.
func NewServer(svc *service.EventService, defaultCurrency string) *Server {
	return &Server{svc: svc, defaultCurrency: defaultCurrency}
}

// Register attaches all API routes to the given mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/events", s.createEvent)
	mux.HandleFunc("GET /api/events", s.listEvents)
	mux.HandleFunc("GET /api/events/{id}", s.getEvent)
	mux.HandleFunc("DELETE /api/events/{id}", s.deleteEvent)

	mux.HandleFunc("POST /api/events/{id}/participants", s.addParticipant)
	mux.HandleFunc("GET /api/events/{id}/participants", s.listParticipants)
	mux.HandleFunc("DELETE /api/events/{id}/participants/{pid}", s.removeParticipant)

	mux.HandleFunc("POST /api/events/{id}/expenses", s.addExpense)
	mux.HandleFunc("GET /api/events/{id}/expenses", s.listExpenses)
	mux.HandleFunc("DELETE /api/events/{id}/expenses/{eid}", s.removeExpense)

	mux.HandleFunc("GET /api/events/{id}/balances", s.balances)
	mux.HandleFunc("GET /api/events/{id}/debts", s.debts)
	mux.HandleFunc("POST /api/events/{id}/settlements", s.settle)
}

// displayCurrency resolves the display currency for a request.
func (s *Server) displayCurrency(r *http.Request) string {
	if c := r.URL.Query().Get("currency"); c != "" {
		return c
	}
	return s.defaultCurrency
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP status codes: bad input 400,
// missing records 404, ledger conflicts 409, unavailable rates 502, violated
// engine invariants 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, engine.ErrNoBeneficiaries),
		errors.Is(err, engine.ErrNonPositiveAmount),
		errors.Is(err, engine.ErrUnknownParticipant):
		status = http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, storage.ErrInUse):
		status = http.StatusConflict
	case errors.Is(err, currency.ErrRateUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, engine.ErrInvariant):
		slog.Error("Engine invariant violated", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
