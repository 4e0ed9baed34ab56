// Package service orchestrates the event ledger: validation, currency
// normalization, and the derived balance/debt views computed by the engine.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/splitty/splitty/internal/currency"
	"github.com/splitty/splitty/internal/engine"
	"github.com/splitty/splitty/internal/models"
	"github.com/splitty/splitty/internal/storage"
)

// ErrInvalidInput is returned for requests rejected before any computation or
// write: missing fields, non-positive amounts, unknown participants, bad
// currency codes.
var ErrInvalidInput = errors.New("invalid input")

// EventService owns all operations on one event's ledger and its derived
// views. Balances and debts are recomputed from a fresh ledger snapshot on
// every call; the service never stores them.
type EventService struct {
	store     storage.Store
	converter *currency.Converter

	// now is stubbed in tests to pin settlement dates.
	now func() time.Time
}

// NewEventService creates an EventService on the given store and converter.
func NewEventService(store storage.Store, converter *currency.Converter) *EventService {
	return &EventService{store: store, converter: converter, now: time.Now}
}

// CreateEvent creates a new event with the given title.
func (s *EventService) CreateEvent(ctx context.Context, title string) (*models.Event, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: event title required", ErrInvalidInput)
	}
	event := &models.Event{Title: title}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	slog.Info("Event created", "event_id", event.ID, "title", title)
	return event, nil
}

// GetEvent retrieves an event by ID.
func (s *EventService) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	return s.store.GetEvent(ctx, eventID)
}

// ListEvents retrieves all events.
func (s *EventService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	return s.store.ListEvents(ctx)
}

// DeleteEvent removes an event and its entire ledger.
func (s *EventService) DeleteEvent(ctx context.Context, eventID string) error {
	return s.store.DeleteEvent(ctx, eventID)
}

// AddParticipant adds a participant to an event.
func (s *EventService) AddParticipant(ctx context.Context, eventID string, p *models.Participant) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: participant name required", ErrInvalidInput)
	}
	if _, err := s.store.GetEvent(ctx, eventID); err != nil {
		return err
	}
	p.EventID = eventID
	return s.store.CreateParticipant(ctx, p)
}

// ListParticipants retrieves an event's participants in insertion order.
func (s *EventService) ListParticipants(ctx context.Context, eventID string) ([]*models.Participant, error) {
	return s.store.ListParticipants(ctx, eventID)
}

// RemoveParticipant removes a participant that the ledger does not reference.
func (s *EventService) RemoveParticipant(ctx context.Context, eventID, participantID string) error {
	return s.store.DeleteParticipant(ctx, eventID, participantID)
}

// AddExpense validates and records an expense on the event's ledger.
// Duplicate beneficiaries collapse to one share; the recorded amount and
// currency are immutable afterwards.
func (s *EventService) AddExpense(ctx context.Context, eventID string, expense *models.Expense) error {
	if expense.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %v", ErrInvalidInput, expense.Amount)
	}
	if err := validCurrency(expense.Currency); err != nil {
		return err
	}
	if len(expense.Beneficiaries) == 0 {
		return fmt.Errorf("%w: at least one beneficiary required", ErrInvalidInput)
	}

	known, err := s.participantSet(ctx, eventID)
	if err != nil {
		return err
	}
	if !known[expense.PayerID] {
		return fmt.Errorf("%w: unknown payer %s", ErrInvalidInput, expense.PayerID)
	}
	seen := make(map[string]bool, len(expense.Beneficiaries))
	var beneficiaries []string
	for _, id := range expense.Beneficiaries {
		if !known[id] {
			return fmt.Errorf("%w: unknown beneficiary %s", ErrInvalidInput, id)
		}
		if !seen[id] {
			seen[id] = true
			beneficiaries = append(beneficiaries, id)
		}
	}
	expense.Beneficiaries = beneficiaries

	expense.EventID = eventID
	if expense.Date.IsZero() {
		expense.Date = s.now()
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return err
	}
	slog.Info("Expense recorded",
		"event_id", eventID,
		"expense_id", expense.ID,
		"payer_id", expense.PayerID,
		"amount", expense.Amount,
		"currency", expense.Currency,
		"category", expense.Category,
	)
	return nil
}

// ListExpenses retrieves an event's ledger, oldest first.
func (s *EventService) ListExpenses(ctx context.Context, eventID string) ([]*models.Expense, error) {
	return s.store.ListExpenses(ctx, eventID)
}

// RemoveExpense deletes an expense from the ledger.
func (s *EventService) RemoveExpense(ctx context.Context, eventID, expenseID string) error {
	return s.store.DeleteExpense(ctx, eventID, expenseID)
}

// Balances recomputes every participant's net position in displayCurrency
// from the current ledger snapshot. Each expense converts from its original
// recorded currency at its own occurrence date.
func (s *EventService) Balances(ctx context.Context, eventID, displayCurrency string) ([]models.Balance, error) {
	balances, order, err := s.computeBalances(ctx, eventID, displayCurrency)
	if err != nil {
		return nil, err
	}

	result := make([]models.Balance, 0, len(order))
	for _, id := range order {
		result = append(result, models.Balance{ParticipantID: id, Amount: balances[id]})
	}
	return result, nil
}

// Debts recomputes the outstanding pairwise debts of an event in
// displayCurrency. The returned debts are derived values; settling one goes
// through Settle, never through mutating the returned records.
func (s *EventService) Debts(ctx context.Context, eventID, displayCurrency string) ([]models.Debt, error) {
	balances, order, err := s.computeBalances(ctx, eventID, displayCurrency)
	if err != nil {
		return nil, err
	}

	netted, err := engine.NetDebts(balances, order)
	if err != nil {
		return nil, err
	}

	debts := make([]models.Debt, 0, len(netted))
	for _, d := range netted {
		debts = append(debts, models.Debt{
			DebtorID:   d.DebtorID,
			CreditorID: d.CreditorID,
			Amount:     d.Amount,
		})
	}
	return debts, nil
}

// Settle records that debtor paid creditor the given amount, by appending a
// settlement expense to the ledger: payer = debtor, sole beneficiary =
// creditor, reserved settlement category, dated now. The next recomputation
// cancels the pair's imbalance; nothing else is mutated. An accidental
// settlement is corrected with a compensating expense, not by deleting
// history.
func (s *EventService) Settle(ctx context.Context, eventID, debtorID, creditorID string, amount float64, displayCurrency string) (*models.Expense, error) {
	if debtorID == creditorID {
		return nil, fmt.Errorf("%w: debtor and creditor must differ", ErrInvalidInput)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: settlement amount must be positive, got %v", ErrInvalidInput, amount)
	}
	if err := validCurrency(displayCurrency); err != nil {
		return nil, err
	}

	known, err := s.participantSet(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !known[debtorID] {
		return nil, fmt.Errorf("%w: unknown debtor %s", ErrInvalidInput, debtorID)
	}
	if !known[creditorID] {
		return nil, fmt.Errorf("%w: unknown creditor %s", ErrInvalidInput, creditorID)
	}

	expense := &models.Expense{
		EventID:       eventID,
		PayerID:       debtorID,
		Amount:        amount,
		Currency:      displayCurrency,
		Description:   "Debt settlement",
		Category:      models.CategorySettlement,
		Beneficiaries: []string{creditorID},
		Date:          s.now(),
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	slog.Info("Debt settled",
		"event_id", eventID,
		"debtor_id", debtorID,
		"creditor_id", creditorID,
		"amount", amount,
		"currency", displayCurrency,
	)
	return expense, nil
}

// computeBalances snapshots the ledger, converts every expense to the display
// currency, and runs the balance engine. Returns the balance map plus the
// participant insertion order used as the netting tie-break.
func (s *EventService) computeBalances(ctx context.Context, eventID, displayCurrency string) (map[string]float64, []string, error) {
	if err := validCurrency(displayCurrency); err != nil {
		return nil, nil, err
	}
	if _, err := s.store.GetEvent(ctx, eventID); err != nil {
		return nil, nil, err
	}

	participants, err := s.store.ListParticipants(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := s.store.ListExpenses(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	order := make([]string, 0, len(participants))
	for _, p := range participants {
		order = append(order, p.ID)
	}

	converted := make([]engine.Expense, 0, len(expenses))
	for _, e := range expenses {
		amount, err := s.converter.Convert(ctx, e.Amount, e.Date, e.Currency, displayCurrency)
		if err != nil {
			return nil, nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		converted = append(converted, engine.Expense{
			PayerID:       e.PayerID,
			Amount:        amount,
			Beneficiaries: e.Beneficiaries,
		})
	}

	balances, err := engine.ComputeBalances(converted, order)
	if err != nil {
		return nil, nil, err
	}
	return balances, order, nil
}

// participantSet returns the IDs of an event's participants as a lookup set.
func (s *EventService) participantSet(ctx context.Context, eventID string) (map[string]bool, error) {
	if _, err := s.store.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	participants, err := s.store.ListParticipants(ctx, eventID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(participants))
	for _, p := range participants {
		set[p.ID] = true
	}
	return set, nil
}

// validCurrency checks the shape of an ISO 4217 code.
func validCurrency(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("%w: currency code %q", ErrInvalidInput, code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("%w: currency code %q", ErrInvalidInput, code)
		}
	}
	return nil
}
