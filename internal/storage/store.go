// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitty/splitty/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
// Implementations wrap it with the missing ID.
var ErrNotFound = errors.New("not found")

// ErrInUse is returned when deleting a participant that the expense ledger
// still references.
var ErrInUse = errors.New("participant referenced by expenses")

// Store defines the interface for event ledger storage. The expense ledger it
// holds is the source of truth; balances and debts are always derived from a
// snapshot read through this interface, never persisted.
type Store interface {
	// CreateEvent persists a new event, populating ID and CreatedAt.
	CreateEvent(ctx context.Context, event *models.Event) error

	// GetEvent retrieves an event by ID.
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)

	// ListEvents retrieves all events, newest first.
	ListEvents(ctx context.Context) ([]*models.Event, error)

	// DeleteEvent removes an event with its participants and expenses.
	DeleteEvent(ctx context.Context, eventID string) error

	// CreateParticipant adds a participant to an event, populating ID and
	// CreatedAt.
	CreateParticipant(ctx context.Context, p *models.Participant) error

	// ListParticipants retrieves an event's participants in insertion order.
	// That order is the deterministic tie-break used by debt netting.
	ListParticipants(ctx context.Context, eventID string) ([]*models.Participant, error)

	// DeleteParticipant removes a participant. Returns ErrInUse if any
	// expense still references them as payer or beneficiary.
	DeleteParticipant(ctx context.Context, eventID, participantID string) error

	// CreateExpense persists an expense with its beneficiary set, populating
	// ID and CreatedAt.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID, including beneficiaries.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpenses retrieves an event's expenses oldest first, including
	// beneficiaries. The returned slice is a consistent ledger snapshot.
	ListExpenses(ctx context.Context, eventID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense and its beneficiary rows.
	DeleteExpense(ctx context.Context, eventID, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
