package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitty/splitty/internal/models"
	"github.com/splitty/splitty/internal/storage"
)

// dateFormat stores expense dates as calendar dates, not timestamps, because
// exchange rates are keyed by calendar date.
const dateFormat = "2006-01-02"

// CreateExpense persists an expense and its beneficiary set in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	ok, err := s.participantExists(ctx, expense.EventID, expense.PayerID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("payer %s: %w", expense.PayerID, storage.ErrNotFound)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, event_id, payer_id, amount, currency, description, category, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.EventID, expense.PayerID, expense.Amount, expense.Currency,
		expense.Description, expense.Category, expense.Date.Format(dateFormat), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, participantID := range expense.Beneficiaries {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_beneficiaries (expense_id, participant_id) VALUES (?, ?)",
			expense.ID, participantID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert beneficiary: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including its beneficiaries.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var date string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, event_id, payer_id, amount, currency, description, category, date, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.EventID, &expense.PayerID, &expense.Amount, &expense.Currency,
		&expense.Description, &expense.Category, &date, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	expense.Date, err = time.Parse(dateFormat, date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expense date: %w", err)
	}

	expense.Beneficiaries, err = s.listBeneficiaries(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses retrieves an event's expense ledger, oldest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, eventID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event_id, payer_id, amount, currency, description, category, date, created_at
		 FROM expenses WHERE event_id = ? ORDER BY created_at, rowid`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var date string
		if err := rows.Scan(&expense.ID, &expense.EventID, &expense.PayerID, &expense.Amount,
			&expense.Currency, &expense.Description, &expense.Category, &date, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Date, err = time.Parse(dateFormat, date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse expense date: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		expense.Beneficiaries, err = s.listBeneficiaries(ctx, expense.ID)
		if err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// DeleteExpense removes an expense; beneficiary rows cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, eventID, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND event_id = ?",
		expenseID, eventID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) listBeneficiaries(ctx context.Context, expenseID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant_id FROM expense_beneficiaries WHERE expense_id = ? ORDER BY participant_id",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get beneficiaries: %w", err)
	}
	defer rows.Close()

	var beneficiaries []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan beneficiary: %w", err)
		}
		beneficiaries = append(beneficiaries, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate beneficiaries: %w", err)
	}
	return beneficiaries, nil
}
