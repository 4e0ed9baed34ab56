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

// CreateParticipant adds a participant to an event.
func (s *SQLiteStore) CreateParticipant(ctx context.Context, p *models.Participant) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO participants (id, event_id, name, email, iban, bic, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.EventID, p.Name, p.Email, p.IBAN, p.BIC, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

// ListParticipants retrieves an event's participants in insertion order.
// rowid preserves insertion order even when two rows share a created_at
// second; netting relies on this for its deterministic tie-break.
func (s *SQLiteStore) ListParticipants(ctx context.Context, eventID string) ([]*models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event_id, name, email, iban, bic, created_at
		 FROM participants WHERE event_id = ? ORDER BY rowid`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		p := &models.Participant{}
		if err := rows.Scan(&p.ID, &p.EventID, &p.Name, &p.Email, &p.IBAN, &p.BIC, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// DeleteParticipant removes a participant unless the ledger references them.
func (s *SQLiteStore) DeleteParticipant(ctx context.Context, eventID, participantID string) error {
	var refs int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM (
			SELECT 1 FROM expenses WHERE payer_id = ?1
			UNION ALL
			SELECT 1 FROM expense_beneficiaries WHERE participant_id = ?1
		)`,
		participantID,
	).Scan(&refs)
	if err != nil {
		return fmt.Errorf("failed to check participant references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("participant %s: %w", participantID, storage.ErrInUse)
	}

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM participants WHERE id = ? AND event_id = ?",
		participantID, eventID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("participant %s: %w", participantID, storage.ErrNotFound)
	}
	return nil
}

// participantExists reports whether a participant belongs to the event.
func (s *SQLiteStore) participantExists(ctx context.Context, eventID, participantID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM participants WHERE id = ? AND event_id = ?",
		participantID, eventID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check participant: %w", err)
	}
	return true, nil
}
