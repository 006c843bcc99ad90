package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/leadflowhq/leadflow/internal/entity"
)

type HistoryRepository struct {
	DB *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{DB: db}
}

// Record appends one audit entry. lead_id carries no foreign key on purpose:
// the audit trail must survive the hard delete of its lead.
func (r *HistoryRepository) Record(ctx context.Context, h *entity.LeadHistory) error {
	changes, err := json.Marshal(h.Changes)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO lead_history (id, lead_id, user_id, action, changes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, h.ID, h.LeadID, h.UserID, h.Action, changes, h.CreatedAt)
	return err
}

func (r *HistoryRepository) ListByLead(ctx context.Context, leadID, userID string, limit int) ([]*entity.LeadHistory, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, lead_id, user_id, action, changes, created_at
		FROM lead_history
		WHERE lead_id = $1 AND user_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`, leadID, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*entity.LeadHistory
	for rows.Next() {
		var h entity.LeadHistory
		var changes []byte
		if err := rows.Scan(&h.ID, &h.LeadID, &h.UserID, &h.Action, &changes, &h.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(changes, &h.Changes); err != nil {
			return nil, err
		}
		entries = append(entries, &h)
	}
	return entries, rows.Err()
}
