package database

import (
	"context"
	"database/sql"

	"github.com/leadflowhq/leadflow/internal/entity"
)

type InteractionRepository struct {
	DB *sql.DB
}

func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

func (r *InteractionRepository) Create(ctx context.Context, i *entity.Interaction) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO interactions (id, lead_id, user_id, type, subject, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, i.ID, i.LeadID, i.UserID, string(i.Type), nullString(i.Subject), i.Content, i.CreatedAt)
	return err
}

func (r *InteractionRepository) ListByLead(ctx context.Context, leadID, userID string, limit int) ([]*entity.Interaction, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, lead_id, user_id, type, subject, content, created_at
		FROM interactions
		WHERE lead_id = $1 AND user_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`, leadID, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interactions []*entity.Interaction
	for rows.Next() {
		var i entity.Interaction
		var subject sql.NullString
		if err := rows.Scan(&i.ID, &i.LeadID, &i.UserID, &i.Type, &subject, &i.Content, &i.CreatedAt); err != nil {
			return nil, err
		}
		i.Subject = subject.String
		interactions = append(interactions, &i)
	}
	return interactions, rows.Err()
}
