package worker

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
)

// FollowUpEscalationWorker bumps the priority of open leads whose follow-up
// date has passed, so overdue leads surface at the top of the pipeline.
type FollowUpEscalationWorker struct {
	db           *sql.DB
	tickInterval time.Duration
}

func NewFollowUpEscalationWorker(db *sql.DB) *FollowUpEscalationWorker {
	return &FollowUpEscalationWorker{
		db:           db,
		tickInterval: 15 * time.Minute,
	}
}

func (w *FollowUpEscalationWorker) Start(ctx context.Context) {
	log.Println("follow-up escalation worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.escalateOverdue(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("follow-up escalation worker stopped")
			return
		case <-ticker.C:
			w.escalateOverdue(ctx)
		}
	}
}

func (w *FollowUpEscalationWorker) escalateOverdue(ctx context.Context) {
	// Closed and archived leads are left alone. The CTE captures the old
	// priority so each escalation lands in the audit trail.
	query := `
		WITH overdue AS (
			SELECT id, user_id, priority
			FROM leads
			WHERE next_follow_up < NOW()
			  AND priority NOT IN ('HIGH', 'URGENT')
			  AND status NOT IN ('CLOSED_WON', 'CLOSED_LOST', 'ARCHIVED')
			FOR UPDATE SKIP LOCKED
		)
		UPDATE leads
		SET priority = 'HIGH', updated_at = NOW()
		FROM overdue
		WHERE leads.id = overdue.id
		RETURNING overdue.id, overdue.user_id, overdue.priority
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("failed to escalate overdue follow-ups: %v", err)
		return
	}
	defer rows.Close()

	type escalated struct {
		leadID, userID, oldPriority string
	}
	var hits []escalated
	for rows.Next() {
		var e escalated
		if err := rows.Scan(&e.leadID, &e.userID, &e.oldPriority); err != nil {
			log.Printf("failed to scan escalated lead: %v", err)
			continue
		}
		hits = append(hits, e)
	}
	if err := rows.Err(); err != nil {
		log.Printf("escalation query failed: %v", err)
	}

	for _, e := range hits {
		w.recordEscalation(ctx, e.leadID, e.userID, e.oldPriority)
	}

	if len(hits) > 0 {
		log.Printf("escalated %d overdue lead(s) to HIGH priority", len(hits))
	}
}

func (w *FollowUpEscalationWorker) recordEscalation(ctx context.Context, leadID, userID, oldPriority string) {
	changes, err := json.Marshal(map[string]any{
		"priority": map[string]any{"old": oldPriority, "new": "HIGH"},
	})
	if err != nil {
		return
	}

	_, err = w.db.ExecContext(ctx, `
		INSERT INTO lead_history (id, lead_id, user_id, action, changes, created_at)
		VALUES ($1, $2, $3, 'UPDATE', $4, NOW())
	`, uuid.New().String(), leadID, userID, changes)
	if err != nil {
		log.Printf("failed to record escalation for lead %s: %v", leadID, err)
	}
}
