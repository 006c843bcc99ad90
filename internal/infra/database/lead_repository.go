package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/leadflowhq/leadflow/internal/entity"
	"github.com/leadflowhq/leadflow/internal/usecase"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, user_id, name, company, email, phone, website, description, notes,
	status, source, priority, score, tags, raw_input, confidence, assigned_to,
	created_at, updated_at, last_contacted_at, next_follow_up`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			id, user_id, name, company, email, phone, website, description, notes,
			status, source, priority, score, tags, raw_input, confidence, assigned_to,
			created_at, updated_at, last_contacted_at, next_follow_up
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID, lead.UserID,
		nullString(lead.Name), nullString(lead.Company), nullString(lead.Email),
		nullString(lead.Phone), nullString(lead.Website),
		nullString(lead.Description), nullString(lead.Notes),
		string(lead.Status), string(lead.Source), string(lead.Priority),
		lead.Score, pq.Array(lead.Tags),
		nullString(lead.RawInput), lead.Confidence, nullString(lead.AssignedTo),
		lead.CreatedAt, lead.UpdatedAt, lead.LastContactedAt, lead.NextFollowUp,
	)
	if err != nil {
		return r.translateUnique(ctx, err, lead.UserID, lead.Email)
	}
	return nil
}

// translateUnique turns the (user_id, lower(email)) constraint violation into
// the domain duplicate error. The constraint is the authoritative duplicate
// signal; the pre-insert check in the use case only exists for a nicer path.
func (r *LeadRepository) translateUnique(ctx context.Context, err error, userID, email string) error {
	pqErr, ok := err.(*pq.Error)
	if !ok || pqErr.Code != "23505" {
		return err
	}

	dup := &usecase.DuplicateLeadError{Email: email}
	if existing, findErr := r.FindByEmail(ctx, userID, email); findErr == nil && existing != nil {
		dup.DuplicateID = existing.ID
	}
	return dup
}

func (r *LeadRepository) FindByID(ctx context.Context, id, userID string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1 AND user_id = $2`
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return lead, err
}

func (r *LeadRepository) FindByEmail(ctx context.Context, userID, email string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE user_id = $1 AND lower(email) = lower($2)`
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, userID, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return lead, err
}

// Whitelisted sort columns; anything else falls back to created_at.
var sortColumns = map[string]string{
	"name":       "name",
	"company":    "company",
	"email":      "email",
	"status":     "status",
	"priority":   "priority",
	"score":      "score",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

func (r *LeadRepository) List(ctx context.Context, userID string, filter usecase.ListLeadsInput) ([]*entity.Lead, int, error) {
	where := []string{"user_id = $1"}
	args := []any{userID}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		where = append(where, fmt.Sprintf(
			"(name ILIKE %[1]s OR email ILIKE %[1]s OR company ILIKE %[1]s OR description ILIKE %[1]s OR notes ILIKE %[1]s)", p))
	}
	if len(filter.Status) > 0 {
		where = append(where, "status = ANY("+arg(pq.Array(filter.Status))+")")
	}
	if len(filter.Source) > 0 {
		where = append(where, "source = ANY("+arg(pq.Array(filter.Source))+")")
	}
	if len(filter.Priority) > 0 {
		where = append(where, "priority = ANY("+arg(pq.Array(filter.Priority))+")")
	}
	if filter.DateFrom != nil {
		where = append(where, "created_at >= "+arg(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		where = append(where, "created_at <= "+arg(*filter.DateTo))
	}
	if filter.ScoreMin != nil {
		where = append(where, "score >= "+arg(*filter.ScoreMin))
	}
	if filter.ScoreMax != nil {
		where = append(where, "score <= "+arg(*filter.ScoreMax))
	}
	if len(filter.Tags) > 0 {
		where = append(where, "tags @> "+arg(pq.Array(filter.Tags)))
	}
	if filter.Assigned != nil {
		if *filter.Assigned {
			where = append(where, "assigned_to IS NOT NULL")
		} else {
			where = append(where, "assigned_to IS NULL")
		}
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM leads WHERE " + whereClause
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortCol, ok := sortColumns[filter.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	order := "DESC"
	if filter.SortOrder == "asc" {
		order = "ASC"
	}

	query := fmt.Sprintf(
		"SELECT %s FROM leads WHERE %s ORDER BY %s %s LIMIT %s OFFSET %s",
		leadColumns, whereClause, sortCol, order,
		arg(filter.PerPage), arg((filter.Page-1)*filter.PerPage),
	)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}
	return leads, total, rows.Err()
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET
			name = $3, company = $4, email = $5, phone = $6, website = $7,
			description = $8, notes = $9, status = $10, source = $11, priority = $12,
			score = $13, tags = $14, assigned_to = $15, updated_at = $16,
			next_follow_up = $17
		WHERE id = $1 AND user_id = $2
	`

	res, err := r.DB.ExecContext(ctx, query,
		lead.ID, lead.UserID,
		nullString(lead.Name), nullString(lead.Company), nullString(lead.Email),
		nullString(lead.Phone), nullString(lead.Website),
		nullString(lead.Description), nullString(lead.Notes),
		string(lead.Status), string(lead.Source), string(lead.Priority),
		lead.Score, pq.Array(lead.Tags), nullString(lead.AssignedTo),
		lead.UpdatedAt, lead.NextFollowUp,
	)
	if err != nil {
		return r.translateUnique(ctx, err, lead.UserID, lead.Email)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *LeadRepository) DeleteMany(ctx context.Context, ids []string, userID string) (int, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM leads WHERE id = ANY($1) AND user_id = $2`,
		pq.Array(ids), userID,
	)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	return int(affected), err
}

func (r *LeadRepository) TouchLastContacted(ctx context.Context, id, userID string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET last_contacted_at = NOW() WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	return err
}

func (r *LeadRepository) Stats(ctx context.Context, userID string) (*usecase.StatsData, error) {
	data := &usecase.StatsData{
		ByStatus:   map[string]int{},
		BySource:   map[string]int{},
		ByPriority: map[string]int{},
	}

	summary := `
		SELECT COUNT(*),
		       COALESCE(AVG(score), 0),
		       COUNT(*) FILTER (WHERE updated_at >= NOW() - INTERVAL '7 days')
		FROM leads WHERE user_id = $1
	`
	if err := r.DB.QueryRowContext(ctx, summary, userID).
		Scan(&data.Total, &data.AverageScore, &data.RecentActivity); err != nil {
		return nil, err
	}

	for column, dst := range map[string]map[string]int{
		"status":   data.ByStatus,
		"source":   data.BySource,
		"priority": data.ByPriority,
	} {
		if err := r.groupCount(ctx, userID, column, dst); err != nil {
			return nil, err
		}
	}

	return data, nil
}

func (r *LeadRepository) groupCount(ctx context.Context, userID, column string, dst map[string]int) error {
	// column comes from a fixed set above, never from user input.
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM leads WHERE user_id = $1 GROUP BY %s`, column, column)
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		dst[key] = count
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var name, company, email, phone, website, description, notes sql.NullString
	var rawInput, assignedTo sql.NullString
	var score sql.NullInt64
	var confidence sql.NullFloat64
	var lastContactedAt, nextFollowUp sql.NullTime
	var tags pq.StringArray

	err := row.Scan(
		&lead.ID, &lead.UserID, &name, &company, &email, &phone, &website,
		&description, &notes, &lead.Status, &lead.Source, &lead.Priority,
		&score, &tags, &rawInput, &confidence, &assignedTo,
		&lead.CreatedAt, &lead.UpdatedAt, &lastContactedAt, &nextFollowUp,
	)
	if err != nil {
		return nil, err
	}

	lead.Name = name.String
	lead.Company = company.String
	lead.Email = email.String
	lead.Phone = phone.String
	lead.Website = website.String
	lead.Description = description.String
	lead.Notes = notes.String
	lead.RawInput = rawInput.String
	lead.AssignedTo = assignedTo.String
	lead.Tags = tags
	if lead.Tags == nil {
		lead.Tags = []string{}
	}
	if score.Valid {
		v := int(score.Int64)
		lead.Score = &v
	}
	if confidence.Valid {
		v := confidence.Float64
		lead.Confidence = &v
	}
	if lastContactedAt.Valid {
		t := lastContactedAt.Time
		lead.LastContactedAt = &t
	}
	if nextFollowUp.Valid {
		t := nextFollowUp.Time
		lead.NextFollowUp = &t
	}

	return &lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
