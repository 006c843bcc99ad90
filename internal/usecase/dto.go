package usecase

import (
	"time"

	"github.com/leadflowhq/leadflow/internal/entity"
)

// AuthUser is the authenticated identity passed explicitly into every use
// case. Business logic never reads ambient session state.
type AuthUser struct {
	ID    string
	Name  string
	Email string
}

// LeadInput is the external payload shape for creating or importing a lead.
type LeadInput struct {
	Name        string   `json:"name,omitempty"`
	Company     string   `json:"company,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
	Description string   `json:"description,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Status      string   `json:"status,omitempty"`
	Source      string   `json:"source,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Score       *int     `json:"score,omitempty"`
	AssignedTo  string   `json:"assigned_to,omitempty"`

	NextFollowUp *time.Time `json:"next_follow_up,omitempty"`

	// Extraction metadata, set by the paste-import pipeline.
	RawInput   string   `json:"raw_input,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// UpdateLeadInput is a patch: nil fields are left untouched.
type UpdateLeadInput struct {
	Name        *string    `json:"name,omitempty"`
	Company     *string    `json:"company,omitempty"`
	Email       *string    `json:"email,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Website     *string    `json:"website,omitempty"`
	Description *string    `json:"description,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Source      *string    `json:"source,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
	Score       *int       `json:"score,omitempty"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
	NextFollowUp *time.Time `json:"next_follow_up,omitempty"`
}

type ImportLeadsInput struct {
	// RawText is free pasted text; it is extracted into candidates.
	RawText string `json:"raw_text,omitempty"`
	// Entries takes precedence over RawText when provided.
	Entries []LeadInput `json:"entries,omitempty"`
}

// ImportResult is the per-item outcome of a bulk import.
type ImportResult struct {
	Index     int    `json:"index"`
	Success   bool   `json:"success"`
	LeadID    string `json:"lead_id,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
	Error     string `json:"error,omitempty"`
}

type ImportLeadsOutput struct {
	SuccessCount int            `json:"success_count"`
	FailedCount  int            `json:"failed_count"`
	Results      []ImportResult `json:"results"`
}

type ListLeadsInput struct {
	Search   string
	Status   []string
	Source   []string
	Priority []string
	DateFrom *time.Time
	DateTo   *time.Time
	ScoreMin *int
	ScoreMax *int
	Tags     []string
	Assigned *bool

	Page      int
	PerPage   int
	SortBy    string
	SortOrder string
}

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

type ListLeadsOutput struct {
	Leads      []*entity.Lead `json:"leads"`
	Pagination Pagination     `json:"pagination"`
}

type GetLeadOutput struct {
	Lead         *entity.Lead          `json:"lead"`
	Interactions []*entity.Interaction `json:"interactions"`
	History      []*entity.LeadHistory `json:"history"`
}

type AddInteractionInput struct {
	LeadID  string `json:"lead_id"`
	Type    string `json:"type"`
	Subject string `json:"subject,omitempty"`
	Content string `json:"content"`
}

// StatsData is what the repository aggregates; the use case derives the
// conversion rate from it.
type StatsData struct {
	Total          int
	ByStatus       map[string]int
	BySource       map[string]int
	ByPriority     map[string]int
	AverageScore   float64
	RecentActivity int
}

type LeadStatsOutput struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"by_status"`
	BySource       map[string]int `json:"by_source"`
	ByPriority     map[string]int `json:"by_priority"`
	AverageScore   float64        `json:"average_score"`
	RecentActivity int            `json:"recent_activity"`
	ConversionRate float64        `json:"conversion_rate"`
}
