package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type LeadStatus string

const (
	StatusNew         LeadStatus = "NEW"
	StatusContacted   LeadStatus = "CONTACTED"
	StatusQualified   LeadStatus = "QUALIFIED"
	StatusProposal    LeadStatus = "PROPOSAL"
	StatusNegotiation LeadStatus = "NEGOTIATION"
	StatusClosedWon   LeadStatus = "CLOSED_WON"
	StatusClosedLost  LeadStatus = "CLOSED_LOST"
	StatusArchived    LeadStatus = "ARCHIVED"
)

type LeadSource string

const (
	SourceManual        LeadSource = "MANUAL"
	SourceImport        LeadSource = "IMPORT"
	SourceAPI           LeadSource = "API"
	SourceWebsite       LeadSource = "WEBSITE"
	SourceReferral      LeadSource = "REFERRAL"
	SourceSocialMedia   LeadSource = "SOCIAL_MEDIA"
	SourceEmailCampaign LeadSource = "EMAIL_CAMPAIGN"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

var AllStatuses = []LeadStatus{
	StatusNew, StatusContacted, StatusQualified, StatusProposal,
	StatusNegotiation, StatusClosedWon, StatusClosedLost, StatusArchived,
}

var AllSources = []LeadSource{
	SourceManual, SourceImport, SourceAPI, SourceWebsite,
	SourceReferral, SourceSocialMedia, SourceEmailCampaign,
}

var AllPriorities = []Priority{
	PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent,
}

func ValidStatus(s LeadStatus) bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func ValidSource(s LeadSource) bool {
	for _, v := range AllSources {
		if v == s {
			return true
		}
	}
	return false
}

func ValidPriority(p Priority) bool {
	for _, v := range AllPriorities {
		if v == p {
			return true
		}
	}
	return false
}

type Lead struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Company     string `json:"company,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
	Notes       string `json:"notes,omitempty"`

	Status   LeadStatus `json:"status"`
	Source   LeadSource `json:"source"`
	Priority Priority   `json:"priority"`
	Score    *int       `json:"score,omitempty"` // 0-100
	Tags     []string   `json:"tags"`

	// Extraction audit trail (paste imports keep the original text)
	RawInput   string   `json:"raw_input,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`

	UserID     string `json:"user_id"`
	AssignedTo string `json:"assigned_to,omitempty"`

	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	LastContactedAt *time.Time `json:"last_contacted_at,omitempty"`
	NextFollowUp    *time.Time `json:"next_follow_up,omitempty"`
}

// Factory
func NewLead(userID string) *Lead {
	return &Lead{
		ID:        uuid.New().String(),
		Status:    StatusNew,
		Source:    SourceManual,
		Priority:  PriorityMedium,
		Tags:      []string{},
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func (l *Lead) Validate() error {
	if l.UserID == "" {
		return errors.New("lead must belong to a user")
	}
	if !ValidStatus(l.Status) {
		return errors.New("invalid lead status")
	}
	if !ValidSource(l.Source) {
		return errors.New("invalid lead source")
	}
	if !ValidPriority(l.Priority) {
		return errors.New("invalid lead priority")
	}
	if l.Score != nil && (*l.Score < 0 || *l.Score > 100) {
		return errors.New("score must be between 0 and 100")
	}
	return nil
}

func (l *Lead) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (l *Lead) AddTag(tag string) {
	if !l.HasTag(tag) {
		l.Tags = append(l.Tags, tag)
	}
}
