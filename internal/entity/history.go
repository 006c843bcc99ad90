package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreate           = "CREATE"
	ActionUpdate           = "UPDATE"
	ActionDelete           = "DELETE"
	ActionInteractionAdded = "INTERACTION_ADDED"
)

// FieldChange captures one field's old and new value inside an audit entry.
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// LeadHistory is the audit trail: one entry per mutation of a lead.
type LeadHistory struct {
	ID        string         `json:"id"`
	LeadID    string         `json:"lead_id"`
	UserID    string         `json:"user_id"`
	Action    string         `json:"action"`
	Changes   map[string]any `json:"changes"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewLeadHistory(leadID, userID, action string, changes map[string]any) *LeadHistory {
	if changes == nil {
		changes = map[string]any{}
	}
	return &LeadHistory{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		UserID:    userID,
		Action:    action,
		Changes:   changes,
		CreatedAt: time.Now(),
	}
}
