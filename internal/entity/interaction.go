package entity

import (
	"time"

	"github.com/google/uuid"
)

type InteractionType string

const (
	InteractionEmail        InteractionType = "EMAIL"
	InteractionCall         InteractionType = "CALL"
	InteractionMeeting      InteractionType = "MEETING"
	InteractionNote         InteractionType = "NOTE"
	InteractionStatusChange InteractionType = "STATUS_CHANGE"
)

func ValidInteractionType(t InteractionType) bool {
	switch t {
	case InteractionEmail, InteractionCall, InteractionMeeting, InteractionNote, InteractionStatusChange:
		return true
	}
	return false
}

// IsContact reports whether this interaction type counts as reaching the lead,
// which bumps the lead's last_contacted_at.
func (t InteractionType) IsContact() bool {
	return t == InteractionEmail || t == InteractionCall || t == InteractionMeeting
}

// Interaction is a logged contact event. Immutable once created.
type Interaction struct {
	ID        string          `json:"id"`
	LeadID    string          `json:"lead_id"`
	UserID    string          `json:"user_id"`
	Type      InteractionType `json:"type"`
	Subject   string          `json:"subject,omitempty"`
	Content   string          `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
}

func NewInteraction(leadID, userID string, typ InteractionType, subject, content string) *Interaction {
	return &Interaction{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		UserID:    userID,
		Type:      typ,
		Subject:   subject,
		Content:   content,
		CreatedAt: time.Now(),
	}
}
