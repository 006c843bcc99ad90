package usecase

import (
	"context"
	"reflect"
	"time"

	"github.com/leadflowhq/leadflow/internal/entity"
)

type UpdateLeadUseCase struct {
	Leads   LeadRepositoryInterface
	History HistoryRepositoryInterface
}

func NewUpdateLeadUseCase(leads LeadRepositoryInterface, history HistoryRepositoryInterface) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{Leads: leads, History: history}
}

// Execute patches an owned lead. Exactly one audit entry is appended per
// mutation, capturing the old and new value of every field that changed;
// a no-op patch appends nothing.
func (uc *UpdateLeadUseCase) Execute(ctx context.Context, owner AuthUser, leadID string, input UpdateLeadInput) (*entity.Lead, error) {
	if owner.ID == "" {
		return nil, ErrUnauthorized
	}

	lead, err := uc.Leads.FindByID(ctx, leadID, owner.ID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if lead == nil {
		return nil, &NotFoundError{Resource: "lead", ID: leadID}
	}

	changes := applyPatch(lead, input)

	if errs := ValidateLeadInput(leadToInput(lead)); len(errs) > 0 {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed: " + joinValidationErrors(errs),
		}
	}

	if len(changes) == 0 {
		return lead, nil
	}

	if email, ok := changes["email"]; ok {
		newEmail, _ := email.New.(string)
		if newEmail != "" {
			existing, err := uc.Leads.FindByEmail(ctx, owner.ID, newEmail)
			if err != nil {
				return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
			}
			if existing != nil && existing.ID != lead.ID {
				return nil, &DuplicateLeadError{Email: newEmail, DuplicateID: existing.ID}
			}
		}
	}

	lead.UpdatedAt = time.Now()
	if err := uc.Leads.Update(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update lead: " + err.Error()}
	}

	changeMap := make(map[string]any, len(changes))
	for field, change := range changes {
		changeMap[field] = change
	}
	if err := uc.History.Record(ctx, entity.NewLeadHistory(lead.ID, owner.ID, entity.ActionUpdate, changeMap)); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to record history: " + err.Error()}
	}

	return lead, nil
}

// applyPatch mutates the lead in place and returns the per-field diff.
func applyPatch(lead *entity.Lead, input UpdateLeadInput) map[string]entity.FieldChange {
	changes := map[string]entity.FieldChange{}

	setString := func(field string, dst *string, src *string) {
		if src == nil || *src == *dst {
			return
		}
		changes[field] = entity.FieldChange{Old: *dst, New: *src}
		*dst = *src
	}

	setString("name", &lead.Name, input.Name)
	setString("company", &lead.Company, input.Company)
	if input.Email != nil {
		normalized := normalizeEmail(*input.Email)
		setString("email", &lead.Email, &normalized)
	}
	setString("phone", &lead.Phone, input.Phone)
	setString("website", &lead.Website, input.Website)
	setString("description", &lead.Description, input.Description)
	setString("notes", &lead.Notes, input.Notes)
	setString("assigned_to", &lead.AssignedTo, input.AssignedTo)

	if input.Status != nil && entity.LeadStatus(*input.Status) != lead.Status {
		changes["status"] = entity.FieldChange{Old: string(lead.Status), New: *input.Status}
		lead.Status = entity.LeadStatus(*input.Status)
	}
	if input.Source != nil && entity.LeadSource(*input.Source) != lead.Source {
		changes["source"] = entity.FieldChange{Old: string(lead.Source), New: *input.Source}
		lead.Source = entity.LeadSource(*input.Source)
	}
	if input.Priority != nil && entity.Priority(*input.Priority) != lead.Priority {
		changes["priority"] = entity.FieldChange{Old: string(lead.Priority), New: *input.Priority}
		lead.Priority = entity.Priority(*input.Priority)
	}
	if input.Score != nil && (lead.Score == nil || *lead.Score != *input.Score) {
		changes["score"] = entity.FieldChange{Old: lead.Score, New: *input.Score}
		score := *input.Score
		lead.Score = &score
	}
	if input.Tags != nil && !reflect.DeepEqual(*input.Tags, lead.Tags) {
		changes["tags"] = entity.FieldChange{Old: lead.Tags, New: *input.Tags}
		lead.Tags = *input.Tags
	}
	if input.NextFollowUp != nil && (lead.NextFollowUp == nil || !lead.NextFollowUp.Equal(*input.NextFollowUp)) {
		changes["next_follow_up"] = entity.FieldChange{Old: lead.NextFollowUp, New: *input.NextFollowUp}
		next := *input.NextFollowUp
		lead.NextFollowUp = &next
	}

	return changes
}

func leadToInput(lead *entity.Lead) LeadInput {
	return LeadInput{
		Name:        lead.Name,
		Company:     lead.Company,
		Email:       lead.Email,
		Phone:       lead.Phone,
		Website:     lead.Website,
		Description: lead.Description,
		Notes:       lead.Notes,
		Status:      string(lead.Status),
		Source:      string(lead.Source),
		Priority:    string(lead.Priority),
		Score:       lead.Score,
	}
}
