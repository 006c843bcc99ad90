package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/leadflowhq/leadflow/internal/entity"
)

type AddInteractionUseCase struct {
	Leads        LeadRepositoryInterface
	Interactions InteractionRepositoryInterface
	History      HistoryRepositoryInterface
}

func NewAddInteractionUseCase(
	leads LeadRepositoryInterface,
	interactions InteractionRepositoryInterface,
	history HistoryRepositoryInterface,
) *AddInteractionUseCase {
	return &AddInteractionUseCase{Leads: leads, Interactions: interactions, History: history}
}

// Execute logs one immutable contact event against an owned lead. Contact-type
// interactions (email/call/meeting) bump the lead's last_contacted_at.
func (uc *AddInteractionUseCase) Execute(ctx context.Context, owner AuthUser, input AddInteractionInput) (*entity.Interaction, error) {
	if owner.ID == "" {
		return nil, ErrUnauthorized
	}

	typ := entity.InteractionType(input.Type)
	if !entity.ValidInteractionType(typ) {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "type must be one of EMAIL, CALL, MEETING, NOTE, STATUS_CHANGE"}
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "content is required"}
	}
	if len(input.Subject) > 200 {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "subject must not exceed 200 characters"}
	}

	lead, err := uc.Leads.FindByID(ctx, input.LeadID, owner.ID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if lead == nil {
		return nil, &NotFoundError{Resource: "lead", ID: input.LeadID}
	}

	interaction := entity.NewInteraction(lead.ID, owner.ID, typ, input.Subject, input.Content)
	if err := uc.Interactions.Create(ctx, interaction); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to create interaction: " + err.Error()}
	}

	if typ.IsContact() {
		if err := uc.Leads.TouchLastContacted(ctx, lead.ID, owner.ID); err != nil {
			log.Printf("[INTERACTION] failed to update last_contacted_at for lead %s: %v", lead.ID, err)
		}
	}

	if err := uc.History.Record(ctx, entity.NewLeadHistory(lead.ID, owner.ID, entity.ActionInteractionAdded, map[string]any{
		"type":    string(typ),
		"subject": input.Subject,
	})); err != nil {
		log.Printf("[INTERACTION] failed to record history for lead %s: %v", lead.ID, err)
	}

	return interaction, nil
}
