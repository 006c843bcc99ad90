package usecase

import (
	"context"
	"fmt"

	"github.com/leadflowhq/leadflow/internal/entity"
)

type DeleteLeadUseCase struct {
	Leads   LeadRepositoryInterface
	History HistoryRepositoryInterface
}

func NewDeleteLeadUseCase(leads LeadRepositoryInterface, history HistoryRepositoryInterface) *DeleteLeadUseCase {
	return &DeleteLeadUseCase{Leads: leads, History: history}
}

// Execute hard-deletes one owned lead. The final audit entry, holding a
// snapshot of the lead, is written before the row goes away and survives it.
func (uc *DeleteLeadUseCase) Execute(ctx context.Context, owner AuthUser, leadID string) error {
	if owner.ID == "" {
		return ErrUnauthorized
	}

	lead, err := uc.Leads.FindByID(ctx, leadID, owner.ID)
	if err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if lead == nil {
		return &NotFoundError{Resource: "lead", ID: leadID}
	}

	if err := uc.History.Record(ctx, entity.NewLeadHistory(lead.ID, owner.ID, entity.ActionDelete, map[string]any{
		"final": lead,
	})); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to record history: " + err.Error()}
	}

	if err := uc.Leads.Delete(ctx, leadID, owner.ID); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to delete lead: " + err.Error()}
	}
	return nil
}

// ExecuteMany deletes a set of owned leads. All ids must belong to the owner,
// otherwise nothing is deleted.
func (uc *DeleteLeadUseCase) ExecuteMany(ctx context.Context, owner AuthUser, ids []string) (int, error) {
	if owner.ID == "" {
		return 0, ErrUnauthorized
	}
	if len(ids) == 0 {
		return 0, &DomainError{Code: "VALIDATION_ERROR", Message: "at least one id is required"}
	}

	leads := make([]*entity.Lead, 0, len(ids))
	for _, id := range ids {
		lead, err := uc.Leads.FindByID(ctx, id, owner.ID)
		if err != nil {
			return 0, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
		if lead == nil {
			return 0, &NotFoundError{Resource: "lead", ID: id}
		}
		leads = append(leads, lead)
	}

	for _, lead := range leads {
		if err := uc.History.Record(ctx, entity.NewLeadHistory(lead.ID, owner.ID, entity.ActionDelete, map[string]any{
			"final": lead,
		})); err != nil {
			return 0, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to record history: " + err.Error()}
		}
	}

	count, err := uc.Leads.DeleteMany(ctx, ids, owner.ID)
	if err != nil {
		return 0, &TechnicalError{Code: "DATABASE_ERROR", Message: fmt.Sprintf("failed to delete leads: %v", err)}
	}
	return count, nil
}
