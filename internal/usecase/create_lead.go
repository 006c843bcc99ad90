package usecase

import (
	"context"
	"errors"

	"github.com/leadflowhq/leadflow/internal/entity"
)

type CreateLeadUseCase struct {
	Leads   LeadRepositoryInterface
	History HistoryRepositoryInterface
}

func NewCreateLeadUseCase(leads LeadRepositoryInterface, history HistoryRepositoryInterface) *CreateLeadUseCase {
	return &CreateLeadUseCase{Leads: leads, History: history}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, owner AuthUser, input LeadInput) (*entity.Lead, error) {
	if owner.ID == "" {
		return nil, ErrUnauthorized
	}

	if validationErrors := ValidateLeadInput(input); len(validationErrors) > 0 {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed: " + joinValidationErrors(validationErrors),
		}
	}

	email := normalizeEmail(input.Email)
	if email != "" {
		existing, err := uc.Leads.FindByEmail(ctx, owner.ID, email)
		if err != nil {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
		if existing != nil {
			return nil, &DuplicateLeadError{Email: email, DuplicateID: existing.ID}
		}
	}

	lead := buildLead(owner.ID, input)

	// Persist lead and audit entry together; if the audit write fails the
	// lead insert is compensated so the two never diverge.
	txn := NewTransaction()
	txn.AddOperation("create_lead", func(ctx context.Context) error {
		return uc.Leads.Create(ctx, lead)
	})
	txn.AddCompensation("delete_lead", func(ctx context.Context) error {
		return uc.Leads.Delete(ctx, lead.ID, owner.ID)
	})
	txn.AddOperation("record_history", func(ctx context.Context) error {
		return uc.History.Record(ctx, entity.NewLeadHistory(lead.ID, owner.ID, entity.ActionCreate, map[string]any{
			"initial": input,
		}))
	})

	if err := txn.Execute(ctx); err != nil {
		var dup *DuplicateLeadError
		if errors.As(err, &dup) {
			return nil, dup
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist lead: " + err.Error(),
		}
	}

	return lead, nil
}
