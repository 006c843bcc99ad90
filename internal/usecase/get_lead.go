package usecase

import "context"

const (
	recentInteractionsLimit = 10
	recentHistoryLimit      = 20
)

type GetLeadUseCase struct {
	Leads        LeadRepositoryInterface
	Interactions InteractionRepositoryInterface
	History      HistoryRepositoryInterface
}

func NewGetLeadUseCase(
	leads LeadRepositoryInterface,
	interactions InteractionRepositoryInterface,
	history HistoryRepositoryInterface,
) *GetLeadUseCase {
	return &GetLeadUseCase{Leads: leads, Interactions: interactions, History: history}
}

func (uc *GetLeadUseCase) Execute(ctx context.Context, owner AuthUser, leadID string) (*GetLeadOutput, error) {
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

	interactions, err := uc.Interactions.ListByLead(ctx, leadID, owner.ID, recentInteractionsLimit)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	history, err := uc.History.ListByLead(ctx, leadID, owner.ID, recentHistoryLimit)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	return &GetLeadOutput{Lead: lead, Interactions: interactions, History: history}, nil
}
