package usecase

import "context"

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type ListLeadsUseCase struct {
	Leads LeadRepositoryInterface
}

func NewListLeadsUseCase(leads LeadRepositoryInterface) *ListLeadsUseCase {
	return &ListLeadsUseCase{Leads: leads}
}

func (uc *ListLeadsUseCase) Execute(ctx context.Context, owner AuthUser, input ListLeadsInput) (*ListLeadsOutput, error) {
	if owner.ID == "" {
		return nil, ErrUnauthorized
	}

	if input.Page < 1 {
		input.Page = 1
	}
	if input.PerPage < 1 {
		input.PerPage = defaultPerPage
	}
	if input.PerPage > maxPerPage {
		input.PerPage = maxPerPage
	}
	if input.SortBy == "" {
		input.SortBy = "created_at"
	}
	if input.SortOrder != "asc" {
		input.SortOrder = "desc"
	}

	leads, total, err := uc.Leads.List(ctx, owner.ID, input)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to list leads: " + err.Error()}
	}

	totalPages := total / input.PerPage
	if total%input.PerPage > 0 {
		totalPages++
	}

	return &ListLeadsOutput{
		Leads: leads,
		Pagination: Pagination{
			Total:      total,
			Page:       input.Page,
			PerPage:    input.PerPage,
			TotalPages: totalPages,
		},
	}, nil
}
