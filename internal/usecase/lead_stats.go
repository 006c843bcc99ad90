package usecase

import (
	"context"

	"github.com/leadflowhq/leadflow/internal/entity"
)

type LeadStatsUseCase struct {
	Leads LeadRepositoryInterface
}

func NewLeadStatsUseCase(leads LeadRepositoryInterface) *LeadStatsUseCase {
	return &LeadStatsUseCase{Leads: leads}
}

func (uc *LeadStatsUseCase) Execute(ctx context.Context, owner AuthUser) (*LeadStatsOutput, error) {
	if owner.ID == "" {
		return nil, ErrUnauthorized
	}

	data, err := uc.Leads.Stats(ctx, owner.ID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to aggregate stats: " + err.Error()}
	}

	won := data.ByStatus[string(entity.StatusClosedWon)]
	lost := data.ByStatus[string(entity.StatusClosedLost)]
	conversionRate := 0.0
	if won+lost > 0 {
		conversionRate = float64(won) / float64(won+lost) * 100
	}

	return &LeadStatsOutput{
		Total:          data.Total,
		ByStatus:       data.ByStatus,
		BySource:       data.BySource,
		ByPriority:     data.ByPriority,
		AverageScore:   data.AverageScore,
		RecentActivity: data.RecentActivity,
		ConversionRate: conversionRate,
	}, nil
}
