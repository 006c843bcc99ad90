package usecase

import (
	"context"

	"github.com/leadflowhq/leadflow/internal/entity"
	"github.com/leadflowhq/leadflow/internal/infra/queue"
)

// LeadRepositoryInterface is the persistence contract for leads. Every
// operation is scoped by the owning user; there is no cross-user visibility.
type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *entity.Lead) error
	FindByID(ctx context.Context, id, userID string) (*entity.Lead, error)
	FindByEmail(ctx context.Context, userID, email string) (*entity.Lead, error)
	List(ctx context.Context, userID string, filter ListLeadsInput) ([]*entity.Lead, int, error)
	Update(ctx context.Context, lead *entity.Lead) error
	Delete(ctx context.Context, id, userID string) error
	DeleteMany(ctx context.Context, ids []string, userID string) (int, error)
	TouchLastContacted(ctx context.Context, id, userID string) error
	Stats(ctx context.Context, userID string) (*StatsData, error)
}

type HistoryRepositoryInterface interface {
	Record(ctx context.Context, h *entity.LeadHistory) error
	ListByLead(ctx context.Context, leadID, userID string, limit int) ([]*entity.LeadHistory, error)
}

type InteractionRepositoryInterface interface {
	Create(ctx context.Context, i *entity.Interaction) error
	ListByLead(ctx context.Context, leadID, userID string, limit int) ([]*entity.Interaction, error)
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

type QueueProducerInterface interface {
	PublishImportSummary(ctx context.Context, payload queue.ImportSummaryPayload) error
}

type EmailService interface {
	SendImportSummary(to, name string, successCount, failedCount int) error
}
