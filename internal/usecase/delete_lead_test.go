package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/leadflowhq/leadflow/internal/entity"
	"github.com/leadflowhq/leadflow/internal/usecase"
)

func TestDeleteLeadWritesFinalSnapshotBeforeDeleting(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockHistory := new(MockHistoryRepository)

	lead := entity.NewLead(owner.ID)
	lead.Name = "John Doe"

	var entry *entity.LeadHistory
	mockLeads.On("FindByID", ctx, lead.ID, owner.ID).Return(lead, nil)
	mockHistory.On("Record", ctx, mock.Anything).Run(func(args mock.Arguments) {
		entry = args.Get(1).(*entity.LeadHistory)
	}).Return(nil)
	mockLeads.On("Delete", ctx, lead.ID, owner.ID).Return(nil)

	uc := usecase.NewDeleteLeadUseCase(mockLeads, mockHistory)

	err := uc.Execute(ctx, owner, lead.ID)

	assert.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, entity.ActionDelete, entry.Action)
	assert.Equal(t, lead, entry.Changes["final"])
	mockLeads.AssertCalled(t, "Delete", ctx, lead.ID, owner.ID)
}

func TestDeleteManyAllOrNothingOnForeignID(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockHistory := new(MockHistoryRepository)

	mine := entity.NewLead(owner.ID)
	mockLeads.On("FindByID", ctx, mine.ID, owner.ID).Return(mine, nil)
	// The second id belongs to someone else, so the lookup comes back empty.
	mockLeads.On("FindByID", ctx, "not-mine", owner.ID).Return(nil, nil)

	uc := usecase.NewDeleteLeadUseCase(mockLeads, mockHistory)

	count, err := uc.ExecuteMany(ctx, owner, []string{mine.ID, "not-mine"})

	assert.Equal(t, 0, count)
	assert.True(t, usecase.IsNotFoundError(err))
	mockLeads.AssertNotCalled(t, "DeleteMany")
	mockHistory.AssertNotCalled(t, "Record")
}

func TestDeleteManySuccess(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockHistory := new(MockHistoryRepository)

	a := entity.NewLead(owner.ID)
	b := entity.NewLead(owner.ID)
	ids := []string{a.ID, b.ID}

	mockLeads.On("FindByID", ctx, a.ID, owner.ID).Return(a, nil)
	mockLeads.On("FindByID", ctx, b.ID, owner.ID).Return(b, nil)
	mockHistory.On("Record", ctx, mock.Anything).Return(nil)
	mockLeads.On("DeleteMany", ctx, ids, owner.ID).Return(2, nil)

	uc := usecase.NewDeleteLeadUseCase(mockLeads, mockHistory)

	count, err := uc.ExecuteMany(ctx, owner, ids)

	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	mockHistory.AssertNumberOfCalls(t, "Record", 2)
}
