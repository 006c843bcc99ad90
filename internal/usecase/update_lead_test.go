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

func strPtr(s string) *string { return &s }

func TestUpdateLeadRecordsExactlyOneHistoryEntry(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockHistory := new(MockHistoryRepository)

	lead := entity.NewLead(owner.ID)
	lead.Name = "John Doe"
	lead.Status = entity.StatusNew

	var recorded []*entity.LeadHistory
	mockLeads.On("FindByID", ctx, lead.ID, owner.ID).Return(lead, nil)
	mockLeads.On("Update", ctx, mock.Anything).Return(nil)
	mockHistory.On("Record", ctx, mock.Anything).Run(func(args mock.Arguments) {
		recorded = append(recorded, args.Get(1).(*entity.LeadHistory))
	}).Return(nil)

	uc := usecase.NewUpdateLeadUseCase(mockLeads, mockHistory)

	updated, err := uc.Execute(ctx, owner, lead.ID, usecase.UpdateLeadInput{
		Status: strPtr("CONTACTED"),
		Name:   strPtr("John A. Doe"),
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusContacted, updated.Status)

	require.Len(t, recorded, 1)
	entry := recorded[0]
	assert.Equal(t, entity.ActionUpdate, entry.Action)

	statusChange := entry.Changes["status"].(entity.FieldChange)
	assert.Equal(t, "NEW", statusChange.Old)
	assert.Equal(t, "CONTACTED", statusChange.New)

	nameChange := entry.Changes["name"].(entity.FieldChange)
	assert.Equal(t, "John Doe", nameChange.Old)
	assert.Equal(t, "John A. Doe", nameChange.New)
}

func TestUpdateLeadNoopPatchSkipsWriteAndHistory(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockHistory := new(MockHistoryRepository)

	lead := entity.NewLead(owner.ID)
	lead.Name = "John Doe"

	mockLeads.On("FindByID", ctx, lead.ID, owner.ID).Return(lead, nil)

	uc := usecase.NewUpdateLeadUseCase(mockLeads, mockHistory)

	_, err := uc.Execute(ctx, owner, lead.ID, usecase.UpdateLeadInput{
		Name: strPtr("John Doe"), // same value
	})

	assert.NoError(t, err)
	mockLeads.AssertNotCalled(t, "Update")
	mockHistory.AssertNotCalled(t, "Record")
}

func TestUpdateLeadNotOwnedLooksLikeMissing(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockHistory := new(MockHistoryRepository)

	mockLeads.On("FindByID", ctx, "lead-999", owner.ID).Return(nil, nil)

	uc := usecase.NewUpdateLeadUseCase(mockLeads, mockHistory)

	_, err := uc.Execute(ctx, owner, "lead-999", usecase.UpdateLeadInput{Name: strPtr("X")})

	assert.True(t, usecase.IsNotFoundError(err))
}

func TestUpdateLeadRejectsEmailAlreadyOnAnotherLead(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockHistory := new(MockHistoryRepository)

	lead := entity.NewLead(owner.ID)
	other := entity.NewLead(owner.ID)
	other.Email = "taken@example.com"

	mockLeads.On("FindByID", ctx, lead.ID, owner.ID).Return(lead, nil)
	mockLeads.On("FindByEmail", ctx, owner.ID, "taken@example.com").Return(other, nil)

	uc := usecase.NewUpdateLeadUseCase(mockLeads, mockHistory)

	_, err := uc.Execute(ctx, owner, lead.ID, usecase.UpdateLeadInput{
		Email: strPtr("Taken@Example.com"),
	})

	var dup *usecase.DuplicateLeadError
	assert.ErrorAs(t, err, &dup)
	assert.Equal(t, other.ID, dup.DuplicateID)
	mockLeads.AssertNotCalled(t, "Update")
}

func TestUpdateLeadKeepingOwnEmailIsNotADuplicate(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockHistory := new(MockHistoryRepository)

	lead := entity.NewLead(owner.ID)
	lead.Email = "mine@example.com"

	mockLeads.On("FindByID", ctx, lead.ID, owner.ID).Return(lead, nil)
	mockLeads.On("FindByEmail", ctx, owner.ID, "mine@example.com").Return(lead, nil)
	mockLeads.On("Update", ctx, mock.Anything).Return(nil)
	mockHistory.On("Record", ctx, mock.Anything).Return(nil)

	uc := usecase.NewUpdateLeadUseCase(mockLeads, mockHistory)

	_, err := uc.Execute(ctx, owner, lead.ID, usecase.UpdateLeadInput{
		Email: strPtr("mine@example.com"),
		Name:  strPtr("Renamed"),
	})

	assert.NoError(t, err)
}
