package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/leadflowhq/leadflow/internal/entity"
	"github.com/leadflowhq/leadflow/internal/usecase"
)

var owner = usecase.AuthUser{ID: "user-1", Name: "Jane Roe", Email: "jane@leadflow.app"}

func TestImportLeadsUnauthorizedFailsFast(t *testing.T) {
	mockLeads := new(MockLeadRepository)
	mockHistory := new(MockHistoryRepository)
	mockQueue := new(MockQueueProducer)

	uc := usecase.NewImportLeadsUseCase(mockLeads, mockHistory, mockQueue)

	output, err := uc.Execute(context.Background(), usecase.AuthUser{}, usecase.ImportLeadsInput{
		Entries: []usecase.LeadInput{{Name: "John Doe"}},
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
	mockLeads.AssertNotCalled(t, "Create")
}

func TestImportLeadsCountsAlwaysSumToBatchSize(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockHistory := new(MockHistoryRepository)
	mockQueue := new(MockQueueProducer)

	mockLeads.On("FindByEmail", ctx, owner.ID, mock.Anything).Return(nil, nil)
	mockLeads.On("Create", ctx, mock.Anything).Return(nil)
	mockHistory.On("Record", ctx, mock.Anything).Return(nil)
	mockQueue.On("PublishImportSummary", ctx, mock.Anything).Return(nil)

	uc := usecase.NewImportLeadsUseCase(mockLeads, mockHistory, mockQueue)

	entries := []usecase.LeadInput{
		{Name: "John Doe", Email: "john@example.com"},
		{}, // no identifying field at all
		{Company: "ABC Corp"},
	}

	output, err := uc.Execute(ctx, owner, usecase.ImportLeadsInput{Entries: entries})

	assert.NoError(t, err)
	assert.Len(t, output.Results, 3)
	assert.Equal(t, len(entries), output.SuccessCount+output.FailedCount)
	assert.Equal(t, 2, output.SuccessCount)
	assert.Equal(t, 1, output.FailedCount)
}

func TestImportLeadsRejectsEntryWithoutAnyField(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockHistory := new(MockHistoryRepository)

	uc := usecase.NewImportLeadsUseCase(mockLeads, mockHistory, nil)

	output, err := uc.Execute(ctx, owner, usecase.ImportLeadsInput{
		Entries: []usecase.LeadInput{{Notes: "notes alone do not identify a lead"}},
	})

	assert.NoError(t, err)
	assert.False(t, output.Results[0].Success)
	assert.Contains(t, output.Results[0].Error,
		"At least one field (name, company, email, phone, or description) must be provided")
	mockLeads.AssertNotCalled(t, "Create")
}

func TestImportLeadsMarksDuplicatesAsFailed(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockHistory := new(MockHistoryRepository)
	mockQueue := new(MockQueueProducer)

	existing := entity.NewLead(owner.ID)
	existing.Email = "john@example.com"

	mockLeads.On("FindByEmail", ctx, owner.ID, "john@example.com").Return(existing, nil)
	mockQueue.On("PublishImportSummary", ctx, mock.Anything).Return(nil)

	uc := usecase.NewImportLeadsUseCase(mockLeads, mockHistory, mockQueue)

	// Email matching is case-insensitive, so the mixed-case entry is a dup too.
	output, err := uc.Execute(ctx, owner, usecase.ImportLeadsInput{
		Entries: []usecase.LeadInput{
			{Name: "John Doe", Email: "john@example.com"},
			{Name: "John Again", Email: "John@Example.COM"},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, output.SuccessCount)
	assert.Equal(t, 2, output.FailedCount)
	for _, result := range output.Results {
		assert.True(t, result.Duplicate)
		assert.Equal(t, existing.ID, result.LeadID)
	}
	mockLeads.AssertNotCalled(t, "Create")
}

func TestImportLeadsTranslatesUniqueViolationFromStorage(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockHistory := new(MockHistoryRepository)

	// The pre-insert check sees nothing, but a concurrent import won the race
	// and the unique index fires on insert.
	mockLeads.On("FindByEmail", ctx, owner.ID, "john@example.com").Return(nil, nil)
	mockLeads.On("Create", ctx, mock.Anything).
		Return(&usecase.DuplicateLeadError{Email: "john@example.com", DuplicateID: "lead-42"})

	uc := usecase.NewImportLeadsUseCase(mockLeads, mockHistory, nil)

	output, err := uc.Execute(ctx, owner, usecase.ImportLeadsInput{
		Entries: []usecase.LeadInput{{Name: "John Doe", Email: "john@example.com"}},
	})

	assert.NoError(t, err)
	assert.True(t, output.Results[0].Duplicate)
	assert.Equal(t, "lead-42", output.Results[0].LeadID)
	mockHistory.AssertNotCalled(t, "Record")
}

func TestImportLeadsStampsSourceAndTag(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockHistory := new(MockHistoryRepository)

	var created *entity.Lead
	mockLeads.On("FindByEmail", ctx, owner.ID, mock.Anything).Return(nil, nil)
	mockLeads.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Lead)
	}).Return(nil)
	mockHistory.On("Record", ctx, mock.Anything).Return(nil)

	uc := usecase.NewImportLeadsUseCase(mockLeads, mockHistory, nil)

	_, err := uc.Execute(ctx, owner, usecase.ImportLeadsInput{
		Entries: []usecase.LeadInput{{Name: "John Doe", Email: "John@Example.com"}},
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.SourceImport, created.Source)
	assert.Contains(t, created.Tags, "imported")
	assert.Equal(t, "john@example.com", created.Email) // normalized on write
}

func TestImportLeadsExtractsFromRawText(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockHistory := new(MockHistoryRepository)
	mockQueue := new(MockQueueProducer)

	mockLeads.On("FindByEmail", ctx, owner.ID, mock.Anything).Return(nil, nil)
	mockLeads.On("Create", ctx, mock.Anything).Return(nil)
	mockHistory.On("Record", ctx, mock.Anything).Return(nil)
	mockQueue.On("PublishImportSummary", ctx, mock.Anything).Return(nil)

	uc := usecase.NewImportLeadsUseCase(mockLeads, mockHistory, mockQueue)

	rawText := "John Doe, john@example.com, +1 555-0123, ABC Corp\n\nJane Smith, jane@widgets.io"

	output, err := uc.Execute(ctx, owner, usecase.ImportLeadsInput{RawText: rawText})

	assert.NoError(t, err)
	assert.Equal(t, 2, output.SuccessCount)
	mockQueue.AssertCalled(t, "PublishImportSummary", ctx, mock.Anything)
}

func TestImportLeadsWithinBatchFirstOccurrenceWins(t *testing.T) {
	ctx := context.Background()

	mockHistory := new(MockHistoryRepository)
	mockHistory.On("Record", ctx, mock.Anything).Return(nil)

	store := &fakeLeadStore{MockLeadRepository: new(MockLeadRepository)}

	uc := usecase.NewImportLeadsUseCase(store, mockHistory, nil)

	output, err := uc.Execute(ctx, owner, usecase.ImportLeadsInput{
		Entries: []usecase.LeadInput{
			{Name: "John Doe", Email: "john@example.com"},
			{Name: "John Later", Email: "JOHN@example.com"},
		},
	})

	assert.NoError(t, err)
	assert.True(t, output.Results[0].Success)
	assert.True(t, output.Results[1].Duplicate)
	assert.Equal(t, output.Results[0].LeadID, output.Results[1].LeadID)
	assert.Equal(t, 1, output.SuccessCount)
	assert.Equal(t, 1, output.FailedCount)
}

// fakeLeadStore remembers created leads so later items in the same batch see
// earlier ones, like the real repository does.
type fakeLeadStore struct {
	*MockLeadRepository
	created []*entity.Lead
}

func (f *fakeLeadStore) Create(ctx context.Context, lead *entity.Lead) error {
	f.created = append(f.created, lead)
	return nil
}

func (f *fakeLeadStore) FindByEmail(ctx context.Context, userID, email string) (*entity.Lead, error) {
	for _, lead := range f.created {
		if lead.UserID == userID && lead.Email == email {
			return lead, nil
		}
	}
	return nil, nil
}

func TestImportLeadsSummaryFailureDoesNotAbort(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockHistory := new(MockHistoryRepository)
	mockQueue := new(MockQueueProducer)

	mockLeads.On("FindByEmail", ctx, owner.ID, mock.Anything).Return(nil, nil)
	mockLeads.On("Create", ctx, mock.Anything).Return(nil)
	mockHistory.On("Record", ctx, mock.Anything).Return(nil)
	mockQueue.On("PublishImportSummary", ctx, mock.Anything).Return(errors.New("broker down"))

	uc := usecase.NewImportLeadsUseCase(mockLeads, mockHistory, mockQueue)

	output, err := uc.Execute(ctx, owner, usecase.ImportLeadsInput{
		Entries: []usecase.LeadInput{{Name: "John Doe"}},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, output.SuccessCount)
}
