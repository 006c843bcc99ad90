package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/leadflowhq/leadflow/internal/entity"
	"github.com/leadflowhq/leadflow/internal/extraction"
	"github.com/leadflowhq/leadflow/internal/infra/queue"
)

// ImportLeadsUseCase turns extracted candidates (or pre-structured entries)
// into persisted leads. Each item is committed independently: validation
// failures, duplicates and storage errors are recorded per item and never
// abort the batch. Only a missing owner identity fails fast.
type ImportLeadsUseCase struct {
	Leads   LeadRepositoryInterface
	History HistoryRepositoryInterface
	Queue   QueueProducerInterface
}

func NewImportLeadsUseCase(
	leads LeadRepositoryInterface,
	history HistoryRepositoryInterface,
	producer QueueProducerInterface,
) *ImportLeadsUseCase {
	return &ImportLeadsUseCase{
		Leads:   leads,
		History: history,
		Queue:   producer,
	}
}

func (uc *ImportLeadsUseCase) Execute(ctx context.Context, owner AuthUser, input ImportLeadsInput) (*ImportLeadsOutput, error) {
	if owner.ID == "" {
		return nil, ErrUnauthorized
	}

	entries := input.Entries
	if len(entries) == 0 {
		for _, cand := range extraction.ExtractLeads(input.RawText) {
			entries = append(entries, candidateToInput(cand))
		}
	}

	out := &ImportLeadsOutput{Results: make([]ImportResult, 0, len(entries))}

	// Items are processed in input order so that the first occurrence of a
	// duplicated email within the batch wins.
	for i, entry := range entries {
		result := uc.importOne(ctx, owner, i, entry)
		if result.Success {
			out.SuccessCount++
		} else {
			out.FailedCount++
		}
		out.Results = append(out.Results, result)
	}

	if uc.Queue != nil && len(entries) > 0 {
		err := uc.Queue.PublishImportSummary(ctx, queue.ImportSummaryPayload{
			UserID:       owner.ID,
			UserName:     owner.Name,
			UserEmail:    owner.Email,
			SuccessCount: out.SuccessCount,
			FailedCount:  out.FailedCount,
			ImportedAt:   time.Now(),
		})
		if err != nil {
			// Notification is best effort; the import result stands.
			log.Printf("[IMPORT] failed to publish import summary: %v", err)
		}
	}

	return out, nil
}

func (uc *ImportLeadsUseCase) importOne(ctx context.Context, owner AuthUser, index int, entry LeadInput) ImportResult {
	if errs := ValidateImportInput(entry); len(errs) > 0 {
		return ImportResult{Index: index, Error: joinValidationErrors(errs)}
	}

	email := normalizeEmail(entry.Email)

	// Pre-insert duplicate check. The unique index on (user_id, lower(email))
	// remains the authoritative signal for races between concurrent imports.
	if email != "" {
		existing, err := uc.Leads.FindByEmail(ctx, owner.ID, email)
		if err != nil {
			return ImportResult{Index: index, Error: "failed to check for duplicates: " + err.Error()}
		}
		if existing != nil {
			return ImportResult{
				Index:     index,
				Duplicate: true,
				LeadID:    existing.ID,
				Error:     "A lead with this email already exists",
			}
		}
	}

	lead := buildLead(owner.ID, entry)
	lead.Email = email
	lead.Source = entity.SourceImport
	lead.AddTag("imported")

	if err := uc.Leads.Create(ctx, lead); err != nil {
		var dup *DuplicateLeadError
		if errors.As(err, &dup) {
			return ImportResult{
				Index:     index,
				Duplicate: true,
				LeadID:    dup.DuplicateID,
				Error:     "A lead with this email already exists",
			}
		}
		return ImportResult{Index: index, Error: "failed to create lead: " + err.Error()}
	}

	if err := uc.History.Record(ctx, entity.NewLeadHistory(lead.ID, owner.ID, entity.ActionCreate, map[string]any{
		"initial": entry,
	})); err != nil {
		// The lead is in; a missing audit row is logged, not surfaced.
		log.Printf("[IMPORT] failed to record history for lead %s: %v", lead.ID, err)
	}

	return ImportResult{Index: index, Success: true, LeadID: lead.ID}
}

// buildLead maps an input payload onto a fresh lead entity with defaults.
func buildLead(userID string, input LeadInput) *entity.Lead {
	lead := entity.NewLead(userID)
	lead.Name = strings.TrimSpace(input.Name)
	lead.Company = strings.TrimSpace(input.Company)
	lead.Email = normalizeEmail(input.Email)
	lead.Phone = strings.TrimSpace(input.Phone)
	lead.Website = strings.TrimSpace(input.Website)
	lead.Description = strings.TrimSpace(input.Description)
	lead.Notes = input.Notes
	lead.RawInput = input.RawInput
	lead.Confidence = input.Confidence
	lead.AssignedTo = input.AssignedTo
	lead.NextFollowUp = input.NextFollowUp
	lead.Score = input.Score

	if input.Status != "" {
		lead.Status = entity.LeadStatus(input.Status)
	}
	if input.Source != "" {
		lead.Source = entity.LeadSource(input.Source)
	}
	if input.Priority != "" {
		lead.Priority = entity.Priority(input.Priority)
	}
	if len(input.Tags) > 0 {
		lead.Tags = append(lead.Tags, input.Tags...)
	}
	return lead
}

func candidateToInput(c extraction.Candidate) LeadInput {
	confidence := c.Confidence
	return LeadInput{
		Name:        c.Name,
		Company:     c.Company,
		Email:       c.Email,
		Phone:       c.Phone,
		Website:     c.Website,
		Description: c.Description,
		RawInput:    c.RawInput,
		Confidence:  &confidence,
	}
}

// Dedup is case-insensitive: emails are normalized on write.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
