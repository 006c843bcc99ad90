package usecase

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"github.com/leadflowhq/leadflow/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrImportNeedsOneField is the import-mode refinement: a candidate must carry
// at least one identifying field.
const ErrImportNeedsOneField = "At least one field (name, company, email, phone, or description) must be provided"

// Permissive international phone pattern.
var phonePattern = regexp.MustCompile(`^[\+]?[(]?[0-9]{1,3}[)]?[-\s\.]?[(]?[0-9]{1,4}[)]?[-\s\.]?[0-9]{1,4}[-\s\.]?[0-9]{1,9}$`)

// ValidateLeadInput applies the lead schema: field length limits, email/phone/
// URL formats, enum membership and score bounds. Empty strings pass the format
// checks; only present values are validated.
func ValidateLeadInput(input LeadInput) []ValidationError {
	var errors []ValidationError

	if len(input.Name) > 100 {
		errors = append(errors, ValidationError{"name", "must not exceed 100 characters"})
	}
	if len(input.Company) > 100 {
		errors = append(errors, ValidationError{"company", "must not exceed 100 characters"})
	}
	if len(input.Description) > 1000 {
		errors = append(errors, ValidationError{"description", "must not exceed 1000 characters"})
	}
	if len(input.Notes) > 2000 {
		errors = append(errors, ValidationError{"notes", "must not exceed 2000 characters"})
	}

	if input.Email != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "Invalid email format"})
		}
	}
	if input.Phone != "" && !phonePattern.MatchString(strings.TrimSpace(input.Phone)) {
		errors = append(errors, ValidationError{"phone", "Invalid phone format"})
	}
	if input.Website != "" && !isValidURL(input.Website) {
		errors = append(errors, ValidationError{"website", "Invalid URL format"})
	}

	if input.Status != "" && !entity.ValidStatus(entity.LeadStatus(input.Status)) {
		errors = append(errors, ValidationError{"status", "is not a valid status"})
	}
	if input.Source != "" && !entity.ValidSource(entity.LeadSource(input.Source)) {
		errors = append(errors, ValidationError{"source", "is not a valid source"})
	}
	if input.Priority != "" && !entity.ValidPriority(entity.Priority(input.Priority)) {
		errors = append(errors, ValidationError{"priority", "is not a valid priority"})
	}

	if input.Score != nil && (*input.Score < 0 || *input.Score > 100) {
		errors = append(errors, ValidationError{"score", "must be between 0 and 100"})
	}

	return errors
}

// ValidateImportInput applies the schema in import mode, which additionally
// requires at least one identifying field to be non-empty after trimming.
func ValidateImportInput(input LeadInput) []ValidationError {
	errors := ValidateLeadInput(input)

	hasAny := strings.TrimSpace(input.Name) != "" ||
		strings.TrimSpace(input.Company) != "" ||
		strings.TrimSpace(input.Email) != "" ||
		strings.TrimSpace(input.Phone) != "" ||
		strings.TrimSpace(input.Description) != ""

	if !hasAny {
		errors = append(errors, ValidationError{"_", ErrImportNeedsOneField})
	}

	return errors
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func joinValidationErrors(errs []ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Field == "_" {
			parts = append(parts, e.Message)
			continue
		}
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return strings.Join(parts, ", ")
}
