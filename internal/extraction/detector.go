package extraction

import "fmt"

type FieldType string

const (
	FieldEmail   FieldType = "email"
	FieldPhone   FieldType = "phone"
	FieldName    FieldType = "name"
	FieldCompany FieldType = "company"
	FieldCustom  FieldType = "custom"
)

// Heuristic confidence constants. These are product-defined, not computed.
const (
	ConfidenceEmail   = 0.95
	ConfidencePhone   = 0.85
	ConfidenceName    = 0.85
	ConfidenceCompany = 0.80
	ConfidenceMulti   = 0.90
)

const maxSampleValues = 2

// DetectedField is one field pattern found in a block of pasted text.
type DetectedField struct {
	Name         string    `json:"name"`
	Type         FieldType `json:"type"`
	Confidence   float64   `json:"confidence"`
	SampleValues []string  `json:"sample_values"`
}

// DetectFields scans raw pasted text and reports which lead fields it can
// recognize, with a confidence score and up to two sample values per field.
// Pure function; an empty result is a valid outcome and the caller decides
// what to do with it.
func DetectFields(text string) []DetectedField {
	fields := []DetectedField{}

	candidates := ExtractLeads(text)

	samples := func(pick func(Candidate) string) []string {
		var values []string
		for _, c := range candidates {
			if v := pick(c); v != "" {
				values = append(values, v)
				if len(values) == maxSampleValues {
					break
				}
			}
		}
		return values
	}

	if values := samples(func(c Candidate) string { return c.Email }); len(values) > 0 {
		fields = append(fields, DetectedField{
			Name:         "Email",
			Type:         FieldEmail,
			Confidence:   ConfidenceEmail,
			SampleValues: values,
		})
	}

	if values := samples(func(c Candidate) string { return c.Phone }); len(values) > 0 {
		fields = append(fields, DetectedField{
			Name:         "Phone",
			Type:         FieldPhone,
			Confidence:   ConfidencePhone,
			SampleValues: values,
		})
	}

	if values := samples(func(c Candidate) string { return c.Name }); len(values) > 0 {
		fields = append(fields, DetectedField{
			Name:         "Full Name",
			Type:         FieldName,
			Confidence:   ConfidenceName,
			SampleValues: values,
		})
	}

	if values := samples(func(c Candidate) string { return c.Company }); len(values) > 0 {
		fields = append(fields, DetectedField{
			Name:         "Company",
			Type:         FieldCompany,
			Confidence:   ConfidenceCompany,
			SampleValues: values,
		})
	}

	if n := len(candidates); n > 1 {
		fields = append(fields, DetectedField{
			Name:         "Multiple Entries",
			Type:         FieldCustom,
			Confidence:   ConfidenceMulti,
			SampleValues: []string{fmt.Sprintf("%d entries detected", n)},
		})
	}

	return fields
}
