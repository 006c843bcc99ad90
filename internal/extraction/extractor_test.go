package extraction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadflowhq/leadflow/internal/extraction"
)

func TestExtractLeadCommaSeparatedLine(t *testing.T) {
	c := extraction.ExtractLead("John Doe, john@example.com, +1 555-0123, ABC Corp")

	assert.Equal(t, "John Doe", c.Name)
	assert.Equal(t, "john@example.com", c.Email)
	assert.Equal(t, "+1 555-0123", c.Phone)
	assert.Equal(t, "ABC Corp", c.Company)
	assert.Greater(t, c.Confidence, 0.9)
}

func TestExtractLeadMultiLineWithLabels(t *testing.T) {
	block := "Company: Widget Industries\nContact: Jane Smith\nEmail: jane@widgets.io\nPhone: (11) 98888-7777"

	c := extraction.ExtractLead(block)

	assert.Equal(t, "Jane Smith", c.Name)
	assert.Equal(t, "Widget Industries", c.Company)
	assert.Equal(t, "jane@widgets.io", c.Email)
	assert.Equal(t, "(11) 98888-7777", c.Phone)
}

func TestExtractLeadNameFromConnector(t *testing.T) {
	c := extraction.ExtractLead("Sarah Johnson from StartupXYZ\nsarah@startupxyz.com")

	assert.Equal(t, "Sarah Johnson", c.Name)
	assert.Equal(t, "StartupXYZ", c.Company)
	assert.Equal(t, "sarah@startupxyz.com", c.Email)
}

func TestExtractLeadCompanyBySuffix(t *testing.T) {
	c := extraction.ExtractLead("Globex Corporation\ninfo@globex.com")

	assert.Equal(t, "Globex Corporation", c.Company)
	assert.Empty(t, c.Name)
}

func TestExtractLeadGibberishYieldsNothing(t *testing.T) {
	c := extraction.ExtractLead("lorem ipsum dolor sit amet, consectetur adipiscing elit sed do")

	assert.Empty(t, c.Name)
	assert.Empty(t, c.Email)
	assert.Empty(t, c.Phone)
	assert.Empty(t, c.Company)
	assert.Equal(t, 0.0, c.Confidence)
}

func TestExtractLeadKeepsRawInput(t *testing.T) {
	block := "John Doe\njohn@example.com"
	c := extraction.ExtractLead(block)
	assert.Equal(t, block, c.RawInput)
}

func TestExtractLeadEmailDigitsAreNotAPhone(t *testing.T) {
	c := extraction.ExtractLead("john.doe1234567@example.com")

	assert.Equal(t, "john.doe1234567@example.com", c.Email)
	assert.Empty(t, c.Phone)
}

func TestExtractLeadWebsite(t *testing.T) {
	c := extraction.ExtractLead("Acme Inc\nhttps://acme.example.com, contact pending")
	assert.Equal(t, "https://acme.example.com", c.Website)
}

func TestExtractLeadsSplitsOnBlankLines(t *testing.T) {
	text := "John Doe\njohn@example.com\n\nJane Smith\njane@widgets.io"

	candidates := extraction.ExtractLeads(text)

	require.Len(t, candidates, 2)
	// Output order follows input order.
	assert.Equal(t, "John Doe", candidates[0].Name)
	assert.Equal(t, "Jane Smith", candidates[1].Name)
}

func TestSplitEntriesIgnoresExtraBlankLines(t *testing.T) {
	entries := extraction.SplitEntries("a\n\n\n\nb\n\n   \n\nc")
	assert.Equal(t, []string{"a", "b", "c"}, entries)

	assert.Len(t, extraction.SplitEntries("single block\nwith two lines"), 1)
	assert.Empty(t, extraction.SplitEntries("   \n\n  "))
}

func TestConfidenceGrowsWithEachDetectedField(t *testing.T) {
	emailOnly := extraction.ExtractLead("john@example.com")
	emailAndPhone := extraction.ExtractLead("john@example.com, +1 555-0123")
	full := extraction.ExtractLead("John Doe, john@example.com, +1 555-0123, ABC Corp")

	assert.InDelta(t, 0.95, emailOnly.Confidence, 1e-9)
	assert.Greater(t, emailAndPhone.Confidence, emailOnly.Confidence)
	assert.Greater(t, full.Confidence, emailAndPhone.Confidence)
	assert.LessOrEqual(t, full.Confidence, 1.0)
}

func TestExtractLeadPhoneDigitBounds(t *testing.T) {
	// Too few digits to be a phone number.
	short := extraction.ExtractLead("call 123-456")
	assert.Empty(t, short.Phone)

	long := extraction.ExtractLead("ref 1234 5678 9012 3456 7890")
	assert.Empty(t, long.Phone)
}
