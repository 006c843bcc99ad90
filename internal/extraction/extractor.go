package extraction

import (
	"regexp"
	"strings"
	"unicode"
)

// Candidate is an unpersisted lead guess extracted from free text. It keeps the
// raw input for auditing and a heuristic confidence score in [0,1].
type Candidate struct {
	Name        string  `json:"name,omitempty"`
	Company     string  `json:"company,omitempty"`
	Email       string  `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Website     string  `json:"website,omitempty"`
	Description string  `json:"description,omitempty"`
	Confidence  float64 `json:"confidence"`
	RawInput    string  `json:"raw_input"`
}

var (
	emailRe   = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe   = regexp.MustCompile(`\+?\(?[0-9][0-9()\-.\s]{5,}[0-9]`)
	websiteRe = regexp.MustCompile(`(?:https?://|www\.)[^\s,;]+`)
	digitsRe  = regexp.MustCompile(`\D`)
	blankRe   = regexp.MustCompile(`\n\s*\n`)
)

// Organizational suffixes used to guess company names. Best-effort, no model.
var companySuffixes = []string{
	"corp", "corporation", "inc", "incorporated", "llc", "ltd", "limited",
	"gmbh", "co", "company", "group", "holdings", "industries",
	"technologies", "solutions", "systems", "partners", "agency", "studio",
}

// SplitEntries splits pasted text into one block per plausible lead.
// Entries are delimited by blank lines; single-block input yields one entry.
func SplitEntries(text string) []string {
	var entries []string
	for _, block := range blankRe.Split(text, -1) {
		if strings.TrimSpace(block) != "" {
			entries = append(entries, strings.TrimSpace(block))
		}
	}
	return entries
}

// ExtractLeads turns a raw text block that may contain one or many entries into
// an ordered list of candidates, one per blank-line-separated block. Output
// order matches input order. Pure transformation, no I/O.
func ExtractLeads(text string) []Candidate {
	var candidates []Candidate
	for _, entry := range SplitEntries(text) {
		candidates = append(candidates, ExtractLead(entry))
	}
	return candidates
}

// ExtractLead extracts a single candidate from one entry block.
// Precedence: email and phone by pattern anywhere in the block, name from the
// first non-contact line or comma segment, company from an explicit label or an
// organizational suffix, leftover text as description.
func ExtractLead(block string) Candidate {
	c := Candidate{RawInput: block}

	c.Email = emailRe.FindString(block)
	c.Website = findWebsite(block)

	// Strip emails before phone scanning so digits in addresses don't match.
	scrubbed := emailRe.ReplaceAllString(block, "")
	c.Phone = findPhone(scrubbed)

	lines := strings.Split(block, "\n")
	if len(lines) == 1 && strings.Contains(lines[0], ",") {
		extractFromSegments(&c, strings.Split(lines[0], ","))
	} else {
		extractFromLines(&c, lines)
	}

	c.Confidence = aggregateConfidence(&c)
	return c
}

func findPhone(text string) string {
	for _, m := range phoneRe.FindAllString(text, -1) {
		digits := digitsRe.ReplaceAllString(m, "")
		if len(digits) >= 7 && len(digits) <= 15 {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

func findWebsite(text string) string {
	m := websiteRe.FindString(text)
	return strings.TrimRight(m, ".,;)")
}

// extractFromSegments handles single-line comma-separated entries like
// "John Doe, john@example.com, +1 555-0123, ABC Corp".
func extractFromSegments(c *Candidate, segments []string) {
	var leftovers []string
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" || isContactSegment(seg) {
			continue
		}
		if c.Company == "" && hasCompanySuffix(seg) {
			c.Company = seg
			continue
		}
		leftovers = append(leftovers, seg)
	}

	if c.Name == "" {
		for i, seg := range leftovers {
			if looksLikeName(seg) {
				c.Name = seg
				leftovers = append(leftovers[:i], leftovers[i+1:]...)
				break
			}
		}
	}
	// A trailing unclassified segment after the name is most likely the company.
	// Without a name the segments are just prose and stay in the description.
	if c.Name != "" && c.Company == "" && len(leftovers) > 0 {
		c.Company = leftovers[0]
		leftovers = leftovers[1:]
	}
	c.Description = strings.Join(leftovers, ", ")
}

func extractFromLines(c *Candidate, lines []string) {
	var leftovers []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if label, value, ok := splitLabel(line); ok {
			if consumeLabeled(c, label, value) {
				continue
			}
			leftovers = append(leftovers, line)
			continue
		}

		cleaned := stripContacts(line)
		if cleaned == "" {
			continue
		}

		// First plain line that reads like a person is the name. Lines like
		// "Sarah Johnson from StartupXYZ" also carry the company.
		if c.Name == "" {
			name, company := splitNameAndCompany(cleaned)
			if looksLikeName(name) {
				c.Name = name
				if c.Company == "" && company != "" {
					c.Company = company
				}
				continue
			}
		}

		if c.Company == "" {
			if company := guessCompany(cleaned); company != "" {
				c.Company = company
				continue
			}
		}

		leftovers = append(leftovers, cleaned)
	}

	c.Description = strings.Join(leftovers, "\n")
}

func splitLabel(line string) (label, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 || strings.Contains(line[:idx], " ") || strings.Contains(line[:idx], "/") {
		return "", "", false
	}
	label = strings.ToLower(strings.TrimSpace(line[:idx]))
	value = strings.TrimSpace(line[idx+1:])
	return label, value, value != ""
}

func consumeLabeled(c *Candidate, label, value string) bool {
	switch label {
	case "name", "contact":
		if c.Name == "" {
			c.Name = stripContacts(value)
		}
	case "company", "organization", "org":
		if c.Company == "" {
			c.Company = value
		}
	case "email", "e-mail":
		if c.Email == "" {
			c.Email = emailRe.FindString(value)
		}
	case "phone", "tel", "mobile":
		if c.Phone == "" {
			c.Phone = findPhone(value)
		}
	case "website", "url", "site":
		if c.Website == "" {
			c.Website = findWebsite(value)
		}
	default:
		return false
	}
	return true
}

// stripContacts removes emails, phones and URLs from a line so the remaining
// text can be judged as a name or descriptive text.
func stripContacts(line string) string {
	line = emailRe.ReplaceAllString(line, "")
	line = websiteRe.ReplaceAllString(line, "")
	for _, m := range phoneRe.FindAllString(line, -1) {
		digits := digitsRe.ReplaceAllString(m, "")
		if len(digits) >= 7 && len(digits) <= 15 {
			line = strings.Replace(line, m, "", 1)
		}
	}
	line = strings.Trim(line, " \t-–,;:()")
	return strings.TrimSpace(line)
}

// splitNameAndCompany handles lines like "John Doe from Acme Corp" or
// "Jane Smith at Globex". The part before the connector is the name.
func splitNameAndCompany(line string) (name, company string) {
	for _, sep := range []string{" from ", " at ", " of ", " @ "} {
		if idx := strings.Index(line, sep); idx > 0 {
			return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+len(sep):])
		}
	}
	return line, ""
}

func guessCompany(line string) string {
	if _, company := splitNameAndCompany(line); company != "" && hasCompanySuffix(company) {
		return company
	}
	if hasCompanySuffix(line) {
		return line
	}
	return ""
}

// looksLikeName accepts short sequences of capitalized words, e.g. "John Doe".
// It keeps free-form prose out of the name field so unmatchable text yields an
// empty detection result instead of a bogus name.
func looksLikeName(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 || len(words) > 4 || len(s) > 100 {
		return false
	}
	// "Globex Corporation" is capitalized too; the suffix disambiguates.
	if hasCompanySuffix(s) {
		return false
	}
	for _, w := range words {
		runes := []rune(w)
		if !unicode.IsUpper(runes[0]) {
			return false
		}
		for _, r := range runes {
			if !unicode.IsLetter(r) && r != '.' && r != '\'' && r != '-' {
				return false
			}
		}
	}
	return true
}

func isContactSegment(seg string) bool {
	if emailRe.MatchString(seg) || websiteRe.MatchString(seg) {
		return true
	}
	digits := digitsRe.ReplaceAllString(seg, "")
	return phoneRe.MatchString(seg) && len(digits) >= 7 && len(digits) <= 15
}

func hasCompanySuffix(s string) bool {
	words := strings.Fields(strings.ToLower(strings.Trim(s, ".,")))
	if len(words) == 0 {
		return false
	}
	last := strings.Trim(words[len(words)-1], ".,")
	for _, suffix := range companySuffixes {
		if last == suffix {
			return true
		}
	}
	return false
}

// aggregateConfidence combines the per-field constants with a noisy-or: each
// detected field can only raise the score, each missing one can only lower it.
func aggregateConfidence(c *Candidate) float64 {
	conf := 0.0
	combine := func(v float64) { conf = 1 - (1-conf)*(1-v) }

	if c.Email != "" {
		combine(ConfidenceEmail)
	}
	if c.Phone != "" {
		combine(ConfidencePhone)
	}
	if c.Name != "" {
		combine(ConfidenceName)
	}
	if c.Company != "" {
		combine(ConfidenceCompany)
	}
	return conf
}
