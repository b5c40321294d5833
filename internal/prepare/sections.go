package prepare

import (
	"regexp"
	"strings"
)

// Section names the selector understands, in priority order.
const (
	Impression    = "impression"
	Findings      = "findings"
	LastParagraph = "last_paragraph"
	Comparison    = "comparison"
)

var Priority = []string{Impression, Findings, LastParagraph, Comparison}

// Sections is a report split into named sections. Names may repeat.
type Sections struct {
	Names []string
	Texts []string
}

// Last returns the text of the last section called name.
func (s Sections) Last(name string) (string, bool) {
	for i := len(s.Names) - 1; i >= 0; i-- {
		if s.Names[i] == name {
			return strings.TrimSpace(s.Texts[i]), true
		}
	}
	return "", false
}

// Sectioner splits a free-text report into sections.
type Sectioner interface {
	Section(text string) Sections
}

// Overrides hold manually determined sections for reports that cannot be
// sectioned automatically, keyed by report file stem.
type Overrides struct {
	// Spans are byte ranges of the raw report text.
	Spans map[string][2]int `yaml:"spans"`
	// Sections rename which section holds the conclusion.
	Sections map[string]string `yaml:"sections"`
}

var headingRe = regexp.MustCompile(`(?m)^[ \t]*([A-Z][A-Z /()&-]*[A-Z)]):`)

// HeadingSectioner splits on upper case "HEADING:" lines. Text before the
// first heading is a preamble; the final paragraph of the report is also
// exposed as last_paragraph.
type HeadingSectioner struct{}

func (HeadingSectioner) Section(text string) Sections {
	var s Sections

	locs := headingRe.FindAllStringSubmatchIndex(text, -1)
	start := 0
	name := "preamble"
	for _, loc := range locs {
		s.Names = append(s.Names, name)
		s.Texts = append(s.Texts, text[start:loc[0]])
		name = normalizeHeading(text[loc[2]:loc[3]])
		start = loc[1]
	}
	s.Names = append(s.Names, name)
	s.Texts = append(s.Texts, text[start:])

	if p := lastParagraph(text[start:]); p != "" {
		s.Names = append(s.Names, LastParagraph)
		s.Texts = append(s.Texts, p)
	}
	return s
}

func normalizeHeading(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.Fields(h), "_")
}

func lastParagraph(text string) string {
	paras := strings.Split(strings.TrimSpace(text), "\n\n")
	return strings.TrimSpace(paras[len(paras)-1])
}
