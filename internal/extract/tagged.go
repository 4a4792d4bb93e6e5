package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/krishiai/krishi-gateway/internal/domain"
)

var (
	confidenceRegex = regexp.MustCompile(`(?i)CONFIDENCE:\s*(\d+)`)
	categoryRegex   = regexp.MustCompile(`(?i)CATEGORY:\s*(Pest|Disease|Deficiency|Other)`)
)

// TaggedField finds a line of the form "TAG: value" (tag match is
// case-insensitive) and returns the trimmed remainder of that line.
// Returns "" when the tag is absent. Used to pull structured fields out
// of deliberately semi-structured prose: vision and grounded-search
// requests cannot use JSON output mode, so the prompts ask for
// "DIAGNOSIS: ..." style lines instead.
func TaggedField(text, tag string) string {
	if text == "" || tag == "" {
		return ""
	}
	re, err := regexp.Compile(`(?i)(?:^|\n)[-*\s]*` + regexp.QuoteMeta(tag) + `:\s*(.*)`)
	if err != nil {
		return ""
	}
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	value := strings.TrimSpace(m[1])
	// Strip markdown emphasis the model sometimes wraps values in.
	return strings.Trim(value, "*_ ")
}

// TaggedBlock behaves like TaggedField but captures multiple lines,
// stopping at the next "- TAG:" style line or end of text.
func TaggedBlock(text, tag string) string {
	if text == "" || tag == "" {
		return ""
	}
	// Tag match is case-insensitive; the next-tag terminator is not,
	// so prose lines like "Note:" don't cut the block short.
	re, err := regexp.Compile(`(?s)(?i:` + regexp.QuoteMeta(tag) + `):\s*([\s\S]*?)(?:\n\s*[-*]?\s*[A-Z][A-Z /]+:|$)`)
	if err != nil {
		return ""
	}
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Confidence extracts the CONFIDENCE score and clamps it to [0, 100].
// Missing or unparseable scores default to 0.
func Confidence(text string) int {
	m := confidenceRegex.FindStringSubmatch(text)
	if len(m) < 2 {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// Category extracts the CATEGORY field, defaulting to CategoryOther.
func Category(text string) domain.IssueCategory {
	m := categoryRegex.FindStringSubmatch(text)
	if len(m) < 2 {
		return domain.CategoryOther
	}
	switch strings.ToLower(m[1]) {
	case "pest":
		return domain.CategoryPest
	case "disease":
		return domain.CategoryDisease
	case "deficiency":
		return domain.CategoryDeficiency
	default:
		return domain.CategoryOther
	}
}
