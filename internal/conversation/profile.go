package conversation

import (
	"regexp"
	"strconv"
	"strings"
)

// UserProfile holds facts inferred about the current speaker. Zero
// values mean unknown; nothing is ever cleared except by starting a new
// session.
type UserProfile struct {
	Name             string   `json:"name,omitempty"`
	Age              int      `json:"age,omitempty"`
	Occupation       string   `json:"occupation,omitempty"`
	FamilySize       int      `json:"family_size,omitempty"`
	CurrentInsurance []string `json:"current_insurance,omitempty"`
}

type mergeRule int

const (
	// overwrite replaces the field on every match; last extraction wins.
	overwrite mergeRule = iota
	// accumulate adds to the field on every match. Restating the same
	// fact across turns double-counts; that behavior is kept on purpose
	// (see DESIGN.md).
	accumulate
)

// extractionRule binds a pattern to one profile field and its merge
// policy. Rules run in order on every normalized utterance.
type extractionRule struct {
	field   string
	merge   mergeRule
	pattern *regexp.Regexp
	apply   func(p *UserProfile, match []string)
}

var extractionRules = []extractionRule{
	{
		field:   "name",
		merge:   overwrite,
		pattern: regexp.MustCompile(`(?:my name is|i'm|i am|call me) ([a-z]+)`),
		apply: func(p *UserProfile, match []string) {
			p.Name = titleCase(match[1])
		},
	},
	{
		field:   "age",
		merge:   overwrite,
		pattern: regexp.MustCompile(`(?:i'm|i am|age is) (\d+)`),
		apply: func(p *UserProfile, match []string) {
			if age, err := strconv.Atoi(match[1]); err == nil {
				p.Age = age
			}
		},
	},
	{
		field:   "familySize",
		merge:   accumulate,
		pattern: regexp.MustCompile(`married|wife|husband`),
		apply: func(p *UserProfile, _ []string) {
			base := p.FamilySize
			if base == 0 {
				base = 1
			}
			p.FamilySize = base + 1
		},
	},
	{
		field:   "familySize",
		merge:   accumulate,
		pattern: regexp.MustCompile(`(\d+) (?:child|children|kids)`),
		apply: func(p *UserProfile, match []string) {
			count, err := strconv.Atoi(match[1])
			if err != nil {
				return
			}
			base := p.FamilySize
			if base == 0 {
				base = 2
			}
			p.FamilySize = base + count
		},
	},
}

// extractUserInfo applies every extraction rule to a normalized
// (lowercase, trimmed) utterance. Extraction never fails; an utterance
// that matches nothing changes nothing.
func extractUserInfo(profile *UserProfile, utterance string) {
	for _, rule := range extractionRules {
		if match := rule.pattern.FindStringSubmatch(utterance); match != nil {
			rule.apply(profile, match)
		}
	}
}

// titleCase restores a display capitalization to a name captured from
// the lowercased utterance.
func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
