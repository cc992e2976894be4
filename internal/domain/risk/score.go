package risk

import (
	"strings"
	"unicode"
)

// Level enum
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Assessment is the algorithmic risk verdict for a contract.
// Flags are title-cased keyword labels; collaborators may reuse them
// as literal search terms to mark risky spans in the source document.
type Assessment struct {
	Score int      `json:"score"`
	Level Level    `json:"level"`
	Flags []string `json:"flags"`
}

type weightedTerm struct {
	Term   string
	Weight int
}

// Weight tables, scanned in declared order. A term contributes its weight
// once if it occurs as a substring of the lower-cased text.

// High impact -> immediate deal-breakers
var highImpactTerms = []weightedTerm{
	{"termination without cause", 30},
	{"termination for convenience", 30},
	{"indemnify", 25},
	{"indemnification", 25},
	{"unlimited liability", 30},
	{"liquidated damages", 25},
	{"automatic renewal", 25},
	{"auto-renewal", 25},
}

// Medium impact -> standard but risky
var mediumImpactTerms = []weightedTerm{
	{"arbitration", 15},
	{"exclusive jurisdiction", 15},
	{"non-compete", 15},
	{"exclusivity", 15},
	{"penalty", 15},
	{"late payment fee", 10},
	{"confidentiality", 10},
	{"work for hire", 15},
}

// Low impact -> annoyances. Reserved for a future scoring pass; the
// current scoring loop intentionally skips this table.
var lowImpactTerms = []weightedTerm{
	{"written notice", 5},
	{"30 days", 5},
	{"reasonable efforts", 5},
}

const (
	maxScore = 100

	// maxFlags caps flags contributed by the medium table. High-impact
	// flags are never capped.
	maxFlags = 6

	thresholdHigh   = 70
	thresholdMedium = 40
)

// sentinelFlag is reported when non-empty text matched no keyword.
const sentinelFlag = "Standard Terms"

// Score runs the keyword-weighted scoring over raw contract text.
// Pure and total: empty input yields {0, Low, nil}.
func Score(text string) Assessment {
	if text == "" {
		return Assessment{Score: 0, Level: LevelLow, Flags: []string{}}
	}

	lower := strings.ToLower(text)
	score := 0
	var flags []string

	for _, wt := range highImpactTerms {
		if strings.Contains(lower, wt.Term) {
			score += wt.Weight
			flags = appendFlag(flags, wt.Term, 0)
		}
	}

	for _, wt := range mediumImpactTerms {
		if strings.Contains(lower, wt.Term) {
			score += wt.Weight
			flags = appendFlag(flags, wt.Term, maxFlags)
		}
	}

	if score > maxScore {
		score = maxScore
	}

	level := LevelLow
	switch {
	case score >= thresholdHigh:
		level = LevelHigh
	case score >= thresholdMedium:
		level = LevelMedium
	}

	if len(flags) == 0 {
		flags = []string{sentinelFlag}
	}

	return Assessment{Score: score, Level: level, Flags: flags}
}

// appendFlag adds the title-cased term, deduplicated. limit=0 means uncapped.
func appendFlag(flags []string, term string, limit int) []string {
	if limit > 0 && len(flags) >= limit {
		return flags
	}
	label := titleCase(term)
	for _, f := range flags {
		if f == label {
			return flags
		}
	}
	return append(flags, label)
}

// titleCase upper-cases the first letter of every alphabetic run, so
// "auto-renewal" becomes "Auto-Renewal".
func titleCase(s string) string {
	out := []rune(s)
	prevLetter := false
	for i, r := range out {
		if unicode.IsLetter(r) {
			if !prevLetter {
				out[i] = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
	}
	return string(out)
}
