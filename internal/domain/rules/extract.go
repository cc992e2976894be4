package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// Report holds everything the offline extractor pulled out of a contract.
// Buckets are deduplicated, first occurrence wins.
type Report struct {
	Parties         []string `json:"parties"`
	Dates           []string `json:"dates"`
	Money           []string `json:"money"`
	Obligations     []string `json:"obligations"`
	Risks           []string `json:"risks"`
	GoverningLaw    []string `json:"governing_law"`
	Confidentiality []string `json:"confidentiality"`
	Termination     []string `json:"termination"`
}

var datePatterns = []*regexp.Regexp{
	// Jan 1, 2024 style
	regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}`),
	// 2024-01-01
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	// 01/01/2024 or 1-1-24
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
}

var moneyPatterns = []*regexp.Regexp{
	// $1,000 | €500.00 | £25
	regexp.MustCompile(`[\$€£₹]\s?\d+(?:,\d{3})*(?:\.\d{2})?`),
	// 500 USD | 1,000.00 EUR
	regexp.MustCompile(`\b\d+(?:,\d{3})*(?:\.\d{2})?\s+(?:USD|EUR|GBP|INR|CAD|AUD)\b`),
}

// Naive "between X and Y" party pattern, bounded by comma/defined/herein.
var partyPattern = regexp.MustCompile(`(?i)between\s+(.*?)\s+and\s+(.*?)(?:,|\s+defined|\s+herein)`)

// maxPartyNameLen rejects obvious mis-captures of whole paragraphs.
const maxPartyNameLen = 100

// Extract runs the full pattern pipeline over raw text. It never fails:
// absence of matches yields empty buckets.
func Extract(text string) Report {
	var r Report

	for _, p := range datePatterns {
		r.Dates = append(r.Dates, p.FindAllString(text, -1)...)
	}
	for _, p := range moneyPatterns {
		r.Money = append(r.Money, p.FindAllString(text, -1)...)
	}

	for _, m := range partyPattern.FindAllStringSubmatch(text, -1) {
		p1 := strings.TrimSpace(m[1])
		p2 := strings.TrimSpace(m[2])
		if len(p1) < maxPartyNameLen && len(p2) < maxPartyNameLen {
			r.Parties = append(r.Parties, fmt.Sprintf("%s & %s", p1, p2))
		}
	}

	for _, s := range splitSentences(text) {
		clean := strings.TrimSpace(s)
		if clean == "" {
			continue
		}
		lower := strings.ToLower(clean)

		if strings.Contains(lower, "shall") || strings.Contains(lower, "must") || strings.Contains(lower, "agree to") {
			r.Obligations = append(r.Obligations, clean)
		}
		if strings.Contains(lower, "breach") || strings.Contains(lower, "penalty") ||
			strings.Contains(lower, "indemnif") || strings.Contains(lower, "liability") {
			r.Risks = append(r.Risks, clean)
		}
		if strings.Contains(lower, "governing law") || strings.Contains(lower, "jurisdiction") || strings.Contains(lower, "laws of") {
			r.GoverningLaw = append(r.GoverningLaw, clean)
		}
		if strings.Contains(lower, "confidential") || strings.Contains(lower, "non-disclosure") {
			r.Confidentiality = append(r.Confidentiality, clean)
		}
		if strings.Contains(lower, "terminat") &&
			(strings.Contains(lower, "notice") || strings.Contains(lower, "immediate")) {
			r.Termination = append(r.Termination, clean)
		}
	}

	r.Parties = dedup(r.Parties)
	r.Dates = dedup(r.Dates)
	r.Money = dedup(r.Money)
	r.Obligations = dedup(r.Obligations)
	r.Risks = dedup(r.Risks)
	r.GoverningLaw = dedup(r.GoverningLaw)
	r.Confidentiality = dedup(r.Confidentiality)
	r.Termination = dedup(r.Termination)
	return r
}

// splitSentences breaks text on '.', '!' or '?' followed by whitespace.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && isSpace(text[i+1]) {
			out = append(out, text[start:i+1])
			i++
			for i < len(text) && isSpace(text[i]) {
				i++
			}
			start = i
			i--
		}
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func dedup(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	return out
}
