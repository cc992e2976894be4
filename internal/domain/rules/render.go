package rules

import "strings"

// Display limits for the rendered narrative.
const (
	singleTopicLimit = 1
	multiTopicLimit  = 3
	sentenceMaxLen   = 200
)

// Render formats the report as the markdown narrative shown to users when
// the AI path is unavailable.
func (r Report) Render() string {
	parties := "Not automatically detected."
	if len(r.Parties) > 0 {
		parties = fmtList(r.Parties, singleTopicLimit)
	}

	dates := "No specific dates detected."
	if len(r.Dates) > 0 {
		dates = strings.Join(r.Dates, ", ")
	}

	money := "No monetary values detected."
	if len(r.Money) > 0 {
		money = strings.Join(r.Money, ", ")
	}

	sections := []string{
		"🔍 **Document Overview (Advanced Rule-Based Analysis)**\nUsing pattern matching to extract key insights (No AI Key Provided).",
		"🏷️ **Identified Parties**\n" + parties,
		"📅 **Key Dates**\n" + dates,
		"💰 **Financial Amounts**\n" + money,
		"⚖️ **Governing Law / Jurisdiction**\n" + fmtList(r.GoverningLaw, singleTopicLimit),
		"🔒 **Confidentiality Clauses**\n" + fmtList(r.Confidentiality, singleTopicLimit),
		"🛑 **Termination & Notice**\n" + fmtList(r.Termination, singleTopicLimit),
		"📋 **Key Obligations**\n" + fmtList(r.Obligations, multiTopicLimit),
		"⚠️ **Potential Risks**\n" + fmtList(r.Risks, multiTopicLimit),
		"🎯 **Recommendation**\nFor a comprehensive analysis including summaries and legal interpretation, please provide a valid API Key or use Premium Mode.",
	}

	return strings.Join(sections, "\n\n")
}

// Analyze is the one-shot helper: extract then render.
func Analyze(text string) string {
	return Extract(text).Render()
}

func fmtList(items []string, limit int) string {
	if len(items) == 0 {
		return "None detected."
	}
	if len(items) > limit {
		items = items[:limit]
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		if runes := []rune(it); len(runes) > sentenceMaxLen {
			it = string(runes[:sentenceMaxLen]) + "..."
		}
		lines = append(lines, "- "+it)
	}
	return strings.Join(lines, "\n")
}
