package llm

import "fmt"

// Verdict tokens the comparison prompt asks for
const (
	VerdictFirst  = "Headline 1"
	VerdictSecond = "Headline 2"
)

// BuildHeadlinePrompt asks for a one-sentence headline for a combined record
func BuildHeadlinePrompt(combined string) string {
	return fmt.Sprintf(`You are a local government reporter covering city council meetings.

You will receive:
- A section from a **city council meeting agenda** (note: this may be vague or generic)
- A section from the related **official legislation**
- A section from the **meeting transcript**

Your task is to write a **clear, one-sentence headline** that:
- Focuses on the **most newsworthy action or decision**
- Summarizes what the **council actually did**, proposed, debated, or approved
- Highlights **specific outcomes**, impacts, or controversial statements
- Is written at an **eighth-grade reading level**
- Contains **no commentary** or extra background

Do *not* copy or paraphrase the agenda title. Use the transcript and legislation instead.

---
%s

Headline:
`, combined)
}

// BuildSummaryPrompt asks for a bullet summary focused on an existing headline
func BuildSummaryPrompt(headline, combined string) string {
	return fmt.Sprintf(`You are a beat reporter covering public meetings.

Given:
- A section from the **meeting agenda**
- Related **official legislation**
- A **meeting transcript segment**
- A **headline** summarizing the segment

Write a **bullet-point summary** that:
- Focuses only on the topic described in the headline
- Uses relevant context from the transcript and agenda
- Clarifies or expands on important details (specific figures, decisions)
- Ignores unrelated discussion
- Is at an **eighth-grade reading level**

---
%s

Headline:
%s

Summary:
`, combined, headline)
}

// BuildComparisonPrompt asks which of two headlines is more important
func BuildComparisonPrompt(first, second string) string {
	return fmt.Sprintf(`You will be shown two headlines from city council meetings.

### Your Task
Select the headline that is more important, using the definition below.

### What Does "Important" Mean?
A headline is important if:
- It reflects a major change to the status quo,
- OR it has a large impact on a large number of people,
- OR it has a large impact on a marginalized group (e.g., people facing poverty, discrimination, or limited access to resources),
- OR it covers an issue that is especially newsworthy due to its civic relevance, urgency, or long-term consequences.

### Consider These Factors
- **Scope**: How many people in the city are affected?
- **Depth**: How significant or lasting is the impact?
- **Equity**: Does it affect vulnerable or underserved communities?

---

### Compare the Headlines Below

%s: %s
%s: %s

---

Your output should be a single line: either `+"`%s`"+` or `+"`%s`"+` and no explanation.
`, VerdictFirst, first, VerdictSecond, second, VerdictFirst, VerdictSecond)
}
