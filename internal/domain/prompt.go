package domain

import "strings"

const maxContentExcerpt = 2000

// ComposePrompt derives the instruction sent to the generation backend from a
// section's authoring fields. Precedence: summary+guidance, summary alone,
// guidance alone, then an excerpt of existing content so "regenerate from
// what's there" still carries signal. Empty string when the section holds
// nothing at all.
func ComposePrompt(section Section) string {
	summary := strings.TrimSpace(section.Summary)
	guidance := strings.TrimSpace(section.Guidance)

	switch {
	case summary != "" && guidance != "":
		return summary + "\n\nGuidance: " + guidance
	case summary != "":
		return summary
	case guidance != "":
		return "Guidance: " + guidance
	}

	content := strings.TrimSpace(section.Content)
	if content == "" {
		return ""
	}
	if runes := []rune(content); len(runes) > maxContentExcerpt {
		content = string(runes[:maxContentExcerpt])
	}
	return "Current content: " + content
}

// ComposeLocalDraft builds the offline placeholder body used when no
// credential or project is available. Never touches the network.
func ComposeLocalDraft(section Section) string {
	paragraphs := make([]string, 0, 3)

	if summary := strings.TrimSpace(section.Summary); summary != "" {
		paragraphs = append(paragraphs, summary)
	}
	if guidance := strings.TrimSpace(section.Guidance); guidance != "" {
		paragraphs = append(paragraphs, "Guidance applied: "+guidance)
	}
	paragraphs = append(paragraphs, "[Placeholder] Generated content will appear here once the backend service is connected.")

	return strings.Join(paragraphs, "\n\n")
}
