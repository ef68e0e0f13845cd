package workspace

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/khyahahati/ai-doc-builder/internal/application"
	"github.com/khyahahati/ai-doc-builder/internal/domain"
)

type RenderOptions struct {
	Now time.Time
}

const contentPreviewWidth = 72

func renderView(status application.WorkspaceStatus, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(workspaceTitle(status.Project)),
		s.header.Render(fmt.Sprintf("sections: %d", len(status.Sections))),
	}

	if len(status.Sections) == 0 {
		lines = append(lines, s.empty.Render("No sections in the outline."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for i, section := range status.Sections {
		lines = append(lines, s.sectionGap.Render(renderSection(i+1, section, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func workspaceTitle(project domain.Project) string {
	trimmed := strings.TrimSpace(project.Title)
	if trimmed == "" {
		return "Workspace"
	}
	if project.DocType == "" {
		return trimmed
	}

	return fmt.Sprintf("%s (%s)", trimmed, project.DocType)
}

func renderSection(index int, section domain.Section, opts RenderOptions, s styles) string {
	parts := []string{sectionLine(index, section, s)}

	if summary := strings.TrimSpace(section.Summary); summary != "" {
		parts = append(parts, s.detail.Render("summary: "+summary))
	}
	if guidance := strings.TrimSpace(section.Guidance); guidance != "" {
		parts = append(parts, s.detail.Render("guidance: "+guidance))
	}

	parts = append(parts, contentLine(section, s))

	if line := feedbackLine(section.LastFeedback, opts.Now, s); line != "" {
		parts = append(parts, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func sectionLine(index int, section domain.Section, s styles) string {
	segments := []string{
		s.section.Render(fmt.Sprintf("%d. %s", index, strings.TrimSpace(section.Title))),
		" ",
		statusMarker(section, s),
	}

	if section.Generating {
		segments = append(segments, " ", s.generating.Render("[generating]"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func statusMarker(section domain.Section, s styles) string {
	if !section.Persisted {
		return s.draft.Render("[draft]")
	}

	return s.persisted.Render(fmt.Sprintf("[v%d]", section.Version))
}

func contentLine(section domain.Section, s styles) string {
	content := strings.TrimSpace(section.Content)
	if content == "" {
		return s.empty.Render("(no content yet)")
	}

	return s.detail.Render(contentPreview(content, contentPreviewWidth))
}

// contentPreview collapses the content to its first line, capped at width
// runes, so a long generated body does not swamp the outline listing.
func contentPreview(content string, width int) string {
	line := content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}

	runes := []rune(line)
	if len(runes) <= width {
		return line
	}

	return string(runes[:width]) + "…"
}

func feedbackLine(feedback *domain.Feedback, now time.Time, s styles) string {
	if feedback == nil {
		return ""
	}

	style := s.feedback
	if feedback.Sentiment == domain.SentimentDislike {
		style = s.dislike
	}

	text := string(feedback.Sentiment)
	if msg := strings.TrimSpace(feedback.Message); msg != "" {
		text = fmt.Sprintf("%s: %s", text, msg)
	}
	if age := formatFeedbackAge(feedback.At, now); age != "" {
		text = fmt.Sprintf("%s (%s)", text, age)
	}

	return style.Render("last feedback: " + text)
}

func formatFeedbackAge(at, now time.Time) string {
	if at.IsZero() || now.IsZero() || at.After(now) {
		return ""
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return at.Format("02 Jan 15:04")
	}
}
