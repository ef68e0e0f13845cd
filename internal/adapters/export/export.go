// Package export writes the workspace outline to a plain-text document on
// disk. Server-side binary export (docx, pptx) is downloaded through the
// API client instead.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/khyahahati/ai-doc-builder/internal/domain"
)

const (
	sectionSeparator   = "\n\n-----------------------------\n\n"
	exportFileMode     = 0o644
	emptyFieldLabel    = "(none)"
	emptyContentLabel  = "[No content generated yet]"
	exportFileTemplate = "workspace-%s.txt"
)

// Format renders the ordered outline as the plain-text document body.
func Format(sections []domain.Section) string {
	blocks := make([]string, 0, len(sections))
	for i, section := range sections {
		blocks = append(blocks, formatSection(i+1, section))
	}

	return strings.Join(blocks, sectionSeparator)
}

func formatSection(index int, section domain.Section) string {
	return fmt.Sprintf(
		"%d. %s\nSummary: %s\nGuidance: %s\n\n%s",
		index,
		strings.TrimSpace(section.Title),
		orLabel(section.Summary, emptyFieldLabel),
		orLabel(section.Guidance, emptyFieldLabel),
		orLabel(section.Content, emptyContentLabel),
	)
}

func orLabel(value, label string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return label
	}

	return trimmed
}

// Filename is the conventional export name for a project workspace. Before
// a project is selected the workspace exports as "workspace-draft.txt".
func Filename(projectID domain.ProjectID) string {
	if projectID == "" {
		return fmt.Sprintf(exportFileTemplate, "draft")
	}
	return fmt.Sprintf(exportFileTemplate, projectID)
}

// WriteFile formats the outline and writes it under dir, returning the
// path of the written file.
func WriteFile(dir string, projectID domain.ProjectID, sections []domain.Section) (string, error) {
	path := filepath.Join(dir, Filename(projectID))
	if err := os.WriteFile(path, []byte(Format(sections)), exportFileMode); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}

	return path, nil
}
