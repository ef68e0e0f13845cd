package toml

import (
	"fmt"
	"time"

	"github.com/khyahahati/ai-doc-builder/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version       int               `toml:"version"`
	ActiveProject string            `toml:"active_project,omitempty"`
	Workspaces    []workspaceSchema `toml:"workspaces"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported workspace schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type workspaceSchema struct {
	ProjectID string          `toml:"project_id"`
	Sections  []sectionSchema `toml:"sections"`
}

type sectionSchema struct {
	ID           string          `toml:"id"`
	Title        string          `toml:"title"`
	Summary      string          `toml:"summary,omitempty"`
	Guidance     string          `toml:"guidance,omitempty"`
	Content      string          `toml:"content,omitempty"`
	Persisted    bool            `toml:"persisted"`
	Version      int             `toml:"version,omitempty"`
	LastFeedback *feedbackSchema `toml:"last_feedback,omitempty"`
}

type feedbackSchema struct {
	Sentiment string `toml:"sentiment"`
	Message   string `toml:"message,omitempty"`
	At        string `toml:"at"`
}

func toSchema(section domain.Section) sectionSchema {
	encoded := sectionSchema{
		ID:        string(section.ID),
		Title:     section.Title,
		Summary:   section.Summary,
		Guidance:  section.Guidance,
		Content:   section.Content,
		Persisted: section.Persisted,
		Version:   section.Version,
	}
	if section.LastFeedback != nil {
		encoded.LastFeedback = &feedbackSchema{
			Sentiment: string(section.LastFeedback.Sentiment),
			Message:   section.LastFeedback.Message,
			At:        section.LastFeedback.At.UTC().Format(time.RFC3339),
		}
	}
	return encoded
}

func fromSchema(entry sectionSchema) domain.Section {
	section := domain.Section{
		ID:        domain.SectionID(entry.ID),
		Title:     entry.Title,
		Summary:   entry.Summary,
		Guidance:  entry.Guidance,
		Content:   entry.Content,
		Persisted: entry.Persisted,
		Version:   entry.Version,
	}
	if entry.LastFeedback != nil {
		at, _ := time.Parse(time.RFC3339, entry.LastFeedback.At)
		section.LastFeedback = &domain.Feedback{
			Sentiment: domain.Sentiment(entry.LastFeedback.Sentiment),
			Message:   entry.LastFeedback.Message,
			At:        at,
		}
	}
	return section
}
