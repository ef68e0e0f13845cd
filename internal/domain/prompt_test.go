package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposePromptPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		section Section
		want    string
	}{
		{
			name:    "summary and guidance",
			section: Section{Summary: "S", Guidance: "G"},
			want:    "S\n\nGuidance: G",
		},
		{
			name:    "summary only",
			section: Section{Summary: "Outline the top risks"},
			want:    "Outline the top risks",
		},
		{
			name:    "guidance only",
			section: Section{Guidance: "Keep it short"},
			want:    "Guidance: Keep it short",
		},
		{
			name:    "content fallback",
			section: Section{Content: "existing draft"},
			want:    "Current content: existing draft",
		},
		{
			name:    "whitespace-only inputs fall through to content",
			section: Section{Summary: "  ", Guidance: "\n", Content: "body"},
			want:    "Current content: body",
		},
		{
			name:    "empty section",
			section: Section{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComposePrompt(tt.section))
		})
	}
}

func TestComposePromptDeterministic(t *testing.T) {
	section := Section{Summary: "S", Guidance: "G", Content: "C"}

	first := ComposePrompt(section)
	second := ComposePrompt(section)
	require.Equal(t, first, second)
}

func TestComposePromptTruncatesLongContent(t *testing.T) {
	section := Section{Content: strings.Repeat("x", 5000)}

	prompt := ComposePrompt(section)
	require.Equal(t, "Current content: "+strings.Repeat("x", 2000), prompt)
}

func TestComposePromptTruncatesOnRuneBoundary(t *testing.T) {
	section := Section{Content: strings.Repeat("é", 3000)}

	prompt := ComposePrompt(section)
	require.True(t, utf8.ValidString(prompt))
	require.Equal(t, "Current content: "+strings.Repeat("é", 2000), prompt)
}

func TestComposeLocalDraft(t *testing.T) {
	section := Section{Summary: "The summary.", Guidance: "The guidance."}

	draft := ComposeLocalDraft(section)
	assert.Equal(t,
		"The summary.\n\nGuidance applied: The guidance.\n\n[Placeholder] Generated content will appear here once the backend service is connected.",
		draft,
	)
}

func TestComposeLocalDraftEmptySection(t *testing.T) {
	draft := ComposeLocalDraft(Section{})
	assert.Equal(t, "[Placeholder] Generated content will appear here once the backend service is connected.", draft)
}

func TestSectionPatchApply(t *testing.T) {
	title := "New title"
	content := "New content"
	section := Section{ID: "draft-1", Title: "Old", Summary: "keep", Content: "old"}

	patched := SectionPatch{Title: &title, Content: &content}.Apply(section)
	assert.Equal(t, "New title", patched.Title)
	assert.Equal(t, "New content", patched.Content)
	assert.Equal(t, "keep", patched.Summary)
	assert.Equal(t, SectionID("draft-1"), patched.ID)
}

func TestSentimentValid(t *testing.T) {
	assert.True(t, SentimentLike.Valid())
	assert.True(t, SentimentDislike.Valid())
	assert.True(t, SentimentGenerate.Valid())
	assert.False(t, Sentiment("meh").Valid())
}
