package toml

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/khyahahati/ai-doc-builder/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())

	workspacePath := filepath.Join(t.TempDir(), "workspace.toml")
	cfg := viper.New()
	cfg.Set(workspacePathKey, workspacePath)

	repo, err := NewRepository(cfg)
	require.NoError(t, err)

	return repo, workspacePath
}

func TestLoadMissingFileReturnsEmptyOutline(t *testing.T) {
	repo, _ := newTestRepository(t)

	sections, err := repo.Load(context.Background(), "42")
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	repo, workspacePath := newTestRepository(t)
	ctx := context.Background()

	feedbackAt := time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC)
	sections := []domain.Section{
		{
			ID:        "draft-1",
			Title:     "Risks",
			Summary:   "Known project risks",
			Guidance:  "Keep it short",
			Content:   "Draft body",
			Persisted: false,
			Version:   0,
			LastFeedback: &domain.Feedback{
				Sentiment: domain.SentimentLike,
				Message:   "Draft generated (local)",
				At:        feedbackAt,
			},
		},
		{ID: "501", Title: "Timeline", Persisted: true, Version: 3},
	}

	require.NoError(t, repo.Save(ctx, "42", sections))

	info, err := os.Stat(workspacePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(workspaceFileMode), info.Mode().Perm())

	loaded, err := repo.Load(ctx, "42")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, sections[0].ID, loaded[0].ID)
	assert.Equal(t, sections[0].Title, loaded[0].Title)
	assert.Equal(t, sections[0].Summary, loaded[0].Summary)
	assert.Equal(t, sections[0].Guidance, loaded[0].Guidance)
	assert.Equal(t, sections[0].Content, loaded[0].Content)
	assert.False(t, loaded[0].Persisted)
	require.NotNil(t, loaded[0].LastFeedback)
	assert.Equal(t, domain.SentimentLike, loaded[0].LastFeedback.Sentiment)
	assert.True(t, feedbackAt.Equal(loaded[0].LastFeedback.At))
	assert.True(t, loaded[1].Persisted)
	assert.Equal(t, 3, loaded[1].Version)
}

func TestSaveReplacesExistingProjectWorkspace(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "42", []domain.Section{
		{ID: "draft-1", Title: "Risks"},
		{ID: "draft-2", Title: "Timeline"},
	}))
	require.NoError(t, repo.Save(ctx, "42", []domain.Section{
		{ID: "501", Title: "Risks", Persisted: true, Version: 1},
	}))

	loaded, err := repo.Load(ctx, "42")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, domain.SectionID("501"), loaded[0].ID)
}

func TestSaveKeepsOtherProjectsIntact(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "42", []domain.Section{{ID: "draft-1", Title: "Risks"}}))
	require.NoError(t, repo.Save(ctx, "7", []domain.Section{{ID: "draft-9", Title: "Scope"}}))

	first, err := repo.Load(ctx, "42")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "Risks", first[0].Title)

	second, err := repo.Load(ctx, "7")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "Scope", second[0].Title)
}

func TestGeneratingFlagIsNotPersisted(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "42", []domain.Section{
		{ID: "draft-1", Title: "Risks", Generating: true},
	}))

	loaded, err := repo.Load(ctx, "42")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.False(t, loaded[0].Generating)
}

func TestActiveProjectRoundTrip(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	active, err := repo.ActiveProject(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, repo.SetActiveProject(ctx, "42"))

	active, err = repo.ActiveProject(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectID("42"), active)
}

func TestSetActiveProjectKeepsWorkspaces(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "42", []domain.Section{{ID: "draft-1", Title: "Risks"}}))
	require.NoError(t, repo.SetActiveProject(ctx, "42"))

	loaded, err := repo.Load(ctx, "42")
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestLoadRejectsUnknownSchemaVersion(t *testing.T) {
	repo, workspacePath := newTestRepository(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(workspacePath), 0o700))
	require.NoError(t, os.WriteFile(workspacePath, []byte("version = 99\n"), 0o600))

	_, err := repo.Load(context.Background(), "42")
	require.Error(t, err)
}

func TestCancelledContextIsRejected(t *testing.T) {
	repo, _ := newTestRepository(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Load(ctx, "42")
	require.ErrorIs(t, err, context.Canceled)

	err = repo.Save(ctx, "42", nil)
	require.ErrorIs(t, err, context.Canceled)
}
