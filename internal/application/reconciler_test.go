package application

import (
	"context"
	"errors"
	"testing"

	"github.com/khyahahati/ai-doc-builder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileAssignsServerIdentities(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport()
	transport.respond("/projects/42/outline", `{"sections":[{"id":11,"title":"Intro"},{"id":12,"title":"Body"}]}`)
	transport.respond("/projects/42/sections", `[{"id":11,"title":"Intro","content":"","version":0},{"id":12,"title":"Body","content":"","version":0}]`)

	store, err := NewSectionStore(
		domain.Section{ID: "draft-1", Title: "Intro"},
		domain.Section{ID: "draft-2", Title: "Body"},
	)
	require.NoError(t, err)

	target, err := NewReconciler(transport).Reconcile(context.Background(), "42", store, "token", "Intro")
	require.NoError(t, err)
	assert.Equal(t, domain.SectionID("11"), target.ID)
	assert.True(t, target.Persisted)

	sections := store.Snapshot()
	require.Len(t, sections, 2)
	assert.Equal(t, domain.SectionID("11"), sections[0].ID)
	assert.Equal(t, domain.SectionID("12"), sections[1].ID)
	assert.True(t, sections[0].Persisted)
	assert.True(t, sections[1].Persisted)

	outlineCalls := transport.callsTo("/projects/42/outline")
	require.Len(t, outlineCalls, 1)
	assert.Equal(t, outlineRequest{Sections: []string{"Intro", "Body"}}, outlineCalls[0].Body)
}

func TestReconcilePrefersLocalContent(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport()
	transport.respond("/projects/42/outline", `{}`)
	transport.respond("/projects/42/sections", `[{"id":11,"title":"Intro","content":"","version":0}]`)

	store, err := NewSectionStore(domain.Section{
		ID:       "draft-1",
		Title:    "Intro",
		Summary:  "the summary",
		Guidance: "the guidance",
		Content:  "draft text",
	})
	require.NoError(t, err)

	_, err = NewReconciler(transport).Reconcile(context.Background(), "42", store, "token", "Intro")
	require.NoError(t, err)

	section, ok := store.ByID("11")
	require.True(t, ok)
	assert.Equal(t, "draft text", section.Content)
	assert.Equal(t, "the summary", section.Summary)
	assert.Equal(t, "the guidance", section.Guidance)
}

func TestReconcileKeepsServerContentWhenLocalIsEmpty(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport()
	transport.respond("/projects/42/outline", `{}`)
	transport.respond("/projects/42/sections", `[{"id":11,"title":"Intro","content":"server text","version":3}]`)

	store, err := NewSectionStore(domain.Section{ID: "draft-1", Title: "Intro"})
	require.NoError(t, err)

	target, err := NewReconciler(transport).Reconcile(context.Background(), "42", store, "token", "Intro")
	require.NoError(t, err)
	assert.Equal(t, "server text", target.Content)
	assert.Equal(t, 3, target.Version)
}

func TestReconcileServerOrderWins(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport()
	transport.respond("/projects/42/outline", `{}`)
	transport.respond("/projects/42/sections", `[{"id":20,"title":"Body"},{"id":21,"title":"Intro"}]`)

	store, err := NewSectionStore(
		domain.Section{ID: "draft-1", Title: "Intro"},
		domain.Section{ID: "draft-2", Title: "Body"},
	)
	require.NoError(t, err)

	_, err = NewReconciler(transport).Reconcile(context.Background(), "42", store, "token", "Intro")
	require.NoError(t, err)

	sections := store.Snapshot()
	require.Len(t, sections, 2)
	assert.Equal(t, "Body", sections[0].Title)
	assert.Equal(t, "Intro", sections[1].Title)
}

func TestReconcileFailsWhenOutlinePostFails(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport()
	transport.fail("/projects/42/outline", errors.New("boom"))

	store, err := NewSectionStore(domain.Section{ID: "draft-1", Title: "Intro"})
	require.NoError(t, err)

	_, err = NewReconciler(transport).Reconcile(context.Background(), "42", store, "token", "Intro")
	require.ErrorIs(t, err, domain.ErrPersistOutline)

	// The store keeps its pre-persist state.
	section, ok := store.ByID("draft-1")
	require.True(t, ok)
	assert.False(t, section.Persisted)
}

func TestReconcileFailsWhenSectionFetchFails(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport()
	transport.respond("/projects/42/outline", `{}`)
	transport.fail("/projects/42/sections", errors.New("boom"))

	store, err := NewSectionStore(domain.Section{ID: "draft-1", Title: "Intro"})
	require.NoError(t, err)

	_, err = NewReconciler(transport).Reconcile(context.Background(), "42", store, "token", "Intro")
	require.ErrorIs(t, err, domain.ErrPersistOutline)
}

func TestReconcileFailsWhenTargetTitleMissing(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport()
	transport.respond("/projects/42/outline", `{}`)
	transport.respond("/projects/42/sections", `[{"id":11,"title":"Renamed"}]`)

	store, err := NewSectionStore(domain.Section{ID: "draft-1", Title: "Intro"})
	require.NoError(t, err)

	_, err = NewReconciler(transport).Reconcile(context.Background(), "42", store, "token", "Intro")
	require.ErrorIs(t, err, domain.ErrReconcile)

	// No partial merge: the draft identity survives the failed attempt.
	_, ok := store.ByID("draft-1")
	assert.True(t, ok)
}

func TestReconcileFailsOnDuplicateServerTitles(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport()
	transport.respond("/projects/42/outline", `{}`)
	transport.respond("/projects/42/sections", `[{"id":11,"title":"Intro"},{"id":12,"title":"Intro"}]`)

	store, err := NewSectionStore(domain.Section{ID: "draft-1", Title: "Intro"})
	require.NoError(t, err)

	_, err = NewReconciler(transport).Reconcile(context.Background(), "42", store, "token", "Intro")
	require.ErrorIs(t, err, domain.ErrReconcile)
}

func TestReconcileCarriesGeneratingFlagAcrossIdentitySwap(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport()
	transport.respond("/projects/42/outline", `{}`)
	transport.respond("/projects/42/sections", `[{"id":11,"title":"Intro"}]`)

	store, err := NewSectionStore(domain.Section{ID: "draft-1", Title: "Intro"})
	require.NoError(t, err)
	require.NoError(t, store.BeginGenerate("draft-1"))

	_, err = NewReconciler(transport).Reconcile(context.Background(), "42", store, "token", "Intro")
	require.NoError(t, err)

	err = store.BeginGenerate("11")
	require.ErrorIs(t, err, domain.ErrGenerationInFlight)
}
