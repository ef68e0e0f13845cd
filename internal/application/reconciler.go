package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/khyahahati/ai-doc-builder/internal/domain"
	"github.com/khyahahati/ai-doc-builder/internal/ports"
)

// Reconciler maps ephemeral draft identities to server-assigned ones. The
// outline submit does not echo client IDs back, so correlation joins the
// pre-persist local list against the server list by exact title. The server
// list supplies identity and ordering; authored text and client-only fields
// come from the matching local record.
type Reconciler struct {
	transport ports.Transport
}

func NewReconciler(transport ports.Transport) *Reconciler {
	return &Reconciler{transport: transport}
}

type outlineRequest struct {
	Sections []string `json:"sections"`
}

type sectionPayload struct {
	ID      json.Number `json:"id"`
	Title   string      `json:"title"`
	Content string      `json:"content"`
	Version int         `json:"version"`
}

// Reconcile persists the outline for projectID, fetches the authoritative
// section list, merges it into the store, and returns the merged record
// whose title matches targetTitle. The store ends up server-ordered with
// every section persisted; a target that cannot be correlated fails with
// domain.ErrReconcile and leaves the store unchanged.
func (r *Reconciler) Reconcile(ctx context.Context, projectID domain.ProjectID, store *SectionStore, credential string, targetTitle string) (domain.Section, error) {
	titles := make([]string, 0, store.Len())
	for _, section := range store.Snapshot() {
		titles = append(titles, section.Title)
	}

	outlinePath := fmt.Sprintf("/projects/%s/outline", projectID)
	if _, err := r.transport.PostJSON(ctx, outlinePath, outlineRequest{Sections: titles}, credential); err != nil {
		return domain.Section{}, fmt.Errorf("%w: submit outline: %w", domain.ErrPersistOutline, err)
	}

	raw, err := r.transport.Get(ctx, fmt.Sprintf("/projects/%s/sections", projectID), credential)
	if err != nil {
		return domain.Section{}, fmt.Errorf("%w: fetch sections: %w", domain.ErrPersistOutline, err)
	}

	var serverSections []sectionPayload
	if err := json.Unmarshal(raw, &serverSections); err != nil {
		return domain.Section{}, fmt.Errorf("%w: decode sections: %w", domain.ErrPersistOutline, err)
	}

	var target domain.Section
	found := false
	err = store.ReplaceAll(func(current []domain.Section) ([]domain.Section, error) {
		merged, err := mergeServerSections(current, serverSections)
		if err != nil {
			return nil, err
		}
		for _, section := range merged {
			if titlesEqual(section.Title, targetTitle) {
				target = section
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: no server section titled %q", domain.ErrReconcile, targetTitle)
		}
		return merged, nil
	})
	if err != nil {
		return domain.Section{}, err
	}

	return target, nil
}

// mergeServerSections builds the post-persist sequence: identity and order
// from the server, content from the local record when it already holds
// authored text, summary/guidance/lastFeedback carried over from the local
// record since the server has no concept of them.
func mergeServerSections(current []domain.Section, serverSections []sectionPayload) ([]domain.Section, error) {
	localByTitle := make(map[string]domain.Section, len(current))
	for _, section := range current {
		localByTitle[strings.TrimSpace(section.Title)] = section
	}

	seen := make(map[string]struct{}, len(serverSections))
	merged := make([]domain.Section, 0, len(serverSections))
	for _, remote := range serverSections {
		title := strings.TrimSpace(remote.Title)
		if _, ok := seen[title]; ok {
			return nil, fmt.Errorf("%w: server returned duplicate title %q", domain.ErrReconcile, remote.Title)
		}
		seen[title] = struct{}{}

		section := domain.Section{
			ID:        domain.SectionID(remote.ID.String()),
			Title:     remote.Title,
			Content:   remote.Content,
			Version:   remote.Version,
			Persisted: true,
		}
		if local, ok := localByTitle[title]; ok {
			section.Summary = local.Summary
			section.Guidance = local.Guidance
			section.LastFeedback = local.LastFeedback
			// The in-flight flag survives the identity swap so the section
			// stays locked for the remainder of the action that triggered
			// reconciliation.
			section.Generating = local.Generating
			if local.Content != "" {
				section.Content = local.Content
			}
		}
		merged = append(merged, section)
	}

	return merged, nil
}
