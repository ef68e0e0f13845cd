package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/khyahahati/ai-doc-builder/internal/application"
	"github.com/khyahahati/ai-doc-builder/internal/domain"
)

// loadCredential treats a missing credential as the logged-out state: the
// workspace commands still work locally without one.
func loadCredential(ctx context.Context, app *app) (string, error) {
	credential, err := app.credentials.Get(ctx, credentialKey)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("load credential: %w", err)
	}

	return credential, nil
}

func loadSectionStore(ctx context.Context, app *app, projectID domain.ProjectID) (*application.SectionStore, error) {
	sections, err := app.workspace.Load(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load workspace: %w", err)
	}

	store, err := application.NewSectionStore(sections...)
	if err != nil {
		return nil, fmt.Errorf("restore workspace: %w", err)
	}

	return store, nil
}

func saveSectionStore(ctx context.Context, app *app, projectID domain.ProjectID, store *application.SectionStore) error {
	if err := app.workspace.Save(ctx, projectID, store.Snapshot()); err != nil {
		return fmt.Errorf("save workspace: %w", err)
	}

	return nil
}

func sectionByTitle(store *application.SectionStore, title string) (domain.Section, error) {
	section, ok := store.ByTitle(title)
	if !ok {
		return domain.Section{}, fmt.Errorf("section %q: %w", title, domain.ErrSectionNotFound)
	}

	return section, nil
}
