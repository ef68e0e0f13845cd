package ports

import (
	"context"

	"github.com/khyahahati/ai-doc-builder/internal/domain"
)

// SessionRepository remembers which project the workspace commands operate
// on. An empty ProjectID means no project has been selected yet.
type SessionRepository interface {
	ActiveProject(ctx context.Context) (domain.ProjectID, error)
	SetActiveProject(ctx context.Context, id domain.ProjectID) error
}
