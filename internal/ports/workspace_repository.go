package ports

import (
	"context"

	"github.com/khyahahati/ai-doc-builder/internal/domain"
)

// WorkspaceRepository persists the draft outline between CLI invocations so
// one editing session can span several commands. It stores the ordered
// section sequence verbatim; all merge policy lives in the application layer.
type WorkspaceRepository interface {
	Load(ctx context.Context, projectID domain.ProjectID) ([]domain.Section, error)
	Save(ctx context.Context, projectID domain.ProjectID, sections []domain.Section) error
}
