package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/khyahahati/ai-doc-builder/internal/domain"
	"github.com/khyahahati/ai-doc-builder/internal/ports"
)

// ProjectService covers the project surface around the workspace: creation,
// listing, metadata lookup, and the remote export download.
type ProjectService struct {
	transport ports.Transport
}

func NewProjectService(transport ports.Transport) *ProjectService {
	return &ProjectService{transport: transport}
}

type createProjectRequest struct {
	Title   string `json:"title"`
	DocType string `json:"doc_type"`
}

type projectPayload struct {
	ID        json.Number `json:"id"`
	Title     string      `json:"title"`
	DocType   string      `json:"doc_type"`
	CreatedAt string      `json:"created_at"`
}

type projectDetailPayload struct {
	projectPayload
	Sections []sectionIndexPayload `json:"sections"`
}

type sectionIndexPayload struct {
	ID      json.Number `json:"id"`
	Title   string      `json:"title"`
	Version int         `json:"version"`
	Status  string      `json:"status"`
}

func (s *ProjectService) Create(ctx context.Context, cmd CreateProjectCommand, credential string) (domain.Project, error) {
	if credential == "" {
		return domain.Project{}, domain.ErrAuthRequired
	}
	if !cmd.DocType.Valid() {
		return domain.Project{}, fmt.Errorf("doc type must be %q or %q", domain.DocTypeDocx, domain.DocTypePptx)
	}

	raw, err := s.transport.PostJSON(ctx, "/projects/", createProjectRequest{
		Title:   cmd.Title,
		DocType: string(cmd.DocType),
	}, credential)
	if err != nil {
		return domain.Project{}, fmt.Errorf("create project: %w", err)
	}

	var payload projectPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.Project{}, fmt.Errorf("decode project: %w", err)
	}
	return payload.toDomain(), nil
}

func (s *ProjectService) List(ctx context.Context, credential string) ([]domain.Project, error) {
	if credential == "" {
		return nil, domain.ErrAuthRequired
	}

	raw, err := s.transport.Get(ctx, "/projects/my", credential)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	var payloads []projectPayload
	if err := json.Unmarshal(raw, &payloads); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	projects := make([]domain.Project, 0, len(payloads))
	for _, payload := range payloads {
		projects = append(projects, payload.toDomain())
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id domain.ProjectID, credential string) (ProjectDetail, error) {
	if credential == "" {
		return ProjectDetail{}, domain.ErrAuthRequired
	}

	raw, err := s.transport.Get(ctx, fmt.Sprintf("/projects/%s", id), credential)
	if err != nil {
		return ProjectDetail{}, fmt.Errorf("get project %s: %w", id, err)
	}

	var payload projectDetailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ProjectDetail{}, fmt.Errorf("decode project %s: %w", id, err)
	}

	detail := ProjectDetail{Project: payload.toDomain()}
	for _, entry := range payload.Sections {
		detail.Sections = append(detail.Sections, SectionIndexEntry{
			ID:      domain.SectionID(entry.ID.String()),
			Title:   entry.Title,
			Version: entry.Version,
			Status:  entry.Status,
		})
	}
	return detail, nil
}

// ExportRemote fetches the server-rendered document. The bytes are opaque to
// the client; formatting is the backend's concern.
func (s *ProjectService) ExportRemote(ctx context.Context, id domain.ProjectID, docType domain.DocType, credential string) ([]byte, error) {
	if credential == "" {
		return nil, domain.ErrAuthRequired
	}
	if !docType.Valid() {
		return nil, fmt.Errorf("doc type must be %q or %q", domain.DocTypeDocx, domain.DocTypePptx)
	}

	data, err := s.transport.Download(ctx, fmt.Sprintf("/projects/%s/export?type=%s", id, docType), credential)
	if err != nil {
		return nil, fmt.Errorf("export project %s: %w", id, err)
	}
	return data, nil
}

func (p projectPayload) toDomain() domain.Project {
	return domain.Project{
		ID:        domain.ProjectID(p.ID.String()),
		Title:     p.Title,
		DocType:   domain.DocType(p.DocType),
		CreatedAt: parseServerTime(p.CreatedAt),
	}
}

// parseServerTime tolerates both RFC 3339 and the naive ISO form the backend
// emits for datetimes without a zone. Unparseable values render as the zero
// time rather than failing the whole payload.
func parseServerTime(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
