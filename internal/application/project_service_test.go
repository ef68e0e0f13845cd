package application

import (
	"context"
	"testing"

	"github.com/khyahahati/ai-doc-builder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectServiceCreate(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport()
	transport.respond("/projects/", `{"id":42,"title":"Q4 Deck","doc_type":"pptx","created_at":"2026-09-01T10:30:00"}`)

	service := NewProjectService(transport)
	project, err := service.Create(context.Background(), CreateProjectCommand{Title: "Q4 Deck", DocType: domain.DocTypePptx}, "token")
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectID("42"), project.ID)
	assert.Equal(t, "Q4 Deck", project.Title)
	assert.Equal(t, domain.DocTypePptx, project.DocType)
	assert.Equal(t, 2026, project.CreatedAt.Year())

	body := transport.callsTo("/projects/")[0].Body.(createProjectRequest)
	assert.Equal(t, createProjectRequest{Title: "Q4 Deck", DocType: "pptx"}, body)
}

func TestProjectServiceCreateRejectsUnknownDocType(t *testing.T) {
	t.Parallel()

	service := NewProjectService(newFakeTransport())
	_, err := service.Create(context.Background(), CreateProjectCommand{Title: "X", DocType: "pdf"}, "token")
	require.Error(t, err)
}

func TestProjectServiceCreateRequiresCredential(t *testing.T) {
	t.Parallel()

	service := NewProjectService(newFakeTransport())
	_, err := service.Create(context.Background(), CreateProjectCommand{Title: "X", DocType: domain.DocTypeDocx}, "")
	require.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestProjectServiceList(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport()
	transport.respond("/projects/my", `[{"id":1,"title":"A","doc_type":"docx"},{"id":2,"title":"B","doc_type":"pptx"}]`)

	service := NewProjectService(transport)
	projects, err := service.List(context.Background(), "token")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, domain.ProjectID("1"), projects[0].ID)
	assert.Equal(t, "B", projects[1].Title)
}

func TestProjectServiceGetWithSectionIndex(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport()
	transport.respond("/projects/42", `{"id":42,"title":"Q4 Deck","doc_type":"pptx","sections":[{"id":501,"title":"Risks","version":2,"status":"refined"}]}`)

	service := NewProjectService(transport)
	detail, err := service.Get(context.Background(), "42", "token")
	require.NoError(t, err)
	assert.Equal(t, "Q4 Deck", detail.Project.Title)
	require.Len(t, detail.Sections, 1)
	assert.Equal(t, domain.SectionID("501"), detail.Sections[0].ID)
	assert.Equal(t, "refined", detail.Sections[0].Status)
}

func TestProjectServiceExportRemote(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport()
	transport.downloads["/projects/42/export?type=docx"] = []byte{0x50, 0x4b}

	service := NewProjectService(transport)
	data, err := service.ExportRemote(context.Background(), "42", domain.DocTypeDocx, "token")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x50, 0x4b}, data)
}

func TestDecodeRefineResponseShapes(t *testing.T) {
	t.Parallel()

	object, err := decodeRefineResponse([]byte(`{"content":"body","version":3}`))
	require.NoError(t, err)
	assert.Equal(t, "body", object.Content)
	assert.True(t, object.HasVersion)
	assert.Equal(t, 3, object.Version)

	noVersion, err := decodeRefineResponse([]byte(`{"content":"body"}`))
	require.NoError(t, err)
	assert.False(t, noVersion.HasVersion)

	plain, err := decodeRefineResponse([]byte(`"just text"`))
	require.NoError(t, err)
	assert.Equal(t, "just text", plain.Content)
	assert.False(t, plain.HasVersion)

	_, err = decodeRefineResponse([]byte(`[1,2]`))
	require.Error(t, err)
}
