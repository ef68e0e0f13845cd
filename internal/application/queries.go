package application

import "github.com/khyahahati/ai-doc-builder/internal/domain"

// WorkspaceStatus is the exported state shape handed to rendering
// collaborators: project metadata plus the ordered section sequence.
type WorkspaceStatus struct {
	Project  domain.Project
	Sections []domain.Section
}

// SectionIndexEntry is one row of the server-side section index returned
// with project metadata. Consumed for display only.
type SectionIndexEntry struct {
	ID      domain.SectionID
	Title   string
	Version int
	Status  string
}

type ProjectDetail struct {
	Project  domain.Project
	Sections []SectionIndexEntry
}
