package domain

import "time"

type DocType string

const (
	DocTypeDocx DocType = "docx"
	DocTypePptx DocType = "pptx"
)

func (d DocType) Valid() bool {
	switch d {
	case DocTypeDocx, DocTypePptx:
		return true
	default:
		return false
	}
}

// Project is server-owned metadata the client consumes but never authors
// beyond creation.
type Project struct {
	ID        ProjectID
	Title     string
	DocType   DocType
	CreatedAt time.Time
}
