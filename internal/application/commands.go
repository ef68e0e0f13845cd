package application

import "github.com/khyahahati/ai-doc-builder/internal/domain"

type FeedbackCommand struct {
	Sentiment domain.Sentiment
	// Message carries the user's rationale, typically on a dislike. When
	// set it replaces the composed prompt in the refine request.
	Message string
}

type CreateProjectCommand struct {
	Title   string
	DocType domain.DocType
}
