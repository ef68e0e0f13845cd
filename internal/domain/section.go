package domain

import "time"

type SectionID string

type ProjectID string

type Sentiment string

const (
	SentimentGenerate Sentiment = "generate"
	SentimentLike     Sentiment = "like"
	SentimentDislike  Sentiment = "dislike"
)

func (s Sentiment) Valid() bool {
	switch s {
	case SentimentGenerate, SentimentLike, SentimentDislike:
		return true
	default:
		return false
	}
}

// Section is one titled block of a document. Before the outline is persisted
// the ID is a client-only draft token; after reconciliation it is the
// server-assigned numeric identity rendered as a string and never changes
// again for the rest of the session.
type Section struct {
	ID        SectionID
	Title     string
	Summary   string
	Guidance  string
	Content   string
	Persisted bool
	Version   int
	// Generating guards the section against a second refine request while
	// one is already outstanding. Cleared on success and failure alike.
	Generating   bool
	LastFeedback *Feedback
}

// Feedback records the most recent generate/like/dislike action applied to a
// section.
type Feedback struct {
	Sentiment Sentiment
	Message   string
	At        time.Time
}

// SectionPatch carries field-level edits from the editing surface. Nil
// pointers leave the corresponding field untouched.
type SectionPatch struct {
	Title    *string
	Summary  *string
	Guidance *string
	Content  *string
}

func (p SectionPatch) Apply(section Section) Section {
	if p.Title != nil {
		section.Title = *p.Title
	}
	if p.Summary != nil {
		section.Summary = *p.Summary
	}
	if p.Guidance != nil {
		section.Guidance = *p.Guidance
	}
	if p.Content != nil {
		section.Content = *p.Content
	}
	return section
}
