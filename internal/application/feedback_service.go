package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/khyahahati/ai-doc-builder/internal/domain"
	"github.com/khyahahati/ai-doc-builder/internal/ports"
)

// FeedbackService drives the like/dislike action. It follows the same
// persistence-ensuring path as generation but carries the sentiment, an
// optional user message, and the section's current content so the backend
// revises in place. Only a like persists the refined content server-side.
type FeedbackService struct {
	transport  ports.Transport
	reconciler *Reconciler
	clock      ports.Clock
}

func NewFeedbackService(transport ports.Transport, reconciler *Reconciler, clock ports.Clock) *FeedbackService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &FeedbackService{transport: transport, reconciler: reconciler, clock: clock}
}

// Submit applies cmd to the identified section. A section missing from the
// store is a no-op. Without a credential and project an unpersisted section
// only gets its lastFeedback annotated locally; the feedback is recorded,
// never silently dropped.
func (s *FeedbackService) Submit(ctx context.Context, projectID domain.ProjectID, store *SectionStore, sectionID domain.SectionID, cmd FeedbackCommand, credential string) error {
	if cmd.Sentiment != domain.SentimentLike && cmd.Sentiment != domain.SentimentDislike {
		return fmt.Errorf("unsupported feedback sentiment %q", cmd.Sentiment)
	}

	section, ok := store.ByID(sectionID)
	if !ok {
		return nil
	}

	if !section.Persisted && (credential == "" || projectID == "") {
		return s.annotateLocal(store, sectionID, cmd)
	}
	if credential == "" {
		return domain.ErrAuthRequired
	}

	if err := store.BeginGenerate(sectionID); err != nil {
		return err
	}
	clearID := sectionID
	defer func() { store.EndGenerate(clearID) }()

	wasPersisted := section.Persisted
	persist := cmd.Sentiment == domain.SentimentLike

	target := section
	if !section.Persisted {
		reconciled, err := s.reconciler.Reconcile(ctx, projectID, store, credential, section.Title)
		if err != nil {
			return err
		}
		target = reconciled
		clearID = target.ID
	}

	userPrompt := strings.TrimSpace(cmd.Message)
	if userPrompt == "" {
		userPrompt = domain.ComposePrompt(target)
	}

	result, err := postRefine(ctx, s.transport, target.ID, refineRequest{
		Feedback:       string(cmd.Sentiment),
		UserPrompt:     userPrompt,
		Persist:        boolPtr(persist),
		CurrentContent: target.Content,
	}, credential)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	return store.update(target.ID, func(current domain.Section) domain.Section {
		current.Content = result.Content
		if result.HasVersion && result.Version > current.Version {
			current.Version = result.Version
		}
		// A dislike never persists on its own: the section keeps whatever
		// persisted state it had before this action.
		current.Persisted = wasPersisted || persist
		current.LastFeedback = &domain.Feedback{
			Sentiment: cmd.Sentiment,
			Message:   cmd.Message,
			At:        now,
		}
		return current
	})
}

func (s *FeedbackService) annotateLocal(store *SectionStore, sectionID domain.SectionID, cmd FeedbackCommand) error {
	now := s.clock.Now()
	return store.update(sectionID, func(current domain.Section) domain.Section {
		current.LastFeedback = &domain.Feedback{
			Sentiment: cmd.Sentiment,
			Message:   cmd.Message,
			At:        now,
		}
		return current
	})
}
