package application

import (
	"context"
	"time"

	"github.com/khyahahati/ai-doc-builder/internal/domain"
	"github.com/khyahahati/ai-doc-builder/internal/ports"
)

const localDraftDelay = 800 * time.Millisecond

// GenerateService drives the generate action for one section: it ensures the
// section has a server identity, issues the refine request, and merges the
// result back into the store. Without a credential and project it degrades to
// a local placeholder draft and never touches the network.
type GenerateService struct {
	transport  ports.Transport
	reconciler *Reconciler
	clock      ports.Clock
	// sleep stands in for the simulated authoring delay on the offline
	// path; tests swap it out.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewGenerateService(transport ports.Transport, reconciler *Reconciler, clock ports.Clock) *GenerateService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &GenerateService{
		transport:  transport,
		reconciler: reconciler,
		clock:      clock,
		sleep:      sleepContext,
	}
}

// Generate runs the full generate flow for sectionID. A section that is not
// in the store is a no-op. The in-flight flag is set before any suspend
// point and cleared on every exit path, success and failure alike.
func (s *GenerateService) Generate(ctx context.Context, projectID domain.ProjectID, store *SectionStore, sectionID domain.SectionID, credential string) error {
	section, ok := store.ByID(sectionID)
	if !ok {
		return nil
	}

	if err := store.BeginGenerate(sectionID); err != nil {
		return err
	}
	// Reconciliation may swap the draft ID for a server one mid-flight, so
	// the clear target follows the section through that rename.
	clearID := sectionID
	defer func() { store.EndGenerate(clearID) }()

	if !section.Persisted {
		if credential == "" || projectID == "" {
			return s.generateLocal(ctx, store, sectionID, section)
		}

		target, err := s.reconciler.Reconcile(ctx, projectID, store, credential, section.Title)
		if err != nil {
			return err
		}
		clearID = target.ID

		result, err := postRefine(ctx, s.transport, target.ID, refineRequest{
			Feedback:   string(domain.SentimentGenerate),
			UserPrompt: domain.ComposePrompt(target),
			Persist:    boolPtr(false),
		}, credential)
		if err != nil {
			return err
		}

		return s.applyResult(store, target.ID, result, "Draft generated")
	}

	if credential == "" {
		return domain.ErrAuthRequired
	}

	result, err := postRefine(ctx, s.transport, section.ID, refineRequest{
		Feedback:   string(domain.SentimentGenerate),
		UserPrompt: domain.ComposePrompt(section),
	}, credential)
	if err != nil {
		return err
	}

	return s.applyResult(store, section.ID, result, "Draft generated")
}

func (s *GenerateService) generateLocal(ctx context.Context, store *SectionStore, sectionID domain.SectionID, section domain.Section) error {
	if err := s.sleep(ctx, localDraftDelay); err != nil {
		return err
	}

	draft := domain.ComposeLocalDraft(section)
	now := s.clock.Now()
	return store.update(sectionID, func(current domain.Section) domain.Section {
		current.Content = draft
		current.LastFeedback = &domain.Feedback{
			Sentiment: domain.SentimentGenerate,
			Message:   "Draft generated (local)",
			At:        now,
		}
		return current
	})
}

func (s *GenerateService) applyResult(store *SectionStore, sectionID domain.SectionID, result refineResult, message string) error {
	now := s.clock.Now()
	return store.update(sectionID, func(current domain.Section) domain.Section {
		current.Content = result.Content
		current.Persisted = true
		if result.HasVersion && result.Version > current.Version {
			current.Version = result.Version
		}
		current.LastFeedback = &domain.Feedback{
			Sentiment: domain.SentimentGenerate,
			Message:   message,
			At:        now,
		}
		return current
	})
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
