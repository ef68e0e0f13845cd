package application

import (
	"fmt"
	"strings"
	"sync"

	"github.com/khyahahati/ai-doc-builder/internal/domain"
)

// SectionStore is the single source of truth for the ordered section
// sequence. Every mutation swaps the whole sequence so readers always see a
// consistent outline, and the replace-all path runs its merge under the lock
// so a concurrent patch of an unrelated section cannot be lost to a snapshot
// taken before a network round trip.
//
// Titles are unique within a store. Reconciliation correlates local drafts
// with server identities by title, so a collision would make that join
// ambiguous; it is rejected at this boundary instead of being resolved
// silently.
type SectionStore struct {
	mu       sync.Mutex
	sections []domain.Section
}

func NewSectionStore(sections ...domain.Section) (*SectionStore, error) {
	if err := checkTitles(sections); err != nil {
		return nil, err
	}

	store := &SectionStore{}
	store.sections = append(store.sections, sections...)
	return store, nil
}

func (s *SectionStore) Append(section domain.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.sections {
		if titlesEqual(existing.Title, section.Title) {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateTitle, section.Title)
		}
	}

	next := make([]domain.Section, 0, len(s.sections)+1)
	next = append(next, s.sections...)
	next = append(next, section)
	s.sections = next
	return nil
}

// ReplaceAll rebuilds the sequence from the current snapshot via merge. The
// merge function runs under the store lock, so it always folds in the state
// at merge time rather than whatever the caller saw before a network call.
// An error from merge leaves the store untouched.
func (s *SectionStore) ReplaceAll(merge func(current []domain.Section) ([]domain.Section, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged, err := merge(snapshotOf(s.sections))
	if err != nil {
		return err
	}
	if err := checkTitles(merged); err != nil {
		return err
	}

	s.sections = snapshotOf(merged)
	return nil
}

func (s *SectionStore) Patch(id domain.SectionID, patch domain.SectionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := indexOf(s.sections, id)
	if index < 0 {
		return fmt.Errorf("%w: %s", domain.ErrSectionNotFound, id)
	}

	patched := patch.Apply(s.sections[index])
	for i, existing := range s.sections {
		if i != index && titlesEqual(existing.Title, patched.Title) {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateTitle, patched.Title)
		}
	}

	next := snapshotOf(s.sections)
	next[index] = patched
	s.sections = next
	return nil
}

func (s *SectionStore) ByID(id domain.SectionID) (domain.Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := indexOf(s.sections, id)
	if index < 0 {
		return domain.Section{}, false
	}
	return s.sections[index], true
}

func (s *SectionStore) ByTitle(title string) (domain.Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, section := range s.sections {
		if titlesEqual(section.Title, title) {
			return section, true
		}
	}
	return domain.Section{}, false
}

func (s *SectionStore) Snapshot() []domain.Section {
	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshotOf(s.sections)
}

func (s *SectionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sections)
}

// BeginGenerate transitions the section from Idle to Generating. It fails
// when a refine request for the section is already outstanding, which is
// what keeps at most one request in flight per section.
func (s *SectionStore) BeginGenerate(id domain.SectionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := indexOf(s.sections, id)
	if index < 0 {
		return fmt.Errorf("%w: %s", domain.ErrSectionNotFound, id)
	}
	if s.sections[index].Generating {
		return fmt.Errorf("%w: %s", domain.ErrGenerationInFlight, id)
	}

	next := snapshotOf(s.sections)
	next[index].Generating = true
	s.sections = next
	return nil
}

// EndGenerate transitions the section back to Idle. Safe to call on every
// exit path; a section that vanished (reconciliation swapped its draft ID
// for a server one) is ignored.
func (s *SectionStore) EndGenerate(id domain.SectionID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := indexOf(s.sections, id)
	if index < 0 {
		return
	}

	next := snapshotOf(s.sections)
	next[index].Generating = false
	s.sections = next
}

// update applies fn to the identified section within a full-sequence swap.
// Used by the orchestrators to merge refine results back in.
func (s *SectionStore) update(id domain.SectionID, fn func(domain.Section) domain.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := indexOf(s.sections, id)
	if index < 0 {
		return fmt.Errorf("%w: %s", domain.ErrSectionNotFound, id)
	}

	next := snapshotOf(s.sections)
	next[index] = fn(next[index])
	s.sections = next
	return nil
}

func snapshotOf(sections []domain.Section) []domain.Section {
	copied := make([]domain.Section, len(sections))
	copy(copied, sections)
	return copied
}

func indexOf(sections []domain.Section, id domain.SectionID) int {
	for i, section := range sections {
		if section.ID == id {
			return i
		}
	}
	return -1
}

func titlesEqual(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}

func checkTitles(sections []domain.Section) error {
	seen := make(map[string]struct{}, len(sections))
	for _, section := range sections {
		title := strings.TrimSpace(section.Title)
		if _, ok := seen[title]; ok {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateTitle, section.Title)
		}
		seen[title] = struct{}{}
	}
	return nil
}
