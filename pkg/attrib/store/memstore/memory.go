package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/attrib/pkg/attrib/internalerr"
	"github.com/cognicore/attrib/pkg/attrib/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu       sync.RWMutex
	runs     map[string]store.Run
	outcomes map[string]map[int]store.Outcome
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		runs:     make(map[string]store.Run),
		outcomes: make(map[string]map[int]store.Outcome),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun inserts or replaces a run, keyed by ID.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("%w: run id is required", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = copyRun(r)
	return nil
}

// GetRun implements store.Store.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, false, nil
	}
	return copyRun(r), true, nil
}

// RecentRuns implements store.Store.
func (s *Store) RecentRuns(ctx context.Context, k int) ([]store.Run, error) {
	if k <= 0 {
		k = 10
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, copyRun(r))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

// SaveOutcome stores an outcome of a known run.
func (s *Store) SaveOutcome(ctx context.Context, o store.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[o.RunID]; !ok {
		return fmt.Errorf("run %q: %w", o.RunID, internalerr.ErrNotFound)
	}
	if s.outcomes[o.RunID] == nil {
		s.outcomes[o.RunID] = make(map[int]store.Outcome)
	}
	s.outcomes[o.RunID][o.Seq] = o
	return nil
}

// Outcomes implements store.Store.
func (s *Store) Outcomes(ctx context.Context, runID string) ([]store.Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byseq := s.outcomes[runID]
	out := make([]store.Outcome, 0, len(byseq))
	for _, o := range byseq {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func copyRun(r store.Run) store.Run {
	r.Works = append([]string(nil), r.Works...)
	r.Translators = append([]string(nil), r.Translators...)
	return r
}
