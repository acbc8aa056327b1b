package store

import (
	"fmt"
	"sort"
	"sync"
)

// MemStore is an in-memory implementation of Storer for testing.
type MemStore struct {
	mu     sync.RWMutex
	runs   map[string]*Run
	scenes map[string][]*SceneRecord
}

// NewMemStore creates a new in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		runs:   make(map[string]*Run),
		scenes: make(map[string][]*SceneRecord),
	}
}

// Close is a no-op for MemStore.
func (s *MemStore) Close() error {
	return nil
}

// =============================================================================
// Run CRUD
// =============================================================================

func (s *MemStore) CreateRun(run *Run, scenes []*SceneRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepareRun(run, scenes)
	if _, ok := s.runs[run.ID]; ok {
		return fmt.Errorf("run %s already exists", run.ID)
	}

	s.runs[run.ID] = copyRun(run)
	stored := make([]*SceneRecord, len(scenes))
	for i, rec := range scenes {
		stored[i] = copyScene(rec)
	}
	sort.Slice(stored, func(i, j int) bool { return stored[i].Seq < stored[j].Seq })
	s.scenes[run.ID] = stored
	return nil
}

func (s *MemStore) GetRun(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if run, ok := s.runs[id]; ok {
		return copyRun(run), nil
	}
	return nil, nil
}

func (s *MemStore) ListRuns(corpus string) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var runs []*Run
	for _, run := range s.runs {
		if corpus == "" || run.Corpus == corpus {
			runs = append(runs, copyRun(run))
		}
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAt != runs[j].CreatedAt {
			return runs[i].CreatedAt < runs[j].CreatedAt
		}
		return runs[i].ID < runs[j].ID
	})
	return runs, nil
}

func (s *MemStore) DeleteRun(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.runs, id)
	delete(s.scenes, id)
	return nil
}

func (s *MemStore) CountRuns() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs), nil
}

// =============================================================================
// Scenes
// =============================================================================

func (s *MemStore) ListScenes(runID string) ([]*SceneRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*SceneRecord
	for _, rec := range s.scenes[runID] {
		out = append(out, copyScene(rec))
	}
	return out, nil
}

func (s *MemStore) AssignActs(runID string, budget int, acts []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[runID]
	if !ok {
		return fmt.Errorf("run %s not found", runID)
	}
	scenes := s.scenes[runID]
	if len(scenes) != len(acts) {
		return fmt.Errorf("run %s has %d scenes, got %d act assignments", runID, len(scenes), len(acts))
	}
	for i, a := range acts {
		scenes[i].Act = a
	}
	run.ActBudget = budget
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

func copyRun(run *Run) *Run {
	c := *run
	c.Params = make(map[string]int, len(run.Params))
	for k, v := range run.Params {
		c.Params[k] = v
	}
	return &c
}

// copyScene copies the slices; events are values and never mutated.
func copyScene(rec *SceneRecord) *SceneRecord {
	c := *rec
	if len(rec.Locations) > 0 {
		c.Locations = append([]string(nil), rec.Locations...)
	} else {
		c.Locations = nil
	}
	c.Characters = append([]string{}, rec.Characters...)
	c.Content = append(c.Content[:0:0], rec.Content...)
	return &c
}

// Compile-time interface check
var _ Storer = (*MemStore)(nil)
