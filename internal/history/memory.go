package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	anerror "github.com/msto63/analiza/pkg/core/error"
)

// MemoryStore implements Store in memory, for tests and runs with the
// database disabled
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*Entry)}
}

// Record stores a copy of entry
func (s *MemoryStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.StartedAt.IsZero() {
		entry.StartedAt = time.Now()
	}
	entry.StartedAt = entry.StartedAt.UTC()

	if _, exists := s.entries[entry.ID]; exists {
		return anerror.New("run already recorded").
			WithCode(anerror.CodeDatabaseError).
			WithOperation("history.Record").
			WithDetail("id", entry.ID)
	}

	stored := *entry
	s.entries[entry.ID] = &stored
	return nil
}

// Get retrieves a run by ID
func (s *MemoryStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, anerror.New("run not found").
			WithCode(anerror.CodeNotFound).
			WithOperation("history.Get").
			WithDetail("id", id)
	}
	found := *entry
	return &found, nil
}

// List retrieves runs matching filter, newest first
func (s *MemoryStore) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []*Entry
	for _, entry := range s.entries {
		if filter.Source != "" && entry.Source != filter.Source {
			continue
		}
		if filter.OnlyFailed && entry.Clean() {
			continue
		}
		if !filter.Since.IsZero() && entry.StartedAt.Before(filter.Since) {
			continue
		}
		found := *entry
		entries = append(entries, &found)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].StartedAt.After(entries[j].StartedAt)
	})

	if filter.Limit > 0 {
		if filter.Offset >= len(entries) {
			return nil, nil
		}
		entries = entries[filter.Offset:]
		if len(entries) > filter.Limit {
			entries = entries[:filter.Limit]
		}
	}
	return entries, nil
}

// Stats returns run statistics
func (s *MemoryStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{BySource: make(map[string]int64)}
	for _, entry := range s.entries {
		stats.Total++
		if entry.Clean() {
			stats.Clean++
		}
		stats.BySource[entry.Source]++
		if entry.StartedAt.After(stats.LastRun) {
			stats.LastRun = entry.StartedAt
		}
	}
	stats.Failed = stats.Total - stats.Clean
	return stats, nil
}

// Prune removes runs started before now minus olderThan
func (s *MemoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	var deleted int64
	for id, entry := range s.entries {
		if entry.StartedAt.Before(cutoff) {
			delete(s.entries, id)
			deleted++
		}
	}
	return deleted, nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
