package history

import (
	"sync"

	"fee_calculator/internal/domain"
)

const (
	// DefaultMaxEntries is the high-water mark before a trim runs.
	DefaultMaxEntries = 10000
	// DefaultTrimBatch is how many of the oldest entries a trim drops.
	DefaultTrimBatch = 1000
	// DefaultMaxPageSize caps a single Query page.
	DefaultMaxPageSize = 1000
)

// Store is an append-only, bounded log of past calculations. When the entry
// count exceeds the high-water mark the oldest trim batch is dropped at once,
// so the size check stays cheap.
type Store struct {
	mu          sync.RWMutex
	entries     []domain.HistoryEntry
	nextID      int64
	maxEntries  int
	trimBatch   int
	maxPageSize int
}

func NewStore() *Store {
	return NewStoreWithLimits(DefaultMaxEntries, DefaultTrimBatch, DefaultMaxPageSize)
}

func NewStoreWithLimits(maxEntries, trimBatch, maxPageSize int) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if trimBatch <= 0 || trimBatch > maxEntries {
		trimBatch = DefaultTrimBatch
	}
	if maxPageSize <= 0 {
		maxPageSize = DefaultMaxPageSize
	}

	return &Store{
		nextID:      1,
		maxEntries:  maxEntries,
		trimBatch:   trimBatch,
		maxPageSize: maxPageSize,
	}
}

// Append stores the entry, assigns its sequence id and returns it.
func (s *Store) Append(entry domain.HistoryEntry) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextID
	s.nextID++
	s.entries = append(s.entries, entry)

	if len(s.entries) > s.maxEntries {
		remaining := len(s.entries) - s.trimBatch
		trimmed := make([]domain.HistoryEntry, remaining)
		copy(trimmed, s.entries[s.trimBatch:])
		s.entries = trimmed
	}

	return entry.ID
}

// Query returns entries most-recent-first. Skip below zero is treated as
// zero and take is clamped to the store's page size.
func (s *Store) Query(skip, take int) []domain.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if skip < 0 {
		skip = 0
	}
	if take <= 0 {
		return []domain.HistoryEntry{}
	}
	if take > s.maxPageSize {
		take = s.maxPageSize
	}

	// Entries are appended in order, so most-recent-first is a reverse walk.
	start := len(s.entries) - 1 - skip
	if start < 0 {
		return []domain.HistoryEntry{}
	}

	end := start - take + 1
	if end < 0 {
		end = 0
	}

	result := make([]domain.HistoryEntry, 0, start-end+1)
	for i := start; i >= end; i-- {
		result = append(result, s.entries[i])
	}
	return result
}

// Len reports the current entry count.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
