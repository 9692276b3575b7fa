package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/popcorn/internal/kv"
	"github.com/five82/popcorn/internal/persist"
	"github.com/five82/popcorn/internal/watched"
)

// WatchedKey is the storage key holding the watched list.
const WatchedKey = "watched"

// Snapshot is a copy of the watched list plus its summary.
type Snapshot struct {
	Entries      []watched.Entry
	Summary      watched.Summary
	LastSaved    time.Time
	LastError    error
	SaveFailures int // consecutive failed write-backs
}

// Degraded reports whether recent changes failed to persist.
func (s Snapshot) Degraded() bool {
	return s.SaveFailures > 0
}

// Store owns the watched list. Every mutation is written back through the
// persisted value; a zero Store keeps the list in memory only.
type Store struct {
	mu       sync.RWMutex
	value    *persist.Value[[]watched.Entry]
	entries  []watched.Entry
	snapshot Snapshot
}

// Open loads the watched list from store.
func Open(store kv.Store, opts ...persist.Option) *Store {
	value := persist.Load(store, WatchedKey, []watched.Entry{}, opts...)
	return &Store{
		value:   value,
		entries: cloneEntries(value.Get()),
	}
}

// Add appends entry. Duplicates are not rejected; callers gate on Contains.
func (s *Store) Add(entry watched.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	return s.saveLocked()
}

// Remove deletes every entry with id and reports whether any existed.
func (s *Store) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]watched.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.ImdbID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(s.entries) {
		return false, nil
	}
	s.entries = kept
	return true, s.saveLocked()
}

// Contains reports whether id is in the list.
func (s *Store) Contains(id string) bool {
	_, ok := s.Find(id)
	return ok
}

// Find returns the entry for id.
func (s *Store) Find(id string) (watched.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := watched.IndexOf(s.entries, id); i >= 0 {
		return s.entries[i], true
	}
	return watched.Entry{}, false
}

// Snapshot returns a copy of the current list.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Entries = cloneEntries(s.entries)
	snap.Summary = watched.Summarize(s.entries)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Flush retries the write-back after a failed save. It does nothing while
// the stored list is current.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot.SaveFailures == 0 {
		return nil
	}
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	if s.value == nil {
		return nil
	}
	err := s.value.Set(cloneEntries(s.entries))
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.SaveFailures++
		return fmt.Errorf("save watched list: %w", err)
	}
	s.snapshot.LastError = nil
	s.snapshot.LastSaved = time.Now()
	s.snapshot.SaveFailures = 0
	return nil
}

func cloneEntries(entries []watched.Entry) []watched.Entry {
	dup := make([]watched.Entry, len(entries))
	copy(dup, entries)
	return dup
}
