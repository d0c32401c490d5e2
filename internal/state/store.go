package state

import (
	"sync"
	"time"

	"github.com/five82/apodview/internal/gallery"
)

// Snapshot represents the gallery area as the UI should draw it.
type Snapshot struct {
	Fact        string
	Placeholder gallery.Placeholder
	Entries     []gallery.Entry
	LastUpdated time.Time
	// Generation increases on every content change so views can tell a
	// replaced gallery from a redraw of the same one.
	Generation uint64
}

// Store is the single gallery container. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

var _ gallery.Container = (*Store)(nil)

// SetFact replaces the trivia line shown above the gallery.
func (s *Store) SetFact(fact string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Fact = fact
}

// Clear removes every entry and any placeholder.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Entries = nil
	s.snapshot.Placeholder = gallery.Placeholder{}
	s.touch()
}

// Append adds an entry after the existing ones.
func (s *Store) Append(entry gallery.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Entries = append(s.snapshot.Entries, entry)
	s.touch()
}

// ShowPlaceholder replaces the whole gallery content with p.
func (s *Store) ShowPlaceholder(p gallery.Placeholder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Entries = nil
	s.snapshot.Placeholder = p
	s.touch()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Entries = cloneEntries(s.snapshot.Entries)
	return snap
}

func (s *Store) touch() {
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.Generation++
}

func cloneEntries(entries []gallery.Entry) []gallery.Entry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]gallery.Entry, len(entries))
	copy(dup, entries)
	return dup
}
