// Package session holds the per-session mutable stores: the append-only
// Logic Log. Entries exist only in memory and are cleared by a full
// application restart.
package session

import (
	"time"

	"github.com/google/uuid"

	"qsdesk/internal/domain"
)

// LogStore is the append-only audit trail. Insertion order is chronological
// order; entries are never edited, reordered, or removed.
type LogStore struct {
	entries []domain.LogicLogEntry
	now     func() time.Time
	newID   func() string
}

// NewLogStore returns an empty store using the wall clock and random UUIDs.
func NewLogStore() *LogStore {
	return &LogStore{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// NewLogStoreWithClock returns a store with injected time and id sources for
// deterministic tests.
func NewLogStoreWithClock(now func() time.Time, newID func() string) *LogStore {
	return &LogStore{now: now, newID: newID}
}

// Append records one investigative action and returns the created entry.
func (s *LogStore) Append(t domain.LogType, description, details, cellID, docID string) domain.LogicLogEntry {
	entry := domain.LogicLogEntry{
		ID:            s.newID(),
		Timestamp:     s.now(),
		Type:          t,
		Description:   description,
		Details:       details,
		RelatedCellID: cellID,
		RelatedDocID:  docID,
	}
	s.entries = append(s.entries, entry)
	return entry
}

// Entries returns a snapshot copy of the trail in insertion order.
func (s *LogStore) Entries() []domain.LogicLogEntry {
	return append([]domain.LogicLogEntry(nil), s.entries...)
}

// Len returns the number of recorded actions.
func (s *LogStore) Len() int {
	return len(s.entries)
}
