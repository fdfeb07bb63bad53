package session

import (
	"fmt"
	"testing"
	"time"

	"qsdesk/internal/domain"
)

func newTestStore() *LogStore {
	base := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	tick := 0
	id := 0
	return NewLogStoreWithClock(
		func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		},
		func() string {
			id++
			return fmt.Sprintf("entry-%d", id)
		},
	)
}

func TestAppendPreservesOrder(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	store.Append(domain.LogNavigate, "first", "", "", "")
	store.Append(domain.LogSelectCell, "second", "details", "row-1-total", "CON-001")
	store.Append(domain.LogPinLogic, "third", "", "", "")

	entries := store.Entries()
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	for i, want := range []string{"first", "second", "third"} {
		if entries[i].Description != want {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].Description, want)
		}
	}
	if !entries[0].Timestamp.Before(entries[1].Timestamp) {
		t.Error("timestamps not monotonic")
	}
	if entries[1].RelatedCellID != "row-1-total" || entries[1].RelatedDocID != "CON-001" {
		t.Error("related references not recorded")
	}
}

func TestAppendReturnsCreatedEntry(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	entry := store.Append(domain.LogSearch, "Forensic Search", "why", "row-3", "")
	if entry.ID != "entry-1" {
		t.Errorf("ID = %q", entry.ID)
	}
	if entry.Type != domain.LogSearch {
		t.Errorf("Type = %v", entry.Type)
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d", store.Len())
	}
}

// The snapshot must be independent of the store: an append-only trail may
// never be mutated through a returned slice.
func TestEntriesReturnsSnapshot(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	store.Append(domain.LogNavigate, "original", "", "", "")

	snapshot := store.Entries()
	snapshot[0].Description = "mutated"

	if store.Entries()[0].Description != "original" {
		t.Error("snapshot mutation leaked into store")
	}
}
