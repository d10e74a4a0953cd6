package forecastlog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/oumarkante/harvestplan/internal/domain/models"
)

func entry(category, message string) models.ForecastLogEntry {
	return models.ForecastLogEntry{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Category:  category,
		Message:   message,
	}
}

func TestRingAssignsSequentialIDs(t *testing.T) {
	ring := NewRing(10, nil, nil)
	ring.Append(entry("capacity", "first"))
	ring.Append(entry("throughput", "second"))

	entries := ring.Recent(0)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].EntryID != 2 || entries[1].EntryID != 1 {
		t.Errorf("ids = [%d,%d], want [2,1]", entries[0].EntryID, entries[1].EntryID)
	}
	if entries[0].Message != "second" {
		t.Errorf("newest entry = %q, want %q", entries[0].Message, "second")
	}
}

func TestRingEvictsOldestAtCapacity(t *testing.T) {
	ring := NewRing(3, nil, nil)
	for _, msg := range []string{"a", "b", "c", "d", "e"} {
		ring.Append(entry("report", msg))
	}

	entries := ring.Recent(0)
	if len(entries) != 3 {
		t.Fatalf("expected 3 retained entries, got %d", len(entries))
	}
	if entries[0].Message != "e" || entries[2].Message != "c" {
		t.Errorf("retained window = [%s..%s], want [e..c]", entries[0].Message, entries[2].Message)
	}
	// IDs keep counting across evictions.
	if entries[0].EntryID != 5 {
		t.Errorf("newest id = %d, want 5", entries[0].EntryID)
	}
}

func TestRingRecentLimit(t *testing.T) {
	ring := NewRing(10, nil, nil)
	for _, msg := range []string{"a", "b", "c"} {
		ring.Append(entry("report", msg))
	}

	entries := ring.Recent(2)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "c" || entries[1].Message != "b" {
		t.Errorf("got [%s,%s], want [c,b]", entries[0].Message, entries[1].Message)
	}
}

func TestRingFilter(t *testing.T) {
	ring := NewRing(10, nil, nil)
	ring.Append(entry("capacity", "snap"))
	ring.Append(entry("warning", "w1"))
	ring.Append(entry("report", "done"))
	ring.Append(entry("warning", "w2"))

	warnings := ring.Filter("warning")
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(warnings))
	}
	if warnings[0].Message != "w2" || warnings[1].Message != "w1" {
		t.Errorf("got [%s,%s], want [w2,w1]", warnings[0].Message, warnings[1].Message)
	}

	if got := ring.Filter("no-such-category"); len(got) != 0 {
		t.Errorf("expected no entries, got %+v", got)
	}
}

func TestRingConcurrentAppend(t *testing.T) {
	ring := NewRing(1000, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ring.Append(entry("report", "concurrent"))
			}
		}()
	}
	wg.Wait()

	entries := ring.Recent(0)
	if len(entries) != 800 {
		t.Fatalf("expected 800 entries, got %d", len(entries))
	}
	seen := map[int64]bool{}
	for _, e := range entries {
		if seen[e.EntryID] {
			t.Fatalf("duplicate entry id %d", e.EntryID)
		}
		seen[e.EntryID] = true
	}
}

type failingMirror struct {
	mu    sync.Mutex
	calls int
}

func (m *failingMirror) SaveLogEntry(ctx context.Context, entry models.ForecastLogEntry) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return errors.New("storage down")
}

func TestRingMirrorFailureIsSwallowed(t *testing.T) {
	mirror := &failingMirror{}
	ring := NewRing(10, mirror, nil)

	ring.Append(entry("report", "persisted?"))

	// The mirror write is fire-and-forget; give it a moment.
	deadline := time.Now().Add(time.Second)
	for {
		mirror.mu.Lock()
		calls := mirror.calls
		mirror.mu.Unlock()
		if calls > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("mirror was never invoked")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if got := ring.Recent(0); len(got) != 1 {
		t.Fatalf("entry lost after mirror failure, got %d entries", len(got))
	}
}
