// Package forecastlog provides the append-only audit sink the forecasting
// engine writes to: a bounded in-memory ring with an optional best-effort
// persistence mirror.
package forecastlog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/oumarkante/harvestplan/internal/domain/models"
)

// DefaultCapacity bounds the ring when config supplies nothing sensible.
const DefaultCapacity = 256

const mirrorTimeout = 5 * time.Second

// Mirror persists entries outside the process. Failures are logged and
// swallowed; a failed mirror write must never fail a forecast.
type Mirror interface {
	SaveLogEntry(ctx context.Context, entry models.ForecastLogEntry) error
}

// Ring is a mutex-guarded, insertion-ordered buffer of the most recent
// forecast log entries. Oldest entries are evicted once capacity is reached.
type Ring struct {
	mu       sync.Mutex
	entries  []models.ForecastLogEntry
	capacity int
	nextID   int64

	mirror Mirror
	logger *zap.Logger
}

// NewRing builds a ring sink. mirror may be nil.
func NewRing(capacity int, mirror Mirror, logger *zap.Logger) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ring{
		capacity: capacity,
		nextID:   1,
		mirror:   mirror,
		logger:   logger,
	}
}

// Append assigns the next entry ID, stores the entry and kicks off the
// fire-and-forget mirror write.
func (r *Ring) Append(entry models.ForecastLogEntry) {
	r.mu.Lock()
	entry.EntryID = r.nextID
	r.nextID++
	r.entries = append(r.entries, entry)
	if len(r.entries) > r.capacity {
		r.entries = r.entries[len(r.entries)-r.capacity:]
	}
	r.mu.Unlock()

	if r.mirror != nil {
		go r.mirrorEntry(entry)
	}
}

// Recent returns up to limit entries, newest first. A non-positive limit
// returns everything retained.
func (r *Ring) Recent(limit int) []models.ForecastLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.entries)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]models.ForecastLogEntry, 0, n)
	for i := len(r.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.entries[i])
	}
	return out
}

// Filter returns every retained entry of the given category, newest first.
func (r *Ring) Filter(category string) []models.ForecastLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.ForecastLogEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].Category == category {
			out = append(out, r.entries[i])
		}
	}
	return out
}

func (r *Ring) mirrorEntry(entry models.ForecastLogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()

	if err := r.mirror.SaveLogEntry(ctx, entry); err != nil {
		r.logger.Debug("forecast log mirror write failed", zap.Int64("entry_id", entry.EntryID), zap.Error(err))
	}
}
