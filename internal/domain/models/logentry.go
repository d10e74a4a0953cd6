package models

import "time"

// Forecast log categories, one per engine stage plus warnings.
const (
	LogCategoryCapacity   = "capacity"
	LogCategoryThroughput = "throughput"
	LogCategoryYield      = "yield"
	LogCategoryBottleneck = "bottleneck"
	LogCategoryReport     = "report"
	LogCategoryWarning    = "warning"
)

// ForecastLogEntry is one append-only audit record. The modeling stages only
// ever write these; nothing inside the engine reads them back.
type ForecastLogEntry struct {
	EntryID   int64             `json:"entryId" bson:"entry_id"`
	Timestamp time.Time         `json:"timestamp" bson:"timestamp"`
	Category  string            `json:"category" bson:"category"`
	Message   string            `json:"message" bson:"message"`
	Context   map[string]string `json:"context,omitempty" bson:"context,omitempty"`
}
