package models

import "time"

// Constraint dimensions that can govern a workflow's throughput.
const (
	ConstraintTime      = "time"
	ConstraintRoom      = "room"
	ConstraintEquipment = "equipment"
	ConstraintLabor     = "labor"
	ConstraintSubstrate = "substrate"
)

// ThroughputEstimate bounds the batch count one workflow can complete inside
// the horizon, and names the single resource dimension that sets the bound.
type ThroughputEstimate struct {
	WorkflowID          string  `json:"workflowId" bson:"workflow_id"`
	Name                string  `json:"name" bson:"name"`
	CycleTimeDays       float64 `json:"cycleTimeDays" bson:"cycle_time_days"`
	BatchesMin          int     `json:"batchesMin" bson:"batches_min"`
	BatchesMax          int     `json:"batchesMax" bson:"batches_max"`
	GoverningConstraint string  `json:"governingConstraint" bson:"governing_constraint"`
	// UnknownRooms and UnknownEquipment list referenced IDs absent from the
	// snapshot; each contributes a zero-capacity constraint.
	UnknownRooms     []string `json:"unknownRooms,omitempty" bson:"unknown_rooms,omitempty"`
	UnknownEquipment []string `json:"unknownEquipment,omitempty" bson:"unknown_equipment,omitempty"`
	Explain          string   `json:"explain" bson:"explain"`
}

// YieldRangeEstimate converts a throughput range into produced volume, clamped
// by what the substrate inventory can actually feed.
type YieldRangeEstimate struct {
	WorkflowID string `json:"workflowId" bson:"workflow_id"`
	Name       string `json:"name" bson:"name"`
	BatchesMin int    `json:"batchesMin" bson:"batches_min"`
	BatchesMax int    `json:"batchesMax" bson:"batches_max"`
	VolumeMin  int    `json:"volumeMin" bson:"volume_min"`
	VolumeMax  int    `json:"volumeMax" bson:"volume_max"`
}

// Finding types reported by the bottleneck analyzer.
const (
	FindingRoom             = "room"
	FindingEquipment        = "equipment"
	FindingLabor            = "labor"
	FindingSubstrate        = "substrate"
	FindingWorkflow         = "workflow"
	FindingUnknownReference = "unknown_reference"
)

// Finding severities. Fixed per finding type.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
)

// BottleneckFinding flags one constrained resource or stalled workflow.
type BottleneckFinding struct {
	Type     string `json:"type" bson:"type"`
	ID       string `json:"id" bson:"id"`
	Severity string `json:"severity" bson:"severity"`
	Detail   string `json:"detail" bson:"detail"`
}

// BottleneckAnalysis is the full set of findings for one report.
type BottleneckAnalysis struct {
	Findings []BottleneckFinding `json:"findings" bson:"findings"`
}

// Insight categories derived by the engine.
const (
	InsightBottlenecks   = "bottlenecks"
	InsightLowThroughput = "low_throughput"
	InsightZeroYield     = "zero_yield"
)

// ForecastInsight is a summary observation over the whole report.
type ForecastInsight struct {
	Category  string   `json:"category" bson:"category"`
	Message   string   `json:"message" bson:"message"`
	Workflows []string `json:"workflows,omitempty" bson:"workflows,omitempty"`
}

// ForecastReport aggregates every stage's output for one engine run. Reports
// are immutable once built; a new run supersedes rather than mutates.
type ForecastReport struct {
	ReportID    string               `json:"reportId" bson:"report_id"`
	FacilityID  string               `json:"facilityId" bson:"facility_id"`
	HorizonDays int                  `json:"horizonDays" bson:"horizon_days"`
	GeneratedAt time.Time            `json:"generatedAt" bson:"generated_at"`
	Snapshot    CapacitySnapshot     `json:"snapshot" bson:"snapshot"`
	Throughput  []ThroughputEstimate `json:"throughput" bson:"throughput"`
	Yield       []YieldRangeEstimate `json:"yield" bson:"yield"`
	Bottlenecks BottleneckAnalysis   `json:"bottlenecks" bson:"bottlenecks"`
	Insights    []ForecastInsight    `json:"insights" bson:"insights"`
}
