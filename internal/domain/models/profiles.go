package models

// RoomCapacityProfile describes a grow room's physical slot capacity and
// turnover behaviour. Immutable input.
type RoomCapacityProfile struct {
	RoomID        string  `json:"roomId" bson:"room_id"`
	CapacityUnits int     `json:"capacityUnits" bson:"capacity_units"`
	TurnoverDays  float64 `json:"turnoverDays" bson:"turnover_days"`
	// HistoricalUtilization is a fraction in [0,1]; nil means 1.
	HistoricalUtilization *float64 `json:"historicalUtilization,omitempty" bson:"historical_utilization,omitempty"`
}

// EquipmentAvailabilityProfile describes one piece of shared equipment.
type EquipmentAvailabilityProfile struct {
	EquipmentID          string  `json:"equipmentId" bson:"equipment_id"`
	AvailableHoursPerDay float64 `json:"availableHoursPerDay" bson:"available_hours_per_day"`
	CycleTimeHours       float64 `json:"cycleTimeHours" bson:"cycle_time_hours"`
	// HistoricalAvailability is a fraction in [0,1]; nil means 1.
	HistoricalAvailability *float64 `json:"historicalAvailability,omitempty" bson:"historical_availability,omitempty"`
}

// SubstrateInventoryProfile describes the material inventory consumed per batch.
type SubstrateInventoryProfile struct {
	VolumeUnits              int     `json:"volumeUnits" bson:"volume_units"`
	BatchSizeUnits           int     `json:"batchSizeUnits" bson:"batch_size_units"`
	HistoricalCompletionRate float64 `json:"historicalCompletionRate" bson:"historical_completion_rate"`
}

// LaborAvailabilityProfile describes one labor role's daily hours and the
// hands-on hours a single batch consumes.
type LaborAvailabilityProfile struct {
	Role                 string  `json:"role" bson:"role"`
	HoursAvailablePerDay float64 `json:"hoursAvailablePerDay" bson:"hours_available_per_day"`
	HoursPerBatch        float64 `json:"hoursPerBatch" bson:"hours_per_batch"`
}

// WorkflowTimingProfile describes one cultivation workflow: its duration, the
// rooms it occupies in order, and the equipment it needs.
type WorkflowTimingProfile struct {
	WorkflowID   string   `json:"workflowId" bson:"workflow_id"`
	Name         string   `json:"name" bson:"name"`
	DurationDays float64  `json:"durationDays" bson:"duration_days"`
	RoomSequence []string `json:"roomSequence" bson:"room_sequence"`
	// EquipmentNeeded may be empty; an empty list leaves the workflow
	// unconstrained by equipment.
	EquipmentNeeded []string `json:"equipmentNeeded,omitempty" bson:"equipment_needed,omitempty"`
	// HistoricalDelayFactor is an additive fraction; 0 means no delay.
	HistoricalDelayFactor float64 `json:"historicalDelayFactor,omitempty" bson:"historical_delay_factor,omitempty"`
}

// ForecastInput is the full payload for a single forecast run.
type ForecastInput struct {
	FacilityID  string                         `json:"facilityId" binding:"required" bson:"facility_id"`
	HorizonDays int                            `json:"horizonDays" binding:"required" bson:"horizon_days"`
	Rooms       []RoomCapacityProfile          `json:"rooms" bson:"rooms"`
	Equipment   []EquipmentAvailabilityProfile `json:"equipment" bson:"equipment"`
	Substrate   SubstrateInventoryProfile      `json:"substrate" bson:"substrate"`
	Labor       []LaborAvailabilityProfile     `json:"labor" bson:"labor"`
	Workflows   []WorkflowTimingProfile        `json:"workflows" bson:"workflows"`
}
