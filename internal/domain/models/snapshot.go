package models

import "time"

// Constraint categories a room can report in a snapshot.
const (
	RoomConstraintNone     = "none"
	RoomConstraintTurnover = "turnover"
	RoomConstraintCapacity = "capacity"
)

// RoomCapacity is the per-room slice of a CapacitySnapshot.
type RoomCapacity struct {
	RoomID                 string  `json:"roomId" bson:"room_id"`
	CapacityUnits          int     `json:"capacityUnits" bson:"capacity_units"`
	Cycles                 float64 `json:"cycles" bson:"cycles"`
	AvailableCapacityUnits int     `json:"availableCapacityUnits" bson:"available_capacity_units"`
	UtilizationPercent     int     `json:"utilizationPercent" bson:"utilization_percent"`
	ConstrainedBy          string  `json:"constrainedBy" bson:"constrained_by"`
}

// EquipmentCapacity is the per-equipment slice of a CapacitySnapshot.
type EquipmentCapacity struct {
	EquipmentID    string  `json:"equipmentId" bson:"equipment_id"`
	AvailableHours float64 `json:"availableHours" bson:"available_hours"`
	CyclesPossible int     `json:"cyclesPossible" bson:"cycles_possible"`
}

// SubstrateCapacity aggregates material availability into batch counts.
type SubstrateCapacity struct {
	VolumeUnits     int     `json:"volumeUnits" bson:"volume_units"`
	BatchSizeUnits  int     `json:"batchSizeUnits" bson:"batch_size_units"`
	RawBatches      int     `json:"rawBatches" bson:"raw_batches"`
	BatchesPossible int     `json:"batchesPossible" bson:"batches_possible"`
	CompletionRate  float64 `json:"completionRate" bson:"completion_rate"`
}

// LaborCapacity is the per-role slice of a CapacitySnapshot.
type LaborCapacity struct {
	Role            string  `json:"role" bson:"role"`
	HoursAvailable  float64 `json:"hoursAvailable" bson:"hours_available"`
	BatchesPossible int     `json:"batchesPossible" bson:"batches_possible"`
}

// CapacitySnapshot is a point-in-time view of every resource dimension for one
// facility and planning horizon.
type CapacitySnapshot struct {
	FacilityID  string              `json:"facilityId" bson:"facility_id"`
	HorizonDays int                 `json:"horizonDays" bson:"horizon_days"`
	GeneratedAt time.Time           `json:"generatedAt" bson:"generated_at"`
	Rooms       []RoomCapacity      `json:"rooms" bson:"rooms"`
	Equipment   []EquipmentCapacity `json:"equipment" bson:"equipment"`
	Substrate   SubstrateCapacity   `json:"substrate" bson:"substrate"`
	Labor       []LaborCapacity     `json:"labor" bson:"labor"`
}

// Room returns the room entry with the given ID, or false when the snapshot
// does not contain it.
func (s CapacitySnapshot) Room(id string) (RoomCapacity, bool) {
	for _, r := range s.Rooms {
		if r.RoomID == id {
			return r, true
		}
	}
	return RoomCapacity{}, false
}

// EquipmentByID returns the equipment entry with the given ID, or false when
// the snapshot does not contain it.
func (s CapacitySnapshot) EquipmentByID(id string) (EquipmentCapacity, bool) {
	for _, e := range s.Equipment {
		if e.EquipmentID == id {
			return e, true
		}
	}
	return EquipmentCapacity{}, false
}
