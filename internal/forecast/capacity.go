package forecast

import (
	"math"
	"time"

	"github.com/oumarkante/harvestplan/internal/domain/models"
)

// BuildCapacitySnapshot converts the raw resource profiles into a
// point-in-time CapacitySnapshot for the given horizon. Empty profile slices
// produce zeroed sections; zero denominators are rejected up front.
func BuildCapacitySnapshot(facilityID string, horizonDays int, rooms []models.RoomCapacityProfile, equipment []models.EquipmentAvailabilityProfile, substrate models.SubstrateInventoryProfile, labor []models.LaborAvailabilityProfile, now time.Time) (models.CapacitySnapshot, error) {
	if horizonDays <= 0 {
		return models.CapacitySnapshot{}, invalidProfile("forecast", facilityID, "horizonDays", "must be > 0")
	}

	snap := models.CapacitySnapshot{
		FacilityID:  facilityID,
		HorizonDays: horizonDays,
		GeneratedAt: now,
	}

	for _, room := range rooms {
		rc, err := modelRoom(room, horizonDays)
		if err != nil {
			return models.CapacitySnapshot{}, err
		}
		snap.Rooms = append(snap.Rooms, rc)
	}

	for _, eq := range equipment {
		ec, err := modelEquipment(eq, horizonDays)
		if err != nil {
			return models.CapacitySnapshot{}, err
		}
		snap.Equipment = append(snap.Equipment, ec)
	}

	sc, err := modelSubstrate(substrate)
	if err != nil {
		return models.CapacitySnapshot{}, err
	}
	snap.Substrate = sc

	for _, role := range labor {
		lc, err := modelLabor(role, horizonDays)
		if err != nil {
			return models.CapacitySnapshot{}, err
		}
		snap.Labor = append(snap.Labor, lc)
	}

	return snap, nil
}

func modelRoom(room models.RoomCapacityProfile, horizonDays int) (models.RoomCapacity, error) {
	if room.TurnoverDays <= 0 {
		return models.RoomCapacity{}, invalidProfile("room", room.RoomID, "turnoverDays", "must be > 0")
	}

	cycles := float64(horizonDays) / room.TurnoverDays
	utilization := fracOrDefault(room.HistoricalUtilization, 1)
	available := int(math.Floor(float64(room.CapacityUnits) * cycles * utilization))
	if available < 0 {
		available = 0
	}

	utilizationPercent := int(math.Round(cycles * 100))
	if utilizationPercent > 100 {
		utilizationPercent = 100
	}

	constrainedBy := models.RoomConstraintNone
	switch {
	case cycles < 1:
		constrainedBy = models.RoomConstraintTurnover
	case available <= 0:
		constrainedBy = models.RoomConstraintCapacity
	}

	return models.RoomCapacity{
		RoomID:                 room.RoomID,
		CapacityUnits:          room.CapacityUnits,
		Cycles:                 cycles,
		AvailableCapacityUnits: available,
		UtilizationPercent:     utilizationPercent,
		ConstrainedBy:          constrainedBy,
	}, nil
}

func modelEquipment(eq models.EquipmentAvailabilityProfile, horizonDays int) (models.EquipmentCapacity, error) {
	if eq.CycleTimeHours <= 0 {
		return models.EquipmentCapacity{}, invalidProfile("equipment", eq.EquipmentID, "cycleTimeHours", "must be > 0")
	}

	availability := fracOrDefault(eq.HistoricalAvailability, 1)
	hours := eq.AvailableHoursPerDay * float64(horizonDays) * availability
	cycles := int(math.Floor(hours / eq.CycleTimeHours))
	if cycles < 0 {
		cycles = 0
	}

	return models.EquipmentCapacity{
		EquipmentID:    eq.EquipmentID,
		AvailableHours: hours,
		CyclesPossible: cycles,
	}, nil
}

func modelSubstrate(substrate models.SubstrateInventoryProfile) (models.SubstrateCapacity, error) {
	if substrate.BatchSizeUnits <= 0 {
		return models.SubstrateCapacity{}, invalidProfile("substrate", "", "batchSizeUnits", "must be > 0")
	}

	raw := substrate.VolumeUnits / substrate.BatchSizeUnits
	if raw < 0 {
		raw = 0
	}
	adjusted := int(math.Floor(float64(raw) * substrate.HistoricalCompletionRate))
	if adjusted < 0 {
		adjusted = 0
	}

	return models.SubstrateCapacity{
		VolumeUnits:     substrate.VolumeUnits,
		BatchSizeUnits:  substrate.BatchSizeUnits,
		RawBatches:      raw,
		BatchesPossible: adjusted,
		CompletionRate:  substrate.HistoricalCompletionRate,
	}, nil
}

func modelLabor(role models.LaborAvailabilityProfile, horizonDays int) (models.LaborCapacity, error) {
	if role.HoursPerBatch <= 0 {
		return models.LaborCapacity{}, invalidProfile("labor", role.Role, "hoursPerBatch", "must be > 0")
	}

	hours := role.HoursAvailablePerDay * float64(horizonDays)
	batches := int(math.Floor(hours / role.HoursPerBatch))
	if batches < 0 {
		batches = 0
	}

	return models.LaborCapacity{
		Role:            role.Role,
		HoursAvailable:  hours,
		BatchesPossible: batches,
	}, nil
}

func fracOrDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
