package forecast

import (
	"fmt"
	"math"

	"github.com/oumarkante/harvestplan/internal/domain/models"
)

// unconstrained stands in for a resource dimension that places no ceiling on
// a workflow (empty equipment or labor lists). Kept well below math.MaxInt so
// arithmetic around it can never wrap.
const unconstrained = math.MaxInt / 2

// constraintSet holds the five per-dimension batch ceilings for one workflow.
type constraintSet struct {
	time      int
	room      int
	equipment int
	labor     int
	substrate int
}

// limit returns the binding ceiling, clamped at zero.
func (c constraintSet) limit() int {
	m := c.time
	for _, v := range []int{c.room, c.equipment, c.labor, c.substrate} {
		if v < m {
			m = v
		}
	}
	if m < 0 {
		return 0
	}
	return m
}

// governing names the first dimension whose ceiling equals the binding limit.
// Time is checked first; ties resolve in declaration order.
func (c constraintSet) governing() string {
	limit := c.limit()
	switch {
	case c.time <= limit:
		return models.ConstraintTime
	case c.room <= limit:
		return models.ConstraintRoom
	case c.equipment <= limit:
		return models.ConstraintEquipment
	case c.labor <= limit:
		return models.ConstraintLabor
	default:
		return models.ConstraintSubstrate
	}
}

// EstimateThroughput computes one bounded batch-count range per workflow from
// the snapshot. Unknown room or equipment references hard-block the workflow
// (zero ceiling) and are recorded on the estimate rather than raised.
func EstimateThroughput(snap models.CapacitySnapshot, horizonDays int, workflows []models.WorkflowTimingProfile, policy Policy) ([]models.ThroughputEstimate, error) {
	estimates := make([]models.ThroughputEstimate, 0, len(workflows))
	for _, wf := range workflows {
		est, err := estimateWorkflow(snap, horizonDays, wf, policy)
		if err != nil {
			return nil, err
		}
		estimates = append(estimates, est)
	}
	return estimates, nil
}

func estimateWorkflow(snap models.CapacitySnapshot, horizonDays int, wf models.WorkflowTimingProfile, policy Policy) (models.ThroughputEstimate, error) {
	cycleTimeDays := wf.DurationDays * (1 + wf.HistoricalDelayFactor)
	if cycleTimeDays <= 0 {
		return models.ThroughputEstimate{}, invalidProfile("workflow", wf.WorkflowID, "durationDays", "effective cycle time must be > 0")
	}

	set := constraintSet{
		time:      int(math.Floor(float64(horizonDays) / cycleTimeDays)),
		room:      unconstrained,
		equipment: unconstrained,
		labor:     unconstrained,
		substrate: snap.Substrate.BatchesPossible,
	}

	var unknownRooms, unknownEquipment []string

	for _, roomID := range wf.RoomSequence {
		room, ok := snap.Room(roomID)
		if !ok {
			unknownRooms = append(unknownRooms, roomID)
			set.room = 0
			continue
		}
		if room.AvailableCapacityUnits < set.room {
			set.room = room.AvailableCapacityUnits
		}
	}

	for _, equipmentID := range wf.EquipmentNeeded {
		eq, ok := snap.EquipmentByID(equipmentID)
		if !ok {
			unknownEquipment = append(unknownEquipment, equipmentID)
			set.equipment = 0
			continue
		}
		if eq.CyclesPossible < set.equipment {
			set.equipment = eq.CyclesPossible
		}
	}

	for _, role := range snap.Labor {
		if role.BatchesPossible < set.labor {
			set.labor = role.BatchesPossible
		}
	}

	maxBatches := set.limit()
	minBatches := int(math.Floor(float64(maxBatches) * policy.MinThroughputRatio))
	if minBatches > maxBatches {
		minBatches = maxBatches
	}
	if minBatches < 0 {
		minBatches = 0
	}

	governing := set.governing()

	return models.ThroughputEstimate{
		WorkflowID:          wf.WorkflowID,
		Name:                wf.Name,
		CycleTimeDays:       cycleTimeDays,
		BatchesMin:          minBatches,
		BatchesMax:          maxBatches,
		GoverningConstraint: governing,
		UnknownRooms:        unknownRooms,
		UnknownEquipment:    unknownEquipment,
		Explain:             explainEstimate(cycleTimeDays, governing, maxBatches),
	}, nil
}

// explainEstimate produces the one-line traceability string. The format is a
// contract: three pipe-separated clauses, byte-stable for identical inputs.
func explainEstimate(cycleTimeDays float64, governing string, maxBatches int) string {
	return fmt.Sprintf("cycle %.2f days | governing constraint: %s | max %d batches", cycleTimeDays, governing, maxBatches)
}
