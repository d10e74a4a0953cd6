package forecast

import (
	"fmt"

	"github.com/oumarkante/harvestplan/internal/domain/models"
)

// tightCycleThreshold marks equipment, labor and substrate entries that can
// complete fewer than this many cycles inside the horizon.
const tightCycleThreshold = 2

// severityByFinding is a static lookup; severities are fixed per category.
var severityByFinding = map[string]string{
	models.FindingRoom:             models.SeverityMedium,
	models.FindingEquipment:        models.SeverityHigh,
	models.FindingLabor:            models.SeverityMedium,
	models.FindingSubstrate:        models.SeverityHigh,
	models.FindingWorkflow:         models.SeverityHigh,
	models.FindingUnknownReference: models.SeverityMedium,
}

// AnalyzeBottlenecks scans the snapshot and throughput results for limiting
// resources, stalled workflows and dangling references.
func AnalyzeBottlenecks(snap models.CapacitySnapshot, estimates []models.ThroughputEstimate) models.BottleneckAnalysis {
	var findings []models.BottleneckFinding

	add := func(findingType, id, detail string) {
		findings = append(findings, models.BottleneckFinding{
			Type:     findingType,
			ID:       id,
			Severity: severityByFinding[findingType],
			Detail:   detail,
		})
	}

	for _, room := range snap.Rooms {
		if room.ConstrainedBy == models.RoomConstraintNone {
			continue
		}
		add(models.FindingRoom, room.RoomID,
			fmt.Sprintf("room constrained by %s with %d available units", room.ConstrainedBy, room.AvailableCapacityUnits))
	}

	for _, eq := range snap.Equipment {
		if eq.CyclesPossible >= tightCycleThreshold {
			continue
		}
		add(models.FindingEquipment, eq.EquipmentID,
			fmt.Sprintf("equipment limited to %d cycles in horizon", eq.CyclesPossible))
	}

	for _, role := range snap.Labor {
		if role.BatchesPossible >= tightCycleThreshold {
			continue
		}
		add(models.FindingLabor, role.Role,
			fmt.Sprintf("labor role limited to %d batches in horizon", role.BatchesPossible))
	}

	if snap.Substrate.BatchesPossible < tightCycleThreshold {
		add(models.FindingSubstrate, "substrate",
			fmt.Sprintf("substrate inventory supports only %d batches", snap.Substrate.BatchesPossible))
	}

	for _, est := range estimates {
		if est.BatchesMax == 0 {
			add(models.FindingWorkflow, est.WorkflowID,
				fmt.Sprintf("workflow stalled: governing constraint %s allows 0 batches", est.GoverningConstraint))
		}
		for _, roomID := range est.UnknownRooms {
			add(models.FindingUnknownReference, roomID,
				fmt.Sprintf("workflow %s references unknown room %s", est.WorkflowID, roomID))
		}
		for _, equipmentID := range est.UnknownEquipment {
			add(models.FindingUnknownReference, equipmentID,
				fmt.Sprintf("workflow %s references unknown equipment %s", est.WorkflowID, equipmentID))
		}
	}

	return models.BottleneckAnalysis{Findings: findings}
}
