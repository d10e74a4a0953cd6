package forecast

import (
	"errors"
	"testing"
	"time"

	"github.com/oumarkante/harvestplan/internal/domain/models"
)

func frac(v float64) *float64 { return &v }

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func validSubstrate() models.SubstrateInventoryProfile {
	return models.SubstrateInventoryProfile{
		VolumeUnits:              600,
		BatchSizeUnits:           10,
		HistoricalCompletionRate: 0.93,
	}
}

func TestBuildCapacitySnapshotRooms(t *testing.T) {
	tests := []struct {
		name              string
		room              models.RoomCapacityProfile
		horizonDays       int
		wantAvailable     int
		wantUtilization   int
		wantConstrainedBy string
	}{
		{
			name: "fast turnover room caps utilization at 100",
			room: models.RoomCapacityProfile{
				RoomID:                "grow-a",
				CapacityUnits:         40,
				TurnoverDays:          2,
				HistoricalUtilization: frac(0.9),
			},
			horizonDays:       14,
			wantAvailable:     252,
			wantUtilization:   100,
			wantConstrainedBy: models.RoomConstraintNone,
		},
		{
			name: "turnover longer than horizon",
			room: models.RoomCapacityProfile{
				RoomID:        "fruiting-1",
				CapacityUnits: 10,
				TurnoverDays:  30,
			},
			horizonDays:       14,
			wantAvailable:     4,
			wantUtilization:   47,
			wantConstrainedBy: models.RoomConstraintTurnover,
		},
		{
			name: "zero capacity room",
			room: models.RoomCapacityProfile{
				RoomID:        "mothballed",
				CapacityUnits: 0,
				TurnoverDays:  2,
			},
			horizonDays:       14,
			wantAvailable:     0,
			wantUtilization:   100,
			wantConstrainedBy: models.RoomConstraintCapacity,
		},
		{
			name: "missing utilization defaults to 1",
			room: models.RoomCapacityProfile{
				RoomID:        "grow-b",
				CapacityUnits: 10,
				TurnoverDays:  7,
			},
			horizonDays:       14,
			wantAvailable:     20,
			wantUtilization:   100,
			wantConstrainedBy: models.RoomConstraintNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := BuildCapacitySnapshot("facility-1", tt.horizonDays,
				[]models.RoomCapacityProfile{tt.room}, nil, validSubstrate(), nil, testNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(snap.Rooms) != 1 {
				t.Fatalf("expected 1 room, got %d", len(snap.Rooms))
			}
			room := snap.Rooms[0]
			if room.AvailableCapacityUnits != tt.wantAvailable {
				t.Errorf("available units = %d, want %d", room.AvailableCapacityUnits, tt.wantAvailable)
			}
			if room.UtilizationPercent != tt.wantUtilization {
				t.Errorf("utilization = %d, want %d", room.UtilizationPercent, tt.wantUtilization)
			}
			if room.ConstrainedBy != tt.wantConstrainedBy {
				t.Errorf("constrainedBy = %q, want %q", room.ConstrainedBy, tt.wantConstrainedBy)
			}
			if room.AvailableCapacityUnits < 0 {
				t.Errorf("available units must be >= 0, got %d", room.AvailableCapacityUnits)
			}
			if room.UtilizationPercent < 0 || room.UtilizationPercent > 100 {
				t.Errorf("utilization must be in [0,100], got %d", room.UtilizationPercent)
			}
		})
	}
}

func TestBuildCapacitySnapshotEquipment(t *testing.T) {
	eq := models.EquipmentAvailabilityProfile{
		EquipmentID:            "autoclave-1",
		AvailableHoursPerDay:   6,
		CycleTimeHours:         2,
		HistoricalAvailability: frac(0.92),
	}

	snap, err := BuildCapacitySnapshot("facility-1", 14, nil,
		[]models.EquipmentAvailabilityProfile{eq}, validSubstrate(), nil, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := snap.Equipment[0]
	if got.CyclesPossible != 38 {
		t.Errorf("cycles possible = %d, want 38", got.CyclesPossible)
	}
	if got.AvailableHours < 77.27 || got.AvailableHours > 77.29 {
		t.Errorf("available hours = %f, want ~77.28", got.AvailableHours)
	}
}

func TestBuildCapacitySnapshotSubstrate(t *testing.T) {
	snap, err := BuildCapacitySnapshot("facility-1", 14, nil, nil, validSubstrate(), nil, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Substrate.RawBatches != 60 {
		t.Errorf("raw batches = %d, want 60", snap.Substrate.RawBatches)
	}
	if snap.Substrate.BatchesPossible != 55 {
		t.Errorf("adjusted batches = %d, want 55", snap.Substrate.BatchesPossible)
	}
}

func TestBuildCapacitySnapshotLabor(t *testing.T) {
	labor := models.LaborAvailabilityProfile{
		Role:                 "cultivation-tech",
		HoursAvailablePerDay: 8,
		HoursPerBatch:        3,
	}

	snap, err := BuildCapacitySnapshot("facility-1", 14, nil, nil, validSubstrate(),
		[]models.LaborAvailabilityProfile{labor}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := snap.Labor[0]
	if got.HoursAvailable != 112 {
		t.Errorf("hours available = %f, want 112", got.HoursAvailable)
	}
	if got.BatchesPossible != 37 {
		t.Errorf("batches possible = %d, want 37", got.BatchesPossible)
	}
}

func TestBuildCapacitySnapshotInvalidProfiles(t *testing.T) {
	tests := []struct {
		name      string
		rooms     []models.RoomCapacityProfile
		equipment []models.EquipmentAvailabilityProfile
		substrate models.SubstrateInventoryProfile
		labor     []models.LaborAvailabilityProfile
		horizon   int
		wantField string
	}{
		{
			name:      "zero turnover",
			rooms:     []models.RoomCapacityProfile{{RoomID: "r1", CapacityUnits: 10}},
			substrate: validSubstrate(),
			horizon:   14,
			wantField: "turnoverDays",
		},
		{
			name:      "zero equipment cycle time",
			equipment: []models.EquipmentAvailabilityProfile{{EquipmentID: "e1", AvailableHoursPerDay: 6}},
			substrate: validSubstrate(),
			horizon:   14,
			wantField: "cycleTimeHours",
		},
		{
			name:      "zero batch size",
			substrate: models.SubstrateInventoryProfile{VolumeUnits: 600},
			horizon:   14,
			wantField: "batchSizeUnits",
		},
		{
			name:      "zero hours per batch",
			substrate: validSubstrate(),
			labor:     []models.LaborAvailabilityProfile{{Role: "tech", HoursAvailablePerDay: 8}},
			horizon:   14,
			wantField: "hoursPerBatch",
		},
		{
			name:      "non-positive horizon",
			substrate: validSubstrate(),
			horizon:   0,
			wantField: "horizonDays",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildCapacitySnapshot("facility-1", tt.horizon, tt.rooms, tt.equipment, tt.substrate, tt.labor, testNow)
			var profileErr *InvalidProfileError
			if !errors.As(err, &profileErr) {
				t.Fatalf("expected InvalidProfileError, got %v", err)
			}
			if profileErr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", profileErr.Field, tt.wantField)
			}
		})
	}
}

func TestBuildCapacitySnapshotEmptyInput(t *testing.T) {
	snap, err := BuildCapacitySnapshot("facility-1", 14, nil, nil, validSubstrate(), nil, testNow)
	if err != nil {
		t.Fatalf("empty sections must not error, got %v", err)
	}
	if len(snap.Rooms) != 0 || len(snap.Equipment) != 0 || len(snap.Labor) != 0 {
		t.Errorf("expected zeroed sections, got %+v", snap)
	}
}
