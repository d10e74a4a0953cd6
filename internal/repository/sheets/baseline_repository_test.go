package sheets

import (
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func testRepo() *GoogleSheetBaseline {
	return &GoogleSheetBaseline{logger: zap.NewNop()}
}

func TestParseRooms(t *testing.T) {
	rows := [][]interface{}{
		{"Room", "Capacity", "Turnover", "Utilization"}, // header skipped
		{"grow-a", "40", "2", "0.9"},
		{"grow-b", "25", "3.5"}, // utilization omitted
		{"broken", "not-a-number", "2"},
	}

	rooms := testRepo().parseRooms(rows)
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d: %+v", len(rooms), rooms)
	}

	first := rooms[0]
	if first.RoomID != "grow-a" || first.CapacityUnits != 40 || first.TurnoverDays != 2 {
		t.Errorf("unexpected room: %+v", first)
	}
	if first.HistoricalUtilization == nil || *first.HistoricalUtilization != 0.9 {
		t.Errorf("utilization = %v, want 0.9", first.HistoricalUtilization)
	}

	if rooms[1].HistoricalUtilization != nil {
		t.Errorf("expected nil utilization for grow-b, got %v", *rooms[1].HistoricalUtilization)
	}
}

func TestParseEquipment(t *testing.T) {
	rows := [][]interface{}{
		{"Equipment", "HoursPerDay", "CycleHours", "Availability"},
		{"autoclave-1", "6", "2", "0.92"},
	}

	equipment := testRepo().parseEquipment(rows)
	if len(equipment) != 1 {
		t.Fatalf("expected 1 equipment entry, got %d", len(equipment))
	}
	eq := equipment[0]
	if eq.EquipmentID != "autoclave-1" || eq.AvailableHoursPerDay != 6 || eq.CycleTimeHours != 2 {
		t.Errorf("unexpected equipment: %+v", eq)
	}
	if eq.HistoricalAvailability == nil || *eq.HistoricalAvailability != 0.92 {
		t.Errorf("availability = %v, want 0.92", eq.HistoricalAvailability)
	}
}

func TestParseSubstrate(t *testing.T) {
	rows := [][]interface{}{
		{"Volume", "BatchSize", "Completion"},
		{"600", "10", "0.93"},
	}

	substrate, ok := testRepo().parseSubstrate(rows)
	if !ok {
		t.Fatal("expected a parsable substrate row")
	}
	if substrate.VolumeUnits != 600 || substrate.BatchSizeUnits != 10 || substrate.HistoricalCompletionRate != 0.93 {
		t.Errorf("unexpected substrate: %+v", substrate)
	}

	if _, ok := testRepo().parseSubstrate([][]interface{}{{"Volume", "BatchSize", "Completion"}}); ok {
		t.Error("header-only sheet must not produce a substrate profile")
	}
}

func TestParseWorkflows(t *testing.T) {
	rows := [][]interface{}{
		{"ID", "Name", "Duration", "Rooms", "Equipment", "Delay"},
		{"wf-oyster", "Oyster run", "3", "grow-a, grow-b", "autoclave-1", "0.1"},
		{"wf-lean", "Lean run", "2", "grow-a"},
	}

	workflows := testRepo().parseWorkflows(rows)
	if len(workflows) != 2 {
		t.Fatalf("expected 2 workflows, got %d", len(workflows))
	}

	first := workflows[0]
	if !reflect.DeepEqual(first.RoomSequence, []string{"grow-a", "grow-b"}) {
		t.Errorf("room sequence = %v", first.RoomSequence)
	}
	if !reflect.DeepEqual(first.EquipmentNeeded, []string{"autoclave-1"}) {
		t.Errorf("equipment = %v", first.EquipmentNeeded)
	}
	if first.HistoricalDelayFactor != 0.1 {
		t.Errorf("delay = %f, want 0.1", first.HistoricalDelayFactor)
	}

	second := workflows[1]
	if len(second.EquipmentNeeded) != 0 || second.HistoricalDelayFactor != 0 {
		t.Errorf("unexpected defaults: %+v", second)
	}
}

func TestSplitIDs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"grow-a,grow-b", []string{"grow-a", "grow-b"}},
		{" grow-a , grow-b ", []string{"grow-a", "grow-b"}},
		{"grow-a", []string{"grow-a"}},
		{"", nil},
		{" , ", nil},
	}

	for _, tt := range tests {
		if got := splitIDs(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitIDs(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
