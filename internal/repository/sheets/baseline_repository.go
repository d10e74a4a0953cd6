package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/oumarkante/harvestplan/internal/config"
	"github.com/oumarkante/harvestplan/internal/domain/models"
)

const (
	roomsRange     = "Rooms!A:D"
	equipmentRange = "Equipment!A:D"
	substrateRange = "Substrate!A:C"
	laborRange     = "Labor!A:C"
	workflowsRange = "Workflows!A:F"
)

// BaselineRepository loads the facility baseline scheduled forecasts run
// against. Rows that fail to parse (headers included) are skipped.
type BaselineRepository interface {
	LoadBaseline(ctx context.Context) (models.ForecastInput, error)
}

// GoogleSheetBaseline implements BaselineRepository using the official Google
// Sheets API, one tab per profile kind.
type GoogleSheetBaseline struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetBaseline builds a Google Sheets backed baseline source.
func NewGoogleSheetBaseline(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (BaselineRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetBaseline{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// LoadBaseline reads every profile tab and assembles a ForecastInput. The
// caller stamps facility ID and horizon from its own configuration.
func (r *GoogleSheetBaseline) LoadBaseline(ctx context.Context) (models.ForecastInput, error) {
	var input models.ForecastInput

	roomRows, err := r.readRange(ctx, roomsRange)
	if err != nil {
		return models.ForecastInput{}, err
	}
	input.Rooms = r.parseRooms(roomRows)

	equipmentRows, err := r.readRange(ctx, equipmentRange)
	if err != nil {
		return models.ForecastInput{}, err
	}
	input.Equipment = r.parseEquipment(equipmentRows)

	substrateRows, err := r.readRange(ctx, substrateRange)
	if err != nil {
		return models.ForecastInput{}, err
	}
	substrate, ok := r.parseSubstrate(substrateRows)
	if !ok {
		return models.ForecastInput{}, fmt.Errorf("baseline sheet has no parsable substrate row in %s", substrateRange)
	}
	input.Substrate = substrate

	laborRows, err := r.readRange(ctx, laborRange)
	if err != nil {
		return models.ForecastInput{}, err
	}
	input.Labor = r.parseLabor(laborRows)

	workflowRows, err := r.readRange(ctx, workflowsRange)
	if err != nil {
		return models.ForecastInput{}, err
	}
	input.Workflows = r.parseWorkflows(workflowRows)

	return input, nil
}

func (r *GoogleSheetBaseline) readRange(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}
	return resp.Values, nil
}

func (r *GoogleSheetBaseline) parseRooms(rows [][]interface{}) []models.RoomCapacityProfile {
	var rooms []models.RoomCapacityProfile
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		capacity, err := parseInt(row[1])
		if err != nil {
			r.logger.Debug("skip room row", zap.Any("value", row[1]), zap.Error(err))
			continue
		}
		turnover, err := parseFloat(row[2])
		if err != nil {
			r.logger.Debug("skip room row", zap.Any("value", row[2]), zap.Error(err))
			continue
		}

		room := models.RoomCapacityProfile{
			RoomID:        fmt.Sprint(row[0]),
			CapacityUnits: capacity,
			TurnoverDays:  turnover,
		}
		if len(row) > 3 {
			if utilization, err := parseFloat(row[3]); err == nil {
				room.HistoricalUtilization = &utilization
			}
		}
		rooms = append(rooms, room)
	}
	return rooms
}

func (r *GoogleSheetBaseline) parseEquipment(rows [][]interface{}) []models.EquipmentAvailabilityProfile {
	var equipment []models.EquipmentAvailabilityProfile
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		hoursPerDay, err := parseFloat(row[1])
		if err != nil {
			r.logger.Debug("skip equipment row", zap.Any("value", row[1]), zap.Error(err))
			continue
		}
		cycleTime, err := parseFloat(row[2])
		if err != nil {
			r.logger.Debug("skip equipment row", zap.Any("value", row[2]), zap.Error(err))
			continue
		}

		eq := models.EquipmentAvailabilityProfile{
			EquipmentID:          fmt.Sprint(row[0]),
			AvailableHoursPerDay: hoursPerDay,
			CycleTimeHours:       cycleTime,
		}
		if len(row) > 3 {
			if availability, err := parseFloat(row[3]); err == nil {
				eq.HistoricalAvailability = &availability
			}
		}
		equipment = append(equipment, eq)
	}
	return equipment
}

func (r *GoogleSheetBaseline) parseSubstrate(rows [][]interface{}) (models.SubstrateInventoryProfile, bool) {
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		volume, err := parseInt(row[0])
		if err != nil {
			continue
		}
		batchSize, err := parseInt(row[1])
		if err != nil {
			r.logger.Debug("skip substrate row", zap.Any("value", row[1]), zap.Error(err))
			continue
		}
		completion, err := parseFloat(row[2])
		if err != nil {
			r.logger.Debug("skip substrate row", zap.Any("value", row[2]), zap.Error(err))
			continue
		}
		return models.SubstrateInventoryProfile{
			VolumeUnits:              volume,
			BatchSizeUnits:           batchSize,
			HistoricalCompletionRate: completion,
		}, true
	}
	return models.SubstrateInventoryProfile{}, false
}

func (r *GoogleSheetBaseline) parseLabor(rows [][]interface{}) []models.LaborAvailabilityProfile {
	var labor []models.LaborAvailabilityProfile
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		hoursPerDay, err := parseFloat(row[1])
		if err != nil {
			r.logger.Debug("skip labor row", zap.Any("value", row[1]), zap.Error(err))
			continue
		}
		hoursPerBatch, err := parseFloat(row[2])
		if err != nil {
			r.logger.Debug("skip labor row", zap.Any("value", row[2]), zap.Error(err))
			continue
		}
		labor = append(labor, models.LaborAvailabilityProfile{
			Role:                 fmt.Sprint(row[0]),
			HoursAvailablePerDay: hoursPerDay,
			HoursPerBatch:        hoursPerBatch,
		})
	}
	return labor
}

func (r *GoogleSheetBaseline) parseWorkflows(rows [][]interface{}) []models.WorkflowTimingProfile {
	var workflows []models.WorkflowTimingProfile
	for _, row := range rows {
		if len(row) < 4 {
			continue
		}
		duration, err := parseFloat(row[2])
		if err != nil {
			r.logger.Debug("skip workflow row", zap.Any("value", row[2]), zap.Error(err))
			continue
		}

		wf := models.WorkflowTimingProfile{
			WorkflowID:   fmt.Sprint(row[0]),
			Name:         fmt.Sprint(row[1]),
			DurationDays: duration,
			RoomSequence: splitIDs(row[3]),
		}
		if len(row) > 4 {
			wf.EquipmentNeeded = splitIDs(row[4])
		}
		if len(row) > 5 {
			if delay, err := parseFloat(row[5]); err == nil {
				wf.HistoricalDelayFactor = delay
			}
		}
		workflows = append(workflows, wf)
	}
	return workflows
}

// splitIDs parses a comma-separated cell into trimmed IDs.
func splitIDs(value interface{}) []string {
	raw := fmt.Sprint(value)
	if raw == "" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}

func parseInt(value interface{}) (int, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.Atoi(str)
}

func parseFloat(value interface{}) (float64, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(str, 64)
}
