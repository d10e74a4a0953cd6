package forecast

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oumarkante/harvestplan/internal/domain/models"
)

// LogSink receives the append-only audit trail. Implementations must be safe
// for concurrent append; the engine never reads entries back.
type LogSink interface {
	Append(entry models.ForecastLogEntry)
}

// Engine sequences the modeling stages into a complete ForecastReport. The
// stages are pure; the engine owns only the clock, the report IDs and the
// audit trail.
type Engine struct {
	policy Policy
	sink   LogSink
	logger *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewEngine wires a forecasting engine with the given policy and log sink.
func NewEngine(policy Policy, sink LogSink, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		policy: policy,
		sink:   sink,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// BuildForecast runs capacity, throughput, yield and bottleneck modeling in
// strict order and assembles the final report. Any stage failure aborts the
// whole report; partial reports are never returned.
func (e *Engine) BuildForecast(ctx context.Context, input models.ForecastInput) (*models.ForecastReport, error) {
	generatedAt := e.now().UTC()

	snap, err := BuildCapacitySnapshot(input.FacilityID, input.HorizonDays, input.Rooms, input.Equipment, input.Substrate, input.Labor, generatedAt)
	if err != nil {
		e.logger.Warn("capacity modeling rejected input", zap.String("facility", input.FacilityID), zap.Error(err))
		return nil, fmt.Errorf("capacity modeling: %w", err)
	}
	e.log(models.LogCategoryCapacity, "capacity snapshot built", map[string]string{
		"facility": input.FacilityID,
		"horizon":  strconv.Itoa(input.HorizonDays),
		"rooms":    strconv.Itoa(len(snap.Rooms)),
	})
	e.logEmptySections(input)

	estimates, err := EstimateThroughput(snap, input.HorizonDays, input.Workflows, e.policy)
	if err != nil {
		e.logger.Warn("throughput estimation rejected input", zap.String("facility", input.FacilityID), zap.Error(err))
		return nil, fmt.Errorf("throughput estimation: %w", err)
	}
	e.logUnknownReferences(input.FacilityID, estimates)
	e.log(models.LogCategoryThroughput, "throughput estimated", map[string]string{
		"facility":  input.FacilityID,
		"workflows": strconv.Itoa(len(estimates)),
	})

	yields := CalculateYieldRanges(estimates, input.Substrate, e.policy)
	e.log(models.LogCategoryYield, "yield ranges calculated", map[string]string{
		"facility":  input.FacilityID,
		"workflows": strconv.Itoa(len(yields)),
	})

	analysis := AnalyzeBottlenecks(snap, estimates)
	e.log(models.LogCategoryBottleneck, "bottleneck analysis complete", map[string]string{
		"facility": input.FacilityID,
		"findings": strconv.Itoa(len(analysis.Findings)),
	})

	report := &models.ForecastReport{
		ReportID:    e.newID(),
		FacilityID:  input.FacilityID,
		HorizonDays: input.HorizonDays,
		GeneratedAt: generatedAt,
		Snapshot:    snap,
		Throughput:  estimates,
		Yield:       yields,
		Bottlenecks: analysis,
		Insights:    deriveInsights(analysis, estimates, yields),
	}
	e.log(models.LogCategoryReport, "forecast report assembled", map[string]string{
		"facility": input.FacilityID,
		"report":   report.ReportID,
	})

	e.logger.Info("forecast built",
		zap.String("facility", input.FacilityID),
		zap.String("report", report.ReportID),
		zap.Int("horizon_days", input.HorizonDays),
		zap.Int("findings", len(analysis.Findings)))

	return report, nil
}

func (e *Engine) log(category, message string, logCtx map[string]string) {
	if e.sink == nil {
		return
	}
	e.sink.Append(models.ForecastLogEntry{
		Timestamp: e.now().UTC(),
		Category:  category,
		Message:   message,
		Context:   logCtx,
	})
}

// logEmptySections flags missing resource sections; they degrade into
// zero-valued constraints rather than failing the run.
func (e *Engine) logEmptySections(input models.ForecastInput) {
	var empty []string
	if len(input.Rooms) == 0 {
		empty = append(empty, "rooms")
	}
	if len(input.Equipment) == 0 {
		empty = append(empty, "equipment")
	}
	if len(input.Labor) == 0 {
		empty = append(empty, "labor")
	}
	if len(empty) == 0 {
		return
	}

	e.logger.Warn("forecast input has empty resource sections",
		zap.String("facility", input.FacilityID),
		zap.Strings("sections", empty))
	e.log(models.LogCategoryWarning, "forecast input has empty resource sections", map[string]string{
		"facility": input.FacilityID,
		"sections": strings.Join(empty, ","),
	})
}

func (e *Engine) logUnknownReferences(facilityID string, estimates []models.ThroughputEstimate) {
	for _, est := range estimates {
		if len(est.UnknownRooms) == 0 && len(est.UnknownEquipment) == 0 {
			continue
		}
		e.logger.Warn("workflow references unknown resources",
			zap.String("facility", facilityID),
			zap.String("workflow", est.WorkflowID),
			zap.Strings("rooms", est.UnknownRooms),
			zap.Strings("equipment", est.UnknownEquipment))
		e.log(models.LogCategoryWarning, "workflow references unknown resources", map[string]string{
			"facility":  facilityID,
			"workflow":  est.WorkflowID,
			"rooms":     strings.Join(est.UnknownRooms, ","),
			"equipment": strings.Join(est.UnknownEquipment, ","),
		})
	}
}

// lowThroughputThreshold marks workflows whose batch ceiling is worryingly low
// without being fully stalled.
const lowThroughputThreshold = 2

func deriveInsights(analysis models.BottleneckAnalysis, estimates []models.ThroughputEstimate, yields []models.YieldRangeEstimate) []models.ForecastInsight {
	var insights []models.ForecastInsight

	if n := len(analysis.Findings); n > 0 {
		insights = append(insights, models.ForecastInsight{
			Category: models.InsightBottlenecks,
			Message:  fmt.Sprintf("%d resource bottlenecks detected", n),
		})
	}

	var low []string
	for _, est := range estimates {
		if est.BatchesMax < lowThroughputThreshold {
			low = append(low, est.WorkflowID)
		}
	}
	if len(low) > 0 {
		insights = append(insights, models.ForecastInsight{
			Category:  models.InsightLowThroughput,
			Message:   fmt.Sprintf("%d workflows project fewer than %d batches", len(low), lowThroughputThreshold),
			Workflows: low,
		})
	}

	var zero []string
	for _, y := range yields {
		if y.VolumeMax == 0 {
			zero = append(zero, y.WorkflowID)
		}
	}
	if len(zero) > 0 {
		insights = append(insights, models.ForecastInsight{
			Category:  models.InsightZeroYield,
			Message:   fmt.Sprintf("%d workflows project zero yield", len(zero)),
			Workflows: zero,
		})
	}

	return insights
}
