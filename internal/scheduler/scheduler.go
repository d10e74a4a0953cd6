package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/oumarkante/harvestplan/internal/config"
	"github.com/oumarkante/harvestplan/internal/domain/models"
	"github.com/oumarkante/harvestplan/internal/forecast"
	"github.com/oumarkante/harvestplan/internal/repository/mongodb"
	"github.com/oumarkante/harvestplan/internal/repository/sheets"
	"github.com/oumarkante/harvestplan/pkg/clients/notify"
)

// Scheduler runs the baseline forecast on a cron cadence: load the facility
// baseline from Sheets, build the report, persist it, push a summary.
type Scheduler struct {
	cron     *cron.Cron
	baseline sheets.BaselineRepository
	engine   *forecast.Engine
	reports  mongodb.Repository
	notifier notify.Client
	cfg      config.Config
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. notifier may be nil.
func NewScheduler(cfg config.Config, baseline sheets.BaselineRepository, engine *forecast.Engine, reports mongodb.Repository, notifier notify.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to UTC", zap.String("timezone", cfg.Scheduler.Timezone), zap.Error(err))
		location = time.UTC
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(location)),
		baseline: baseline,
		engine:   engine,
		reports:  reports,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers the baseline forecast job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Scheduler.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Scheduler.CronSchedule, s.runBaselineForecast); err != nil {
		s.logger.Error("failed to schedule baseline forecast", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runBaselineForecast() {
	s.logger.Info("running baseline forecast", zap.String("facility", s.cfg.Baseline.FacilityID))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	input, err := s.baseline.LoadBaseline(ctx)
	if err != nil {
		s.logger.Error("failed to load facility baseline", zap.Error(err))
		return
	}
	input.FacilityID = s.cfg.Baseline.FacilityID
	input.HorizonDays = s.cfg.Baseline.HorizonDays

	report, err := s.engine.BuildForecast(ctx, input)
	if err != nil {
		s.logger.Error("baseline forecast failed", zap.Error(err))
		return
	}

	if err := s.reports.SaveReport(ctx, *report); err != nil {
		s.logger.Error("failed to persist baseline forecast", zap.String("report", report.ReportID), zap.Error(err))
	}

	if s.notifier == nil {
		return
	}

	if err := s.notifier.PushSummary(ctx, summarize(report)); err != nil {
		s.logger.Error("failed to push forecast summary", zap.String("report", report.ReportID), zap.Error(err))
	} else {
		s.logger.Info("forecast summary pushed", zap.String("report", report.ReportID))
	}
}

func summarize(report *models.ForecastReport) notify.Summary {
	summary := notify.Summary{
		ReportID:    report.ReportID,
		FacilityID:  report.FacilityID,
		HorizonDays: report.HorizonDays,
		GeneratedAt: report.GeneratedAt,
		Findings:    len(report.Bottlenecks.Findings),
	}
	for _, est := range report.Throughput {
		summary.TotalBatchesMax += est.BatchesMax
	}
	if len(report.Bottlenecks.Findings) > 0 {
		summary.TopFinding = report.Bottlenecks.Findings[0].Detail
	}
	return summary
}
