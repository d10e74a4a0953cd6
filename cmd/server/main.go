package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/oumarkante/harvestplan/internal/config"
	"github.com/oumarkante/harvestplan/internal/forecast"
	"github.com/oumarkante/harvestplan/internal/forecastlog"
	"github.com/oumarkante/harvestplan/internal/repository/mongodb"
	"github.com/oumarkante/harvestplan/internal/repository/sheets"
	"github.com/oumarkante/harvestplan/internal/scheduler"
	"github.com/oumarkante/harvestplan/internal/server/handlers"
	"github.com/oumarkante/harvestplan/internal/server/router"
	"github.com/oumarkante/harvestplan/pkg/clients/notify"
	"github.com/oumarkante/harvestplan/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	logSink := forecastlog.NewRing(cfg.Forecast.LogCapacity, mongoRepo, baseLogger.Named("forecastlog"))

	policy := forecast.Policy{
		MinThroughputRatio: cfg.Forecast.MinThroughputRatio,
		MinYieldRatio:      cfg.Forecast.MinYieldRatio,
	}
	engine := forecast.NewEngine(policy, logSink, baseLogger.Named("svc.forecast"))

	forecastHandler := handlers.NewForecastHandler(engine, logSink, mongoRepo, baseLogger.Named("handlers.forecast"))
	ginEngine := router.New(forecastHandler, baseLogger.Named("router"))

	// The baseline scheduler only runs when a Sheets source is configured.
	if cfg.SchedulerEnabled() {
		baselineRepo, err := sheets.NewGoogleSheetBaseline(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init baseline repository", zap.Error(err))
		}

		var notifier notify.Client
		if cfg.Notify.WebhookURL != "" {
			notifier = notify.NewWebhookClient(cfg.Notify.WebhookURL)
			baseLogger.Info("forecast summary webhook enabled")
		} else {
			baseLogger.Warn("no webhook configured, scheduled forecasts will only be persisted")
		}

		sched := scheduler.NewScheduler(*cfg, baselineRepo, engine, mongoRepo, notifier, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	} else {
		baseLogger.Warn("baseline source not configured, scheduled forecasts disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      ginEngine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
