package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oumarkante/harvestplan/internal/domain/models"
	"github.com/oumarkante/harvestplan/internal/forecast"
	"github.com/oumarkante/harvestplan/internal/forecastlog"
	"github.com/oumarkante/harvestplan/internal/repository/mongodb"
)

const defaultLogLimit = 50

// ForecastHandler exposes the forecasting engine and its audit log over HTTP.
type ForecastHandler struct {
	engine  *forecast.Engine
	log     *forecastlog.Ring
	reports mongodb.Repository
	logger  *zap.Logger
}

// NewForecastHandler constructs the HTTP handler adapter. reports may be nil
// when persistence is not wired.
func NewForecastHandler(engine *forecast.Engine, log *forecastlog.Ring, reports mongodb.Repository, logger *zap.Logger) *ForecastHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ForecastHandler{engine: engine, log: log, reports: reports, logger: logger}
}

// Build runs a forecast for the posted input and returns the full report.
func (h *ForecastHandler) Build(c *gin.Context) {
	var input models.ForecastInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid forecast payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	report, err := h.engine.BuildForecast(c.Request.Context(), input)
	if err != nil {
		var profileErr *forecast.InvalidProfileError
		if errors.As(err, &profileErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": profileErr.Error(),
				"field": profileErr.Field,
			})
			return
		}
		h.logger.Error("forecast build failed", zap.String("facility", input.FacilityID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build forecast"})
		return
	}

	// Persistence is best-effort; the caller gets the report either way.
	if h.reports != nil {
		if err := h.reports.SaveReport(c.Request.Context(), *report); err != nil {
			h.logger.Error("failed to persist forecast report", zap.String("report", report.ReportID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, report)
}

// RecentLog returns the newest forecast log entries, newest first.
func (h *ForecastHandler) RecentLog(c *gin.Context) {
	limit := defaultLogLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	c.JSON(http.StatusOK, gin.H{"entries": h.log.Recent(limit)})
}

// LogByCategory returns every retained entry of one category, newest first.
func (h *ForecastHandler) LogByCategory(c *gin.Context) {
	category := c.Param("category")
	c.JSON(http.StatusOK, gin.H{"entries": h.log.Filter(category)})
}
