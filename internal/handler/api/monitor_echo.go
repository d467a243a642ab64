package api

import (
	"BlueBatch/internal/domain/models"
	"BlueBatch/internal/repository"
	"BlueBatch/internal/service/health"
	xhttp "BlueBatch/pkg/http"
	xlogger "BlueBatch/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MonitorEchoHandler serves the pipeline health and run-history endpoints.
type MonitorEchoHandler struct {
	logger  *xlogger.Logger
	checker *health.Checker
	history *repository.RunHistory
}

func NewMonitorEchoHandler(logger *xlogger.Logger, checker *health.Checker, history *repository.RunHistory) *MonitorEchoHandler {
	return &MonitorEchoHandler{logger: logger, checker: checker, history: history}
}

func (h *MonitorEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	e.GET("/status", h.Status)
}

// Health runs a full check. A critical verdict maps to 503 so external
// probes can alert on the status code alone.
func (h *MonitorEchoHandler) Health(c echo.Context) error {
	report := h.checker.Check()
	if report.Status == models.HealthCritical {
		return xhttp.UnavailableResponse(c, report)
	}
	return xhttp.SuccessResponse(c, report)
}

// Status returns the recorded run history, oldest first.
func (h *MonitorEchoHandler) Status(c echo.Context) error {
	entries, err := h.history.Load()
	if err != nil {
		h.logger.Error("load run history", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, entries)
}
