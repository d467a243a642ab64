package server

import (
	"context"
	"errors"
	"time"

	"BlueBatch/internal/domain/models"
	domrepo "BlueBatch/internal/domain/repository"
	"BlueBatch/internal/repository"
	"BlueBatch/internal/usecase"
	"BlueBatch/pkg/config"
	xhttp "BlueBatch/pkg/http"
	applogger "BlueBatch/pkg/logger"
)

// Notifier is the outbound alert channel plus the log collector's publish
// side, so run summaries and aggregated error logs share one destination.
type Notifier interface {
	domrepo.Notifier
	applogger.Publisher
}

// App encapsulates one batch invocation: run the scheduler under the run
// timeout, serve the monitor endpoints while the run is in flight, record
// the run in history and notify the webhook.
type App struct {
	cfg       *config.Config
	logger    *applogger.Logger
	scheduler *usecase.BatchScheduler
	history   *repository.RunHistory
	notifier  Notifier

	monitorHandler xhttp.Handler
	monitorServer  *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	scheduler *usecase.BatchScheduler,
	history *repository.RunHistory,
	notifier Notifier,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		scheduler: scheduler,
		history:   history,
		notifier:  notifier,
	}
}

// SetMonitorHandler allows DI to inject the monitor HTTP handler.
func (a *App) SetMonitorHandler(h xhttp.Handler) { a.monitorHandler = h }

// Run executes one batch for the given timeframe and date and returns its
// summary. A run-level failure (nothing to process, unreadable input set)
// returns an error instead of a summary.
func (a *App) Run(ctx context.Context, timeframe, date string) (*usecase.Summary, error) {
	if a.cfg.Notify.WebhookURL != "" {
		a.logger.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Subject:        "batch error digest",
			Publisher:      a.notifier,
		})
		defer a.logger.RemoveCollector()
	}

	if a.cfg.Monitor.Enabled {
		a.monitorServer = xhttp.NewServer(a.monitorHandler, xhttp.WithPort(a.cfg.Monitor.Port))
		if err := a.monitorServer.Start(); err != nil {
			a.logger.Error("monitor server start error", applogger.Error(err))
		}
		defer a.stopMonitor()
	}

	runCtx, cancel := context.WithTimeout(ctx, a.cfg.Batch.RunTimeout)
	defer cancel()

	res, err := a.scheduler.Run(runCtx, timeframe, date)
	if err != nil {
		if errors.Is(err, usecase.ErrNoInput) {
			a.notify(ctx, models.Alert{
				Level:   models.AlertCritical,
				Title:   "batch run aborted",
				Message: err.Error(),
				Details: map[string]interface{}{"timeframe": timeframe, "date": date},
			})
		}
		return nil, err
	}

	summary := usecase.BuildSummary(res)
	a.logger.Info("run summary", applogger.String("summary", summary.Text()))

	if err := a.history.Append(repository.HistoryEntry{
		RunID:     summary.RunID,
		Timeframe: summary.Timeframe,
		Date:      summary.Date,
		Timestamp: time.Now().UTC(),
		Total:     summary.Total,
		Succeeded: summary.Succeeded,
		Failed:    summary.FailedTerminal + summary.RetryExhausted + summary.Skipped,
		TimedOut:  summary.TimedOut,
	}); err != nil {
		a.logger.Warn("record run history", applogger.Error(err))
	}

	a.notify(ctx, summaryAlert(summary))
	return &summary, nil
}

func (a *App) stopMonitor() {
	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.monitorServer.Stop(stopCtx); err != nil {
		a.logger.Warn("monitor shutdown error", applogger.Error(err))
	}
}

func (a *App) notify(ctx context.Context, alert models.Alert) {
	if err := a.notifier.Notify(ctx, alert); err != nil {
		a.logger.Warn("notify webhook", applogger.Error(err))
	}
}

func summaryAlert(s usecase.Summary) models.Alert {
	level := models.AlertInfo
	switch s.ExitCode() {
	case 1:
		level = models.AlertCritical
	case 2:
		level = models.AlertWarning
	}
	return models.Alert{
		Level:   level,
		Title:   "batch run finished",
		Message: s.Text(),
		Details: map[string]interface{}{
			"run_id":       s.RunID,
			"timeframe":    s.Timeframe,
			"date":         s.Date,
			"succeeded":    s.Succeeded,
			"total":        s.Total,
			"success_rate": s.SuccessRate,
		},
	}
}
