package di

import (
	"fmt"

	"BlueBatch/internal/domain/repository"
	"BlueBatch/internal/handler/api"
	internalrepo "BlueBatch/internal/repository"
	"BlueBatch/internal/service/health"
	"BlueBatch/internal/usecase"
	"BlueBatch/pkg/config"
	xhttp "BlueBatch/pkg/http"
	applogger "BlueBatch/pkg/logger"
	"BlueBatch/pkg/metrics"
	"BlueBatch/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSource creates the filesystem input source.
func ProvideSource(cfg *config.Config) repository.Source {
	return internalrepo.NewFileSource(cfg.Paths.Input)
}

// ProvideSink creates the filesystem output sink.
func ProvideSink(cfg *config.Config) repository.Sink {
	return internalrepo.NewFileSink(cfg.Paths.Output)
}

// ProvideNotifier creates the webhook notifier, or a no-op when no webhook
// is configured.
func ProvideNotifier(cfg *config.Config) server.Notifier {
	if cfg.Notify.WebhookURL == "" {
		return internalrepo.NoopNotifier{}
	}
	return internalrepo.NewWebhookNotifier(cfg.Notify.WebhookURL)
}

// ProvideHistory creates the run-history store.
func ProvideHistory(cfg *config.Config) *internalrepo.RunHistory {
	return internalrepo.NewRunHistory(cfg.Paths.History)
}

// ProvideValidator creates the record validator with configured thresholds.
func ProvideValidator(cfg *config.Config) *usecase.RecordValidator {
	return usecase.NewRecordValidator(usecase.ValidatorConfig{
		MissingDataThreshold: cfg.Validation.MissingDataThreshold,
		MinBars:              cfg.Validation.MinBars,
		StrictMinBars:        cfg.Validation.StrictMinBars,
	})
}

// ProvideEmitter creates the series emitter.
func ProvideEmitter(sink repository.Sink) *usecase.Emitter {
	return usecase.NewEmitter(sink)
}

// ProvideProcessor creates the per-unit processor.
func ProvideProcessor(v *usecase.RecordValidator, e *usecase.Emitter, l *applogger.Logger) *usecase.UnitProcessor {
	return usecase.NewUnitProcessor(v, e, l)
}

// ProvideScheduler creates the batch scheduler.
func ProvideScheduler(
	cfg *config.Config,
	source repository.Source,
	proc *usecase.UnitProcessor,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.BatchScheduler {
	return usecase.NewBatchScheduler(usecase.SchedulerConfig{
		Workers:          cfg.Batch.Workers,
		MaxFilesPerBatch: cfg.Batch.MaxFilesPerBatch,
		RetryAttempts:    cfg.Retry.MaxAttempts,
		RetryBaseDelay:   cfg.Retry.BaseDelay,
		RetryMaxDelay:    cfg.Retry.MaxDelay,
	}, source, proc, m, l)
}

// ProvideHealthChecker creates the health checker over the configured trees.
func ProvideHealthChecker(cfg *config.Config, history *internalrepo.RunHistory) *health.Checker {
	return health.NewChecker(cfg.Paths.Input, cfg.Paths.Output, history, cfg.Monitor.StaleAfter)
}

// ProvideMonitorHandler creates the monitor HTTP handler.
func ProvideMonitorHandler(l *applogger.Logger, checker *health.Checker, history *internalrepo.RunHistory) xhttp.Handler {
	return api.NewMonitorEchoHandler(l, checker, history)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	scheduler *usecase.BatchScheduler,
	history *internalrepo.RunHistory,
	notifier server.Notifier,
	monitor xhttp.Handler,
) *server.App {
	app := server.New(cfg, l, scheduler, history, notifier)
	app.SetMonitorHandler(monitor)
	return app
}
