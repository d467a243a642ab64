package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"BlueBatch/internal/domain/models"
	"BlueBatch/internal/domain/repository"
	"BlueBatch/pkg/logger"
	"BlueBatch/pkg/retry"
)

// ErrNoInput is returned when the input set resolves to zero units; it is a
// run-level failure surfaced before any unit is scheduled.
var ErrNoInput = errors.New("no input files for timeframe/date")

// SchedulerConfig is read-only after construction and shared freely across
// workers.
type SchedulerConfig struct {
	Workers          int
	MaxFilesPerBatch int
	RetryAttempts    int
	RetryBaseDelay   time.Duration
	RetryMaxDelay    time.Duration
}

// BatchScheduler fans the symbol list out across a bounded worker pool,
// applies per-unit retry with backoff to transient failures, isolates unit
// failures from one another, and accumulates the run result. The result
// accumulator is the only shared mutable state; all updates go through mu.
type BatchScheduler struct {
	cfg     SchedulerConfig
	source  repository.Source
	proc    *UnitProcessor
	metrics repository.Metrics
	log     *logger.Logger

	mu     sync.Mutex
	result *models.BatchResult
}

func NewBatchScheduler(
	cfg SchedulerConfig,
	source repository.Source,
	proc *UnitProcessor,
	metrics repository.Metrics,
	log *logger.Logger,
) *BatchScheduler {
	return &BatchScheduler{
		cfg:     cfg,
		source:  source,
		proc:    proc,
		metrics: metrics,
		log:     log,
	}
}

// Run processes every unit of the given timeframe and date. Unit failures
// never abort the batch; run-level failures (unreadable input set, empty
// input set) are returned before any unit is scheduled. Cancellation of ctx
// abandons not-yet-started units without touching already finalized outputs.
func (s *BatchScheduler) Run(ctx context.Context, timeframe, date string) (*models.BatchResult, error) {
	refs, err := s.source.List(ctx, timeframe, date)
	if err != nil {
		return nil, fmt.Errorf("list input units: %w", err)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrNoInput, timeframe, date)
	}

	start := time.Now()
	s.result = &models.BatchResult{
		RunID:     uuid.New().String(),
		Timeframe: timeframe,
		Date:      date,
		StartedAt: start,
		Total:     len(refs),
	}

	s.log.Info("batch started",
		logger.String("run_id", s.result.RunID),
		logger.String("timeframe", timeframe),
		logger.String("date", date),
		logger.Int("units", len(refs)),
		logger.Int("workers", s.cfg.Workers))

	// Process the unit list in bounded slices so a huge symbol set cannot
	// hold the whole run's file handles at once.
	for chunkStart := 0; chunkStart < len(refs); chunkStart += s.cfg.MaxFilesPerBatch {
		end := chunkStart + s.cfg.MaxFilesPerBatch
		if end > len(refs) {
			end = len(refs)
		}

		g := &errgroup.Group{}
		g.SetLimit(s.cfg.Workers)
		for _, ref := range refs[chunkStart:end] {
			ref := ref
			g.Go(func() error {
				s.runUnit(ctx, timeframe, date, ref)
				return nil
			})
		}
		_ = g.Wait()
	}

	s.mu.Lock()
	s.result.Duration = time.Since(start)
	if ctx.Err() != nil {
		s.result.TimedOut = true
	}
	res := s.result
	s.mu.Unlock()

	s.metrics.RecordBatchDuration(res.Duration.Seconds())
	s.log.Info("batch finished",
		logger.String("run_id", res.RunID),
		logger.Int("succeeded", res.Succeeded),
		logger.Int("failed", res.Failed()),
		logger.Duration("elapsed", res.Duration))

	return res, nil
}

// runUnit drives one unit through its lifecycle. Transient I/O failures are
// retried with exponential backoff up to the attempt cap; business-rule
// failures are terminal on first sight.
func (s *BatchScheduler) runUnit(ctx context.Context, timeframe, date string, ref models.UnitRef) {
	unit := &models.BatchUnit{Ref: ref, State: models.UnitPending}

	if ctx.Err() != nil {
		s.recordSkipped(unit)
		return
	}

	unit.State = models.UnitRunning
	start := time.Now()

	attempts := 0
	warnings := 0
	err := retry.Do(ctx, retry.Policy{
		MaxAttempts: s.cfg.RetryAttempts,
		BaseDelay:   s.cfg.RetryBaseDelay,
		MaxDelay:    s.cfg.RetryMaxDelay,
		Classify:    classifyUnitError,
		OnRetry: func(attempt int, wait time.Duration, err error) {
			unit.State = models.UnitFailedRetryable
			s.metrics.RecordRetry()
			s.log.Warn("unit retry scheduled",
				logger.String("symbol", ref.Symbol),
				logger.Int("attempt", attempt),
				logger.Duration("backoff", wait),
				logger.Error(err))
		},
	}, func(ctx context.Context) error {
		attempts++
		rec, lerr := s.source.Load(ctx, ref)
		if lerr != nil {
			return lerr
		}
		var perr error
		warnings, perr = s.proc.Process(ctx, timeframe, date, rec)
		return perr
	})
	unit.Retries = attempts - 1

	s.metrics.RecordUnitDuration(time.Since(start).Seconds())

	if err == nil {
		unit.State = models.UnitSucceeded
		s.recordSucceeded(unit, warnings)
		return
	}

	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		s.recordSkipped(unit)
		return
	}

	var uerr *models.UnitError
	if !errors.As(err, &uerr) {
		uerr = &models.UnitError{Kind: models.KindTransientIO, Cause: err}
	}
	unit.State = models.UnitFailedTerminal
	unit.Err = uerr
	s.recordFailed(unit, uerr)
}

func classifyUnitError(err error) retry.Class {
	var uerr *models.UnitError
	if errors.As(err, &uerr) && uerr.Retryable() {
		return retry.Retryable
	}
	return retry.Fatal
}

func (s *BatchScheduler) recordSucceeded(unit *models.BatchUnit, warnings int) {
	s.metrics.RecordUnit("succeeded")
	s.mu.Lock()
	s.result.Succeeded++
	s.result.Warnings += warnings
	if unit.Retries > 0 {
		s.result.Retried = append(s.result.Retried, models.UnitRetry{
			Symbol:  unit.Ref.Symbol,
			Retries: unit.Retries,
		})
	}
	s.mu.Unlock()

	s.log.Debug("unit succeeded",
		logger.String("symbol", unit.Ref.Symbol),
		logger.Int("retries", unit.Retries))
}

func (s *BatchScheduler) recordFailed(unit *models.BatchUnit, uerr *models.UnitError) {
	exhausted := uerr.Retryable()
	s.metrics.RecordUnit("failed")
	s.metrics.RecordError(string(uerr.Kind))

	s.mu.Lock()
	if exhausted {
		s.result.RetryExhausted++
	} else {
		s.result.FailedTerminal++
	}
	s.result.Failures = append(s.result.Failures, models.UnitFailure{
		Symbol:         unit.Ref.Symbol,
		Kind:           uerr.Kind,
		Message:        uerr.Error(),
		Retries:        unit.Retries,
		RetryExhausted: exhausted,
	})
	s.mu.Unlock()

	s.log.Error("unit failed",
		logger.String("symbol", unit.Ref.Symbol),
		logger.String("kind", string(uerr.Kind)),
		logger.Int("retries", unit.Retries),
		logger.Error(uerr))
}

func (s *BatchScheduler) recordSkipped(unit *models.BatchUnit) {
	s.metrics.RecordUnit("skipped")
	s.mu.Lock()
	s.result.Skipped++
	s.mu.Unlock()

	s.log.Warn("unit abandoned by run timeout", logger.String("symbol", unit.Ref.Symbol))
}
