package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BlueBatch/internal/domain/models"
	"BlueBatch/pkg/logger"
)

type fakeSource struct {
	mu        sync.Mutex
	refs      []models.UnitRef
	recs      map[string]*models.RawRecord
	transient map[string]int // failures to serve before the record loads
}

func (s *fakeSource) List(ctx context.Context, timeframe, date string) ([]models.UnitRef, error) {
	return s.refs, nil
}

func (s *fakeSource) Load(ctx context.Context, ref models.UnitRef) (*models.RawRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transient[ref.Symbol] > 0 {
		s.transient[ref.Symbol]--
		return nil, models.NewTransientIOError("read "+ref.Path, context.DeadlineExceeded)
	}
	rec, ok := s.recs[ref.Symbol]
	if !ok {
		return nil, models.NewSchemaError([]models.ValidationIssue{{
			Code:    "ERR_MALFORMED_JSON",
			Message: "payload is not valid JSON",
		}})
	}
	return rec, nil
}

type countingMetrics struct {
	mu      sync.Mutex
	units   map[string]int
	errors  map[string]int
	retries int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{units: make(map[string]int), errors: make(map[string]int)}
}

func (m *countingMetrics) RecordUnit(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.units[outcome]++
}

func (m *countingMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}

func (m *countingMetrics) RecordRetry() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retries++
}

func (m *countingMetrics) RecordUnitDuration(seconds float64)  {}
func (m *countingMetrics) RecordBatchDuration(seconds float64) {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	require.NoError(t, err)
	return l
}

func testScheduler(t *testing.T, source *fakeSource, sink *memSink, m *countingMetrics) *BatchScheduler {
	t.Helper()
	v := NewRecordValidator(ValidatorConfig{MissingDataThreshold: 0.5, MinBars: 1})
	proc := NewUnitProcessor(v, NewEmitter(sink), testLogger(t))
	return NewBatchScheduler(SchedulerConfig{
		Workers:          2,
		MaxFilesPerBatch: 500,
		RetryAttempts:    3,
		RetryBaseDelay:   time.Millisecond,
		RetryMaxDelay:    5 * time.Millisecond,
	}, source, proc, m, testLogger(t))
}

func recordFor(symbol string) *models.RawRecord {
	rec := makeRecord(5)
	rec.Symbol = symbol
	return rec
}

func TestRunNoInput(t *testing.T) {
	s := testScheduler(t, &fakeSource{}, newMemSink(), newCountingMetrics())
	_, err := s.Run(context.Background(), "daily", "2024-11-05")
	require.ErrorIs(t, err, ErrNoInput)
}

func TestRunIsolatesUnitFailures(t *testing.T) {
	source := &fakeSource{
		refs: []models.UnitRef{
			{Symbol: "AAPL", Path: "AAPL_daily.json"},
			{Symbol: "BROKEN", Path: "BROKEN_daily.json"},
			{Symbol: "MSFT", Path: "MSFT_daily.json"},
			{Symbol: "NVDA", Path: "NVDA_daily.json"},
			{Symbol: "TSLA", Path: "TSLA_daily.json"},
		},
		recs: map[string]*models.RawRecord{
			"AAPL": recordFor("AAPL"),
			"MSFT": recordFor("MSFT"),
			"NVDA": recordFor("NVDA"),
			"TSLA": recordFor("TSLA"),
		},
	}
	sink := newMemSink()
	m := newCountingMetrics()

	res, err := testScheduler(t, source, sink, m).Run(context.Background(), "daily", "2024-11-05")
	require.NoError(t, err)

	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 4, res.Succeeded)
	assert.Equal(t, 1, res.FailedTerminal)
	assert.Zero(t, res.RetryExhausted)
	assert.False(t, res.TimedOut)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "BROKEN", res.Failures[0].Symbol)
	assert.Equal(t, models.KindSchema, res.Failures[0].Kind)
	assert.Zero(t, res.Failures[0].Retries)

	// four channels per successful symbol
	assert.Len(t, sink.files, 16)
	assert.Equal(t, 1, m.errors[string(models.KindSchema)])
}

func TestRunRetriesTransientFailures(t *testing.T) {
	source := &fakeSource{
		refs:      []models.UnitRef{{Symbol: "AAPL", Path: "AAPL_daily.json"}},
		recs:      map[string]*models.RawRecord{"AAPL": recordFor("AAPL")},
		transient: map[string]int{"AAPL": 2},
	}
	m := newCountingMetrics()

	res, err := testScheduler(t, source, newMemSink(), m).Run(context.Background(), "daily", "2024-11-05")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Succeeded)
	assert.Empty(t, res.Failures)
	assert.Equal(t, 2, m.retries)

	// a unit succeeding on its 3rd attempt reports retry count 2
	require.Len(t, res.Retried, 1)
	assert.Equal(t, models.UnitRetry{Symbol: "AAPL", Retries: 2}, res.Retried[0])
}

func TestRunExhaustsRetries(t *testing.T) {
	source := &fakeSource{
		refs:      []models.UnitRef{{Symbol: "AAPL", Path: "AAPL_daily.json"}},
		recs:      map[string]*models.RawRecord{"AAPL": recordFor("AAPL")},
		transient: map[string]int{"AAPL": 10},
	}
	m := newCountingMetrics()

	res, err := testScheduler(t, source, newMemSink(), m).Run(context.Background(), "daily", "2024-11-05")
	require.NoError(t, err)

	assert.Zero(t, res.Succeeded)
	assert.Equal(t, 1, res.RetryExhausted)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, models.KindTransientIO, res.Failures[0].Kind)
	assert.True(t, res.Failures[0].RetryExhausted)
	assert.Equal(t, 2, res.Failures[0].Retries)
}

func TestRunAbandonsUnitsOnCancel(t *testing.T) {
	source := &fakeSource{
		refs: []models.UnitRef{
			{Symbol: "AAPL", Path: "AAPL_daily.json"},
			{Symbol: "MSFT", Path: "MSFT_daily.json"},
		},
		recs: map[string]*models.RawRecord{
			"AAPL": recordFor("AAPL"),
			"MSFT": recordFor("MSFT"),
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := testScheduler(t, source, newMemSink(), newCountingMetrics()).Run(ctx, "daily", "2024-11-05")
	require.NoError(t, err)

	assert.Equal(t, 2, res.Skipped)
	assert.Zero(t, res.Succeeded)
	assert.True(t, res.TimedOut)
}
