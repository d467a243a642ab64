package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BlueBatch/internal/domain/models"
)

type memSink struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemSink() *memSink {
	return &memSink{files: make(map[string][]byte)}
}

func (s *memSink) WriteUnit(ctx context.Context, timeframe, date, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.files[timeframe+"/"+date+"/"+name] = cp
	return nil
}

type failSink struct{}

func (failSink) WriteUnit(ctx context.Context, timeframe, date, name string, data []byte) error {
	return errors.New("disk full")
}

func sampleSeries() *models.SymbolSeries {
	return &models.SymbolSeries{
		Symbol: "AAPL",
		Axis: models.Axis{
			{EpochMS: 1730678400000, Token: "20241104T", Day: "2024-11-04"},
			{EpochMS: 1730764800000, Token: "20241105T", Day: "2024-11-05"},
		},
		Price: []models.PriceRow{
			{Open: 10.1, High: 12.5, Low: 9.8, Close: 11.2, Volume: 150000},
			{Open: 11.2, High: 11.9, Low: 10.7, Close: 11.5, Volume: 98000},
		},
		Rating:        []float64{55, 0},
		Consolidation: []float64{10.5, 0},
		Signal:        []int{1, 0},
	}
}

func TestEmitWritesAllChannels(t *testing.T) {
	sink := newMemSink()
	err := NewEmitter(sink).Emit(context.Background(), "daily", "2024-11-05", sampleSeries())
	require.NoError(t, err)

	require.Len(t, sink.files, 4)
	assert.Equal(t,
		"20241104T,10.10,12.50,9.80,11.20,150000\n20241105T,11.20,11.90,10.70,11.50,98000\n",
		string(sink.files["daily/2024-11-05/AAPL_PRICE_DATA.csv"]))
	assert.Equal(t,
		"20241104T,0,1000,0,55,0\n20241105T,0,1000,0,0,0\n",
		string(sink.files["daily/2024-11-05/AAPL_RLST_RATING.csv"]))
	assert.Equal(t,
		"20241104T,0,1000,0,10.50,0\n20241105T,0,1000,0,0.00,0\n",
		string(sink.files["daily/2024-11-05/AAPL_BC_INDICATOR.csv"]))
	assert.Equal(t,
		"20241104T,0,1000,0,1,0\n20241105T,0,1000,0,0,0\n",
		string(sink.files["daily/2024-11-05/AAPL_BLUE_DOTS.csv"]))
}

func TestEmitIsDeterministic(t *testing.T) {
	first := newMemSink()
	second := newMemSink()
	e1 := NewEmitter(first)
	e2 := NewEmitter(second)

	require.NoError(t, e1.Emit(context.Background(), "daily", "2024-11-05", sampleSeries()))
	require.NoError(t, e2.Emit(context.Background(), "daily", "2024-11-05", sampleSeries()))

	assert.Equal(t, first.files, second.files)
}

func TestEmitSinkFailureIsTransient(t *testing.T) {
	err := NewEmitter(failSink{}).Emit(context.Background(), "daily", "2024-11-05", sampleSeries())
	require.Error(t, err)

	var uerr *models.UnitError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, models.KindTransientIO, uerr.Kind)
	assert.True(t, uerr.Retryable())
}
