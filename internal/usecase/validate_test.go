package usecase

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BlueBatch/internal/domain/models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func makeBars(n int) []models.PriceBar {
	base := time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC)
	bars := make([]models.PriceBar, n)
	for i := range bars {
		bars[i] = models.PriceBar{
			PriceDate: base.AddDate(0, 0, i).UnixMilli(),
			Open:      10.1,
			High:      12.5,
			Low:       9.8,
			Close:     11.2,
			Volume:    150000,
			RLST:      intPtr(55),
			BC:        floatPtr(10.5),
		}
	}
	return bars
}

func makeRecord(n int) *models.RawRecord {
	return &models.RawRecord{
		Symbol: "AAPL",
		Chart: &models.Chart{
			Prices:   makeBars(n),
			BlueDots: &models.BlueDotData{},
		},
		Metadata: map[string]interface{}{"source": "test"},
	}
}

func defaultValidator() *RecordValidator {
	return NewRecordValidator(ValidatorConfig{
		MissingDataThreshold: 0.1,
		MinBars:              30,
	})
}

func TestValidateAccepts(t *testing.T) {
	report, verr := defaultValidator().Validate(makeRecord(40))
	require.Nil(t, verr)
	assert.Empty(t, report.Warnings)
}

func TestValidateMissingChart(t *testing.T) {
	rec := makeRecord(40)
	rec.Chart = nil

	_, verr := defaultValidator().Validate(rec)
	require.NotNil(t, verr)
	assert.Equal(t, models.KindSchema, verr.Kind)
	require.NotEmpty(t, verr.Issues)
	assert.Contains(t, verr.Issues[0].Field, "Chart")
}

func TestValidateMissingBlueDotsAccepted(t *testing.T) {
	rec := makeRecord(40)
	rec.Chart.BlueDots = nil

	report, verr := defaultValidator().Validate(rec)
	require.Nil(t, verr)
	assert.Empty(t, report.Warnings)
}

func TestValidateEmptyBars(t *testing.T) {
	rec := makeRecord(40)
	rec.Chart.Prices = nil

	_, verr := defaultValidator().Validate(rec)
	require.NotNil(t, verr)
	assert.Equal(t, models.KindSchema, verr.Kind)
}

func TestValidateRatingOutOfRange(t *testing.T) {
	rec := makeRecord(40)
	rec.Chart.Prices[3].RLST = intPtr(150)

	_, verr := defaultValidator().Validate(rec)
	require.NotNil(t, verr)
	assert.Equal(t, models.KindSchema, verr.Kind)
	require.Len(t, verr.Issues, 1)
	assert.Contains(t, verr.Issues[0].Field, "RLST")
	assert.Equal(t, "ERR_LTE", verr.Issues[0].Code)
}

func TestValidateNonFiniteValue(t *testing.T) {
	rec := makeRecord(40)
	rec.Chart.Prices[0].Open = math.NaN()

	_, verr := defaultValidator().Validate(rec)
	require.NotNil(t, verr)
	assert.Equal(t, models.KindSchema, verr.Kind)
	assert.Equal(t, "ERR_NUMERIC_RANGE", verr.Issues[0].Code)
}

func TestValidateCollectsEveryIssue(t *testing.T) {
	rec := makeRecord(40)
	rec.Chart.Prices[1].RLST = intPtr(150)
	rec.Chart.Prices[2].BC = floatPtr(-1)

	_, verr := defaultValidator().Validate(rec)
	require.NotNil(t, verr)
	assert.Equal(t, models.KindSchema, verr.Kind)
	assert.Len(t, verr.Issues, 2)
}

func TestValidateDuplicateTimestamp(t *testing.T) {
	rec := makeRecord(40)
	rec.Chart.Prices[1].PriceDate = rec.Chart.Prices[0].PriceDate

	_, verr := defaultValidator().Validate(rec)
	require.NotNil(t, verr)
	assert.Equal(t, models.KindOrdering, verr.Kind)
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, "chart.prices[1].priceDate", verr.Issues[0].Field)
}

func TestValidateBackwardsTimestamp(t *testing.T) {
	rec := makeRecord(40)
	rec.Chart.Prices[5].PriceDate = rec.Chart.Prices[2].PriceDate

	_, verr := defaultValidator().Validate(rec)
	require.NotNil(t, verr)
	assert.Equal(t, models.KindOrdering, verr.Kind)
}

func TestValidateMissingDataRatio(t *testing.T) {
	rec := makeRecord(40)
	for i := 0; i < 8; i++ {
		rec.Chart.Prices[i].RLST = nil
	}

	_, verr := defaultValidator().Validate(rec)
	require.NotNil(t, verr)
	assert.Equal(t, models.KindQuality, verr.Kind)
	assert.Equal(t, "ERR_MISSING_DATA", verr.Issues[0].Code)
}

func TestValidateMissingDataUnderThreshold(t *testing.T) {
	rec := makeRecord(40)
	rec.Chart.Prices[0].BC = nil

	report, verr := defaultValidator().Validate(rec)
	require.Nil(t, verr)
	assert.Empty(t, report.Warnings)
}

func TestValidateMinBarsWarning(t *testing.T) {
	report, verr := defaultValidator().Validate(makeRecord(10))
	require.Nil(t, verr)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "ERR_MIN_BARS", report.Warnings[0].Code)
}

func TestValidateMinBarsStrict(t *testing.T) {
	v := NewRecordValidator(ValidatorConfig{
		MissingDataThreshold: 0.1,
		MinBars:              30,
		StrictMinBars:        true,
	})

	_, verr := v.Validate(makeRecord(10))
	require.NotNil(t, verr)
	assert.Equal(t, models.KindQuality, verr.Kind)
	assert.Equal(t, "ERR_MIN_BARS", verr.Issues[0].Code)
}
