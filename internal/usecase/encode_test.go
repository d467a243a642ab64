package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"BlueBatch/internal/domain/models"
)

func axisFor(days ...string) models.Axis {
	axis := make(models.Axis, len(days))
	for i, d := range days {
		axis[i] = models.AxisEntry{Day: d}
	}
	return axis
}

func TestEncodeSignalsMatchesByDay(t *testing.T) {
	axis := axisFor("2024-11-08", "2024-11-11")
	dots := &models.BlueDotData{Dates: []models.SignalDate{
		{Day: "2024-11-08"},
		{Day: "2024-11-09"},
	}}

	signal, unmatched := EncodeSignals(axis, dots)
	assert.Equal(t, []int{1, 0}, signal)
	assert.Equal(t, 1, unmatched)
}

func TestEncodeSignalsEmptySet(t *testing.T) {
	axis := axisFor("2024-11-08", "2024-11-11", "2024-11-12")

	signal, unmatched := EncodeSignals(axis, nil)
	assert.Equal(t, []int{0, 0, 0}, signal)
	assert.Zero(t, unmatched)

	signal, unmatched = EncodeSignals(axis, &models.BlueDotData{})
	assert.Equal(t, []int{0, 0, 0}, signal)
	assert.Zero(t, unmatched)
}

func TestEncodeSignalsDuplicateDates(t *testing.T) {
	axis := axisFor("2024-11-08")
	dots := &models.BlueDotData{Dates: []models.SignalDate{
		{Day: "2024-11-08"},
		{Day: "2024-11-08"},
	}}

	signal, unmatched := EncodeSignals(axis, dots)
	assert.Equal(t, []int{1}, signal)
	assert.Zero(t, unmatched)
}

func TestEncodeSignalsUnparsedDates(t *testing.T) {
	axis := axisFor("2024-11-08")
	dots := &models.BlueDotData{Dates: []models.SignalDate{
		{Day: ""},
		{Day: "2024-11-08"},
	}}

	signal, unmatched := EncodeSignals(axis, dots)
	assert.Equal(t, []int{1}, signal)
	assert.Equal(t, 1, unmatched)
}
