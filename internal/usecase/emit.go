package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"BlueBatch/internal/domain/models"
	"BlueBatch/internal/domain/repository"
)

// Indicator rows pack a single value into the price column layout; the other
// columns hold fixed sentinel placeholders the chart consumer expects.
const (
	sentinelOpen   = "0"
	sentinelHigh   = "1000"
	sentinelLow    = "0"
	sentinelVolume = "0"
)

// Emitter serializes the four aligned series of one symbol into the fixed
// six-column layout and hands each unit to the sink. Formatting is fixed
// decimal with no locale separators, so reruns on the same input are
// byte-identical.
type Emitter struct {
	sink repository.Sink
}

func NewEmitter(sink repository.Sink) *Emitter {
	return &Emitter{sink: sink}
}

// Emit writes one output unit per channel. Sink failures are transient I/O
// errors eligible for retry.
func (e *Emitter) Emit(ctx context.Context, timeframe, date string, s *models.SymbolSeries) error {
	for _, ch := range models.Channels() {
		name := fmt.Sprintf("%s_%s.csv", s.Symbol, ch)
		if err := e.sink.WriteUnit(ctx, timeframe, date, name, renderChannel(s, ch)); err != nil {
			return models.NewTransientIOError("write "+name, err)
		}
	}
	return nil
}

func renderChannel(s *models.SymbolSeries, ch models.Channel) []byte {
	var buf bytes.Buffer
	for i, entry := range s.Axis {
		buf.WriteString(entry.Token)
		buf.WriteByte(',')
		switch ch {
		case models.ChannelPrice:
			p := s.Price[i]
			buf.WriteString(formatPrice(p.Open))
			buf.WriteByte(',')
			buf.WriteString(formatPrice(p.High))
			buf.WriteByte(',')
			buf.WriteString(formatPrice(p.Low))
			buf.WriteByte(',')
			buf.WriteString(formatPrice(p.Close))
			buf.WriteByte(',')
			buf.WriteString(formatWhole(p.Volume))
		case models.ChannelRating:
			writeIndicatorRow(&buf, formatWhole(s.Rating[i]))
		case models.ChannelConsolidation:
			writeIndicatorRow(&buf, formatPrice(s.Consolidation[i]))
		case models.ChannelSignal:
			writeIndicatorRow(&buf, strconv.Itoa(s.Signal[i]))
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func writeIndicatorRow(buf *bytes.Buffer, value string) {
	buf.WriteString(sentinelOpen)
	buf.WriteByte(',')
	buf.WriteString(sentinelHigh)
	buf.WriteByte(',')
	buf.WriteString(sentinelLow)
	buf.WriteByte(',')
	buf.WriteString(value)
	buf.WriteByte(',')
	buf.WriteString(sentinelVolume)
}

// formatPrice renders with two fixed decimals.
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatWhole renders volumes and ratings without a fractional part.
func formatWhole(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}
