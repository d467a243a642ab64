package usecase

import (
	"context"

	"BlueBatch/internal/domain/models"
	"BlueBatch/pkg/logger"
)

// UnitProcessor drives one unit through the fixed stage sequence
// validate -> align -> encode -> emit. All stages but emission are pure
// computation; the unit owns its record exclusively for the duration.
type UnitProcessor struct {
	validator *RecordValidator
	emitter   *Emitter
	log       *logger.Logger
}

func NewUnitProcessor(validator *RecordValidator, emitter *Emitter, log *logger.Logger) *UnitProcessor {
	return &UnitProcessor{validator: validator, emitter: emitter, log: log}
}

// Process transforms one validated record into its four output units.
// The returned warning count covers non-blocking quality findings.
func (p *UnitProcessor) Process(ctx context.Context, timeframe, date string, rec *models.RawRecord) (int, error) {
	report, verr := p.validator.Validate(rec)
	if verr != nil {
		return 0, verr
	}
	for _, w := range report.Warnings {
		p.log.Warn("quality warning",
			logger.String("symbol", rec.Symbol),
			logger.String("field", w.Field),
			logger.String("detail", w.Message))
	}

	series, aerr := Align(rec)
	if aerr != nil {
		// invariant violation: bad data survived validation, log loudly
		p.log.Error("alignment invariant violated",
			logger.String("symbol", rec.Symbol),
			logger.Error(aerr))
		return 0, aerr
	}

	signal, unmatchedDates := EncodeSignals(series.Axis, rec.Chart.BlueDots)
	series.Signal = signal
	if unmatchedDates > 0 {
		p.log.Debug("signal dates without matching bars",
			logger.String("symbol", rec.Symbol),
			logger.Int("unmatched", unmatchedDates))
	}

	if err := p.emitter.Emit(ctx, timeframe, date, series); err != nil {
		return len(report.Warnings), err
	}

	return len(report.Warnings), nil
}
