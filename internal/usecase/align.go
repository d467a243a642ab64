package usecase

import (
	"BlueBatch/internal/domain/models"
	"BlueBatch/pkg/util"
)

// Align derives the shared timestamp axis from a validated record and carries
// the three continuous channels over it. Rating and consolidation arrive
// co-indexed with the bars, so the real work is axis derivation and timestamp
// normalization; a null indicator value renders as 0, matching the upstream
// chart convention.
//
// A timestamp collision past this point means the validator approved bad
// data, so it is reported as an alignment invariant violation rather than a
// validation failure.
func Align(rec *models.RawRecord) (*models.SymbolSeries, *models.UnitError) {
	bars := rec.Chart.Prices

	s := &models.SymbolSeries{
		Symbol:        rec.Symbol,
		Axis:          make(models.Axis, 0, len(bars)),
		Price:         make([]models.PriceRow, 0, len(bars)),
		Rating:        make([]float64, 0, len(bars)),
		Consolidation: make([]float64, 0, len(bars)),
	}

	var prev int64
	for i, bar := range bars {
		if i > 0 && bar.PriceDate <= prev {
			return nil, models.NewAlignmentError(
				"timestamp collision survived validation: index %d (%d after %d)", i, bar.PriceDate, prev)
		}
		prev = bar.PriceDate

		s.Axis = append(s.Axis, models.AxisEntry{
			EpochMS: bar.PriceDate,
			Token:   util.ChartToken(bar.PriceDate),
			Day:     util.DayKey(bar.PriceDate),
		})
		s.Price = append(s.Price, models.PriceRow{
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: bar.Volume,
		})

		rating := 0.0
		if bar.RLST != nil {
			rating = float64(*bar.RLST)
		}
		s.Rating = append(s.Rating, rating)

		bc := 0.0
		if bar.BC != nil {
			bc = *bar.BC
		}
		s.Consolidation = append(s.Consolidation, bc)
	}

	return s, nil
}
