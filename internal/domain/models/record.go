package models

import (
	"encoding/json"
	"time"
)

// RawRecord is one symbol's parsed input payload. It is owned exclusively by
// the unit processing it and discarded once the unit finishes.
type RawRecord struct {
	Symbol   string                 `json:"-"`
	Chart    *Chart                 `json:"chart" validate:"required"`
	Metadata map[string]interface{} `json:"metadata" validate:"required"`
}

// Chart holds the ordered bar list and the sparse blue-dot container.
// The blue-dot container is optional; an absent section means zero signal
// events and renders an all-zero signal series.
type Chart struct {
	Prices   []PriceBar   `json:"prices" validate:"required,dive"`
	BlueDots *BlueDotData `json:"blueDotData"`
}

// PriceBar is one time-stamped OHLCV record with its co-indexed indicator
// values. RLST and BC are pointers so a JSON null is distinguishable from a
// real zero; the missing-data ratio check counts the nils.
type PriceBar struct {
	PriceDate int64    `json:"priceDate" validate:"required,gt=0"`
	Open      float64  `json:"open"`
	High      float64  `json:"high"`
	Low       float64  `json:"low"`
	Close     float64  `json:"close"`
	Volume    float64  `json:"volume" validate:"gte=0"`
	RLST      *int     `json:"rlst" validate:"omitempty,gte=0,lte=99"`
	BC        *float64 `json:"bc" validate:"omitempty,gte=0"`
}

// BlueDotData is the sparse signal-date container. A nil or empty Dates list
// means zero events, which is valid.
type BlueDotData struct {
	Dates []SignalDate `json:"dates"`
}

// SignalDate is one calendar-day event marker. Upstream feeds deliver it
// either as {"blueDotDate": "YYYY-MM-DD"} or as a bare epoch-millisecond
// number; both normalize to a UTC day key. Unparseable entries keep an empty
// Day and surface through the encoder's unmatched-date diagnostic.
type SignalDate struct {
	Day string
}

func (s *SignalDate) UnmarshalJSON(data []byte) error {
	var obj struct {
		BlueDotDate string `json:"blueDotDate"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.BlueDotDate != "" {
		if _, perr := time.Parse("2006-01-02", obj.BlueDotDate); perr == nil {
			s.Day = obj.BlueDotDate
		}
		return nil
	}

	var ms int64
	if err := json.Unmarshal(data, &ms); err == nil && ms > 0 {
		s.Day = time.UnixMilli(ms).UTC().Format("2006-01-02")
		return nil
	}

	// Tolerate unknown shapes; the date simply never matches the axis.
	return nil
}

// DaySet collapses the date list into a lookup set, skipping entries that
// failed to normalize.
func (b *BlueDotData) DaySet() map[string]struct{} {
	if b == nil || len(b.Dates) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(b.Dates))
	for _, d := range b.Dates {
		if d.Day != "" {
			set[d.Day] = struct{}{}
		}
	}
	return set
}
