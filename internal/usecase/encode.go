package usecase

import "BlueBatch/internal/domain/models"

// EncodeSignals maps the sparse signal-date set onto the aligned axis,
// producing a dense binary series of the same length: 1 where the axis
// entry's calendar day is in the set, 0 elsewhere. Set dates with no matching
// axis entry are not errors (signals on non-trading days or outside the
// record's range) but are counted so callers can detect systematic
// misalignment. A nil or empty set yields an all-zero series.
func EncodeSignals(axis models.Axis, dots *models.BlueDotData) (signal []int, unmatched int) {
	signal = make([]int, len(axis))

	set := dots.DaySet()
	if dots != nil {
		// entries that failed to normalize can never match
		for _, d := range dots.Dates {
			if d.Day == "" {
				unmatched++
			}
		}
	}
	if len(set) == 0 {
		return signal, unmatched
	}

	matched := make(map[string]struct{}, len(set))
	for i, entry := range axis {
		if _, ok := set[entry.Day]; ok {
			signal[i] = 1
			matched[entry.Day] = struct{}{}
		}
	}

	unmatched += len(set) - len(matched)
	return signal, unmatched
}
