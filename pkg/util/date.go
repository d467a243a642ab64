package util

import (
    "time"
)

// ChartToken converts an epoch-millisecond timestamp to the fixed chart
// timestamp token (e.g. 20241108T). The token is rendered in UTC so the same
// input always produces the same bytes regardless of host timezone.
func ChartToken(epochMS int64) string {
    return time.UnixMilli(epochMS).UTC().Format("20060102") + "T"
}

// DayKey converts an epoch-millisecond timestamp to its UTC calendar-day key
// (e.g. 2024-11-08), the form signal dates are matched against.
func DayKey(epochMS int64) string {
    return time.UnixMilli(epochMS).UTC().Format("2006-01-02")
}
