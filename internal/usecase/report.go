package usecase

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"BlueBatch/internal/domain/models"
)

// Summary is the human/machine-readable view of a finalized run. Building it
// has no side effects; callers inspect it rather than relying on process exit
// status for fine-grained diagnosis.
type Summary struct {
	RunID          string               `json:"run_id"`
	Timeframe      string               `json:"timeframe"`
	Date           string               `json:"date"`
	Timestamp      time.Time            `json:"timestamp"`
	Total          int                  `json:"total"`
	Succeeded      int                  `json:"succeeded"`
	FailedTerminal int                  `json:"failed_terminal"`
	RetryExhausted int                  `json:"retry_exhausted"`
	Skipped        int                  `json:"skipped"`
	Warnings       int                  `json:"warnings"`
	SuccessRate    float64              `json:"success_rate"`
	Duration       time.Duration        `json:"duration"`
	TimedOut       bool                 `json:"timed_out"`
	Retried        []models.UnitRetry   `json:"retried,omitempty"`
	Failures       []models.UnitFailure `json:"failures,omitempty"`
}

// BuildSummary folds a finalized BatchResult into a Summary with the retry
// and failure lists ordered by symbol.
func BuildSummary(res *models.BatchResult) Summary {
	failures := make([]models.UnitFailure, len(res.Failures))
	copy(failures, res.Failures)
	sort.Slice(failures, func(i, j int) bool { return failures[i].Symbol < failures[j].Symbol })

	retried := make([]models.UnitRetry, len(res.Retried))
	copy(retried, res.Retried)
	sort.Slice(retried, func(i, j int) bool { return retried[i].Symbol < retried[j].Symbol })

	rate := 0.0
	if res.Total > 0 {
		rate = float64(res.Succeeded) / float64(res.Total) * 100
	}

	return Summary{
		RunID:          res.RunID,
		Timeframe:      res.Timeframe,
		Date:           res.Date,
		Timestamp:      res.StartedAt,
		Total:          res.Total,
		Succeeded:      res.Succeeded,
		FailedTerminal: res.FailedTerminal,
		RetryExhausted: res.RetryExhausted,
		Skipped:        res.Skipped,
		Warnings:       res.Warnings,
		SuccessRate:    rate,
		Duration:       res.Duration,
		TimedOut:       res.TimedOut,
		Retried:        retried,
		Failures:       failures,
	}
}

// Text renders the summary for logs and notifications.
func (s Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "batch %s %s/%s: %d/%d succeeded (%.1f%%) in %s",
		s.RunID, s.Timeframe, s.Date, s.Succeeded, s.Total, s.SuccessRate, s.Duration.Round(time.Millisecond))
	if s.TimedOut {
		b.WriteString(" [timed out]")
	}
	if s.FailedTerminal > 0 || s.RetryExhausted > 0 || s.Skipped > 0 {
		fmt.Fprintf(&b, "; failed: %d terminal, %d retry-exhausted, %d abandoned",
			s.FailedTerminal, s.RetryExhausted, s.Skipped)
	}
	for _, r := range s.Retried {
		fmt.Fprintf(&b, "\n  %s: succeeded with retry count %d", r.Symbol, r.Retries)
	}
	for _, f := range s.Failures {
		fmt.Fprintf(&b, "\n  %s: [%s] %s", f.Symbol, f.Kind, f.Message)
	}
	return b.String()
}

// ExitCode maps the run outcome to the process exit status: 0 when every
// unit succeeded, 2 when some units failed but others made it, 1 when
// nothing succeeded or the run timed out.
func (s Summary) ExitCode() int {
	switch {
	case s.TimedOut || s.Succeeded == 0:
		return 1
	case s.Succeeded < s.Total:
		return 2
	default:
		return 0
	}
}
