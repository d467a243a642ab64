package models

import "time"

// UnitState is the lifecycle of one batch unit.
type UnitState string

const (
	UnitPending         UnitState = "pending"
	UnitRunning         UnitState = "running"
	UnitSucceeded       UnitState = "succeeded"
	UnitFailedRetryable UnitState = "failed_retryable"
	UnitFailedTerminal  UnitState = "failed_terminal"
)

// UnitRef locates one symbol's input file before any bytes are read.
type UnitRef struct {
	Symbol string
	Path   string
}

// BatchUnit is the smallest schedulable piece of work: all data for one
// symbol plus its lifecycle bookkeeping. Retries counts attempts beyond the
// first.
type BatchUnit struct {
	Ref     UnitRef
	State   UnitState
	Retries int
	Err     *UnitError
}

// UnitRetry names a unit that succeeded only after backoff retries, with the
// number of attempts beyond the first.
type UnitRetry struct {
	Symbol  string `json:"symbol"`
	Retries int    `json:"retries"`
}

// UnitFailure is the per-symbol entry in the run's error list.
type UnitFailure struct {
	Symbol         string    `json:"symbol"`
	Kind           ErrorKind `json:"kind"`
	Message        string    `json:"message"`
	Retries        int       `json:"retries"`
	RetryExhausted bool      `json:"retry_exhausted"`
}

// BatchResult is the aggregate snapshot of one run. It is mutated only by the
// scheduler under its accumulation lock and read-only once finalized.
type BatchResult struct {
	RunID     string        `json:"run_id"`
	Timeframe string        `json:"timeframe"`
	Date      string        `json:"date"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`

	Total          int  `json:"total"`
	Succeeded      int  `json:"succeeded"`
	FailedTerminal int  `json:"failed_terminal"`
	RetryExhausted int  `json:"retry_exhausted"`
	Skipped        int  `json:"skipped"`
	Warnings       int  `json:"warnings"`
	TimedOut       bool `json:"timed_out"`

	Retried  []UnitRetry   `json:"retried,omitempty"`
	Failures []UnitFailure `json:"failures,omitempty"`
}

// Failed is the total number of units that did not succeed, including units
// abandoned by a run-level timeout.
func (r *BatchResult) Failed() int {
	return r.FailedTerminal + r.RetryExhausted + r.Skipped
}

// AllSucceeded reports a fully clean run.
func (r *BatchResult) AllSucceeded() bool {
	return !r.TimedOut && r.Succeeded == r.Total
}
