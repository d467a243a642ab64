package models

import (
	"fmt"
	"strings"
)

// ErrorKind classifies unit-level failures. Schema, ordering, quality and
// alignment errors are terminal; transient I/O errors are retryable until the
// attempt cap converts them to terminal.
type ErrorKind string

const (
	KindSchema             ErrorKind = "schema"
	KindOrdering           ErrorKind = "ordering"
	KindQuality            ErrorKind = "quality"
	KindAlignmentInvariant ErrorKind = "alignment_invariant"
	KindTransientIO        ErrorKind = "transient_io"
)

// ValidationIssue names one violated constraint.
type ValidationIssue struct {
	Code    string                 `json:"code,omitempty"`
	Field   string                 `json:"field,omitempty"`
	Message string                 `json:"message,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// UnitError is the failure of one processing unit. Issues is populated for
// validation-class errors and lists every violated constraint, not just the
// first.
type UnitError struct {
	Kind   ErrorKind
	Issues []ValidationIssue
	Cause  error
}

func (e *UnitError) Error() string {
	if len(e.Issues) > 0 {
		msgs := make([]string, 0, len(e.Issues))
		for _, is := range e.Issues {
			msgs = append(msgs, is.Message)
		}
		return fmt.Sprintf("%s: %s", e.Kind, strings.Join(msgs, "; "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	}
	return string(e.Kind)
}

func (e *UnitError) Unwrap() error { return e.Cause }

// Retryable reports whether the failure originated from an external
// collaborator and is eligible for backoff retry.
func (e *UnitError) Retryable() bool { return e.Kind == KindTransientIO }

// NewSchemaError builds a terminal schema failure from collected issues.
func NewSchemaError(issues []ValidationIssue) *UnitError {
	return &UnitError{Kind: KindSchema, Issues: issues}
}

// NewOrderingError reports a non-monotonic or duplicate bar timestamp at the
// given index.
func NewOrderingError(index int, prev, cur int64) *UnitError {
	return &UnitError{Kind: KindOrdering, Issues: []ValidationIssue{{
		Code:    "ERR_TIMESTAMP_ORDER",
		Field:   fmt.Sprintf("chart.prices[%d].priceDate", index),
		Message: fmt.Sprintf("bar timestamp at index %d not strictly increasing (%d after %d)", index, cur, prev),
		Params:  map[string]interface{}{"index": index, "previous": prev, "current": cur},
	}}}
}

// NewQualityError reports a data-quality threshold breach.
func NewQualityError(issues []ValidationIssue) *UnitError {
	return &UnitError{Kind: KindQuality, Issues: issues}
}

// NewAlignmentError reports a post-validation internal inconsistency. This
// signals a logic bug rather than bad input and is logged distinctly.
func NewAlignmentError(format string, args ...interface{}) *UnitError {
	return &UnitError{Kind: KindAlignmentInvariant, Cause: fmt.Errorf(format, args...)}
}

// NewTransientIOError wraps an external-collaborator failure.
func NewTransientIOError(op string, cause error) *UnitError {
	return &UnitError{Kind: KindTransientIO, Cause: fmt.Errorf("%s: %w", op, cause)}
}
