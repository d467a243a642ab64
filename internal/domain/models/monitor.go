package models

import "time"

// AlertLevel tags outbound notifications.
type AlertLevel string

const (
	AlertInfo     AlertLevel = "info"
	AlertWarning  AlertLevel = "warning"
	AlertError    AlertLevel = "error"
	AlertCritical AlertLevel = "critical"
)

// Alert is one outbound notification payload.
type Alert struct {
	Level   AlertLevel             `json:"level"`
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the overall verdict of a health check.
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthWarning  HealthStatus = "warning"
	HealthCritical HealthStatus = "critical"
)

// StorageMetrics counts and sizes the input/output trees.
type StorageMetrics struct {
	InputFiles   int     `json:"input_files"`
	OutputFiles  int     `json:"output_files"`
	InputSizeMB  float64 `json:"input_size_mb"`
	OutputSizeMB float64 `json:"output_size_mb"`
}

// PipelineStatus describes the most recent finished run.
type PipelineStatus struct {
	LastRunAt    time.Time `json:"last_run_at"`
	LastRunStale bool      `json:"last_run_stale"`
	LastRunOK    bool      `json:"last_run_ok"`
	KnownRuns    int       `json:"known_runs"`
}

// HealthReport is the full health-check payload served by the monitor.
type HealthReport struct {
	Timestamp time.Time       `json:"timestamp"`
	Status    HealthStatus    `json:"status"`
	Issues    []string        `json:"issues,omitempty"`
	Storage   StorageMetrics  `json:"storage"`
	Pipeline  *PipelineStatus `json:"pipeline,omitempty"`
}
