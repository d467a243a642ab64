package repository

import (
	"context"

	"BlueBatch/internal/domain/models"
)

// Source enumerates and loads raw input units. Implementations reach external
// storage, so load failures are classified transient by the scheduler.
type Source interface {
	List(ctx context.Context, timeframe, date string) ([]models.UnitRef, error)
	Load(ctx context.Context, ref models.UnitRef) (*models.RawRecord, error)
}

// Sink persists one finalized output unit. Writes must be atomic: a partially
// written unit is never visible to downstream consumers.
type Sink interface {
	WriteUnit(ctx context.Context, timeframe, date, name string, data []byte) error
}

// Notifier delivers run summaries and alerts to external channels.
type Notifier interface {
	Notify(ctx context.Context, alert models.Alert) error
}

// Metrics records batch telemetry.
type Metrics interface {
	RecordUnit(outcome string)
	RecordError(kind string)
	RecordRetry()
	RecordUnitDuration(seconds float64)
	RecordBatchDuration(seconds float64)
}
