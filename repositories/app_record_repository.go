package repositories

import (
	"context"

	"PinguinAgent/models"
)

type AppRecordRepository interface {
	// FindByOwner returns the persisted per-day records keyed by app package.
	FindByOwner(ctx context.Context, ownerUID string) (map[string]models.AppRecord, error)
	// BulkUpsert writes a reconciliation batch in one operation.
	BulkUpsert(ctx context.Context, records []models.AppRecord) error
}
