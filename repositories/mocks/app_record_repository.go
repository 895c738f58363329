package mocks

import (
	"context"

	"PinguinAgent/models"

	"github.com/stretchr/testify/mock"
)

type AppRecordRepository struct {
	mock.Mock
}

func (m *AppRecordRepository) FindByOwner(ctx context.Context, ownerUID string) (map[string]models.AppRecord, error) {
	args := m.Called(ctx, ownerUID)
	var records map[string]models.AppRecord
	if args.Get(0) != nil {
		records = args.Get(0).(map[string]models.AppRecord)
	}
	return records, args.Error(1)
}

func (m *AppRecordRepository) BulkUpsert(ctx context.Context, records []models.AppRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}
