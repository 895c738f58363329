package mocks

import (
	"context"

	"PinguinAgent/models"

	"github.com/stretchr/testify/mock"
)

type ScheduleRepository struct {
	mock.Mock
}

func (m *ScheduleRepository) FindByOwner(ctx context.Context, ownerUID string) ([]models.Schedule, error) {
	args := m.Called(ctx, ownerUID)
	var schedules []models.Schedule
	if args.Get(0) != nil {
		schedules = args.Get(0).([]models.Schedule)
	}
	return schedules, args.Error(1)
}
