package mocks

import (
	"context"

	"PinguinAgent/models"

	"github.com/stretchr/testify/mock"
)

type CategoryLimitRepository struct {
	mock.Mock
}

func (m *CategoryLimitRepository) FindByOwner(ctx context.Context, ownerUID string) ([]models.CategoryLimit, error) {
	args := m.Called(ctx, ownerUID)
	var limits []models.CategoryLimit
	if args.Get(0) != nil {
		limits = args.Get(0).([]models.CategoryLimit)
	}
	return limits, args.Error(1)
}
