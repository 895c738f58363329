package repositories

import (
	"context"

	"PinguinAgent/models"
)

type ScheduleRepository interface {
	// FindByOwner returns the owner's schedules in creation order.
	FindByOwner(ctx context.Context, ownerUID string) ([]models.Schedule, error)
}
