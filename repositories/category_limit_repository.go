package repositories

import (
	"context"

	"PinguinAgent/models"
)

type CategoryLimitRepository interface {
	FindByOwner(ctx context.Context, ownerUID string) ([]models.CategoryLimit, error)
}
