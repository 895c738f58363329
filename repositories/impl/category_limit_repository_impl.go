package impl

import (
	"context"
	"fmt"
	"log"

	"PinguinAgent/models"
	"PinguinAgent/repositories"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const categoryLimitsCollection = "category_limits"

type CategoryLimitRepositoryImpl struct {
	Client *firestore.Client
}

func NewCategoryLimitRepository(client *firestore.Client) repositories.CategoryLimitRepository {
	return &CategoryLimitRepositoryImpl{Client: client}
}

func (r *CategoryLimitRepositoryImpl) FindByOwner(ctx context.Context, ownerUID string) ([]models.CategoryLimit, error) {
	var limits []models.CategoryLimit

	iter := r.Client.Collection(categoryLimitsCollection).
		Where("owner_uid", "==", ownerUID).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("querying category limits: %w", err)
		}

		var limit models.CategoryLimit
		if err := doc.DataTo(&limit); err != nil {
			log.Printf("[STORE] Skipping corrupt category limit %s: %v", doc.Ref.ID, err)
			continue
		}
		limits = append(limits, limit)
	}

	return limits, nil
}
