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

const schedulesCollection = "schedules"

type ScheduleRepositoryImpl struct {
	Client *firestore.Client
}

func NewScheduleRepository(client *firestore.Client) repositories.ScheduleRepository {
	return &ScheduleRepositoryImpl{Client: client}
}

func (r *ScheduleRepositoryImpl) FindByOwner(ctx context.Context, ownerUID string) ([]models.Schedule, error) {
	var schedules []models.Schedule

	iter := r.Client.Collection(schedulesCollection).
		Where("owner_uid", "==", ownerUID).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("querying schedules: %w", err)
		}

		var sched models.Schedule
		if err := doc.DataTo(&sched); err != nil {
			log.Printf("[STORE] Skipping corrupt schedule %s: %v", doc.Ref.ID, err)
			continue
		}
		if sched.ID == "" {
			sched.ID = doc.Ref.ID
		}
		schedules = append(schedules, sched)
	}

	return schedules, nil
}
