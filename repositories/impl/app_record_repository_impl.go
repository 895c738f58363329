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

const appRecordsCollection = "app_records"

type AppRecordRepositoryImpl struct {
	Client *firestore.Client
}

func NewAppRecordRepository(client *firestore.Client) repositories.AppRecordRepository {
	return &AppRecordRepositoryImpl{Client: client}
}

// recordDocID enforces the (owner, app) uniqueness constraint through the
// document id itself.
func recordDocID(ownerUID, appPackage string) string {
	return ownerUID + "__" + appPackage
}

func (r *AppRecordRepositoryImpl) FindByOwner(ctx context.Context, ownerUID string) (map[string]models.AppRecord, error) {
	records := make(map[string]models.AppRecord)

	iter := r.Client.Collection(appRecordsCollection).
		Where("owner_uid", "==", ownerUID).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("querying app records: %w", err)
		}

		var rec models.AppRecord
		if err := doc.DataTo(&rec); err != nil {
			// Corrupt rows must not abort the whole read.
			log.Printf("[STORE] Skipping corrupt app record %s: %v", doc.Ref.ID, err)
			continue
		}
		if rec.AppPackage == "" {
			log.Printf("[STORE] Skipping app record %s with empty package", doc.Ref.ID)
			continue
		}
		records[rec.AppPackage] = rec
	}

	return records, nil
}

func (r *AppRecordRepositoryImpl) BulkUpsert(ctx context.Context, records []models.AppRecord) error {
	if len(records) == 0 {
		return nil
	}

	bw := r.Client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(records))

	for _, rec := range records {
		ref := r.Client.Collection(appRecordsCollection).Doc(recordDocID(rec.OwnerUID, rec.AppPackage))
		job, err := bw.Set(ref, rec)
		if err != nil {
			bw.End()
			return fmt.Errorf("queueing upsert for %s: %w", rec.AppPackage, err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for i, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("upserting %s: %w", records[i].AppPackage, err)
		}
	}
	return nil
}
