package impl

import (
	"context"
	"log"

	"PinguinAgent/repositories"

	"cloud.google.com/go/firestore"
	"github.com/cenkalti/backoff/v4"
)

// StoreWatcherImpl listens on a Firestore query snapshot stream and fires the
// notify callback on every change after the initial snapshot. Stream errors
// restart the listener with exponential backoff.
type StoreWatcherImpl struct {
	Client *firestore.Client
}

func NewStoreWatcher(client *firestore.Client) repositories.StoreWatcher {
	return &StoreWatcherImpl{Client: client}
}

func (w *StoreWatcherImpl) Watch(ctx context.Context, collection, ownerUID string, notify func()) {
	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)

	listen := func() error {
		iter := w.Client.Collection(collection).
			Where("owner_uid", "==", ownerUID).
			Snapshots(ctx)
		defer iter.Stop()

		first := true
		for {
			snap, err := iter.Next()
			if err != nil {
				return err
			}
			// The first snapshot describes current state, not a change.
			if first {
				first = false
				continue
			}
			if len(snap.Changes) > 0 {
				log.Printf("[WATCH] %s changed (%d docs)", collection, len(snap.Changes))
				notify()
			}
		}
	}

	for {
		err := backoff.Retry(func() error {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return listen()
		}, policy)

		if ctx.Err() != nil {
			return
		}
		log.Printf("[WATCH] %s listener stopped: %v, restarting", collection, err)
		policy.Reset()
	}
}
