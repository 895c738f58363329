package repositories

import "context"

// StoreWatcher subscribes to remote store changes for one owner and invokes
// notify on every change after the initial snapshot. Watch blocks until the
// context is cancelled and reconnects internally on stream errors.
type StoreWatcher interface {
	Watch(ctx context.Context, collection, ownerUID string, notify func())
}
