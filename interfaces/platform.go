package interfaces

import (
	"context"
	"time"

	"PinguinAgent/models"
)

// EventSource delivers raw foreground transitions from the platform.
// How the events are produced (usage-stats API, accessibility service) is the
// shim's business; the engine only needs them sorted by timestamp.
type EventSource interface {
	QueryEvents(ctx context.Context, windowStart, windowEnd time.Time) ([]models.UsageEvent, error)
	CurrentForegroundApp(ctx context.Context) (string, error)
}

// AppBlocker enforces a blocked set at the platform level. SetBlockedApps
// replaces the previous set wholesale and must be safe to call with an
// unchanged set.
type AppBlocker interface {
	SetBlockedApps(ctx context.Context, appPackages []string) error
}

// Notifier sends a push notification to the parent device. Implementations
// must treat a missing device token as "skip", not as an error.
type Notifier interface {
	NotifyParent(ctx context.Context, title, body string, data map[string]string) error
}
