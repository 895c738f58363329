package mocks

import (
	"context"
	"time"

	"PinguinAgent/models"

	"github.com/stretchr/testify/mock"
)

type EventSource struct {
	mock.Mock
}

func (m *EventSource) QueryEvents(ctx context.Context, windowStart, windowEnd time.Time) ([]models.UsageEvent, error) {
	args := m.Called(ctx, windowStart, windowEnd)
	var events []models.UsageEvent
	if args.Get(0) != nil {
		events = args.Get(0).([]models.UsageEvent)
	}
	return events, args.Error(1)
}

func (m *EventSource) CurrentForegroundApp(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type AppBlocker struct {
	mock.Mock
}

func (m *AppBlocker) SetBlockedApps(ctx context.Context, appPackages []string) error {
	args := m.Called(ctx, appPackages)
	return args.Error(0)
}

type Notifier struct {
	mock.Mock
}

func (m *Notifier) NotifyParent(ctx context.Context, title, body string, data map[string]string) error {
	args := m.Called(ctx, title, body, data)
	return args.Error(0)
}
