package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"PinguinAgent/models"
	"PinguinAgent/repositories/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type monitorFixture struct {
	events     *mocks.EventSource
	blocker    *mocks.AppBlocker
	appRecords *mocks.AppRecordRepository
	catLimits  *mocks.CategoryLimitRepository
	schedules  *mocks.ScheduleRepository
	localState *mocks.LocalStateRepository
	notifier   *mocks.Notifier
	monitor    *MonitorService
}

func newMonitorFixture() *monitorFixture {
	f := &monitorFixture{
		events:     new(mocks.EventSource),
		blocker:    new(mocks.AppBlocker),
		appRecords: new(mocks.AppRecordRepository),
		catLimits:  new(mocks.CategoryLimitRepository),
		schedules:  new(mocks.ScheduleRepository),
		localState: new(mocks.LocalStateRepository),
		notifier:   new(mocks.Notifier),
	}

	categoryService := NewCategoryService()
	limitService := NewLimitService()
	f.monitor = NewMonitorService(MonitorConfig{
		OwnerUID:     testOwner,
		PollInterval: time.Second,
		SyncInterval: time.Minute,

		Events:         f.events,
		Blocker:        f.blocker,
		AppRecords:     f.appRecords,
		CategoryLimits: f.catLimits,
		Schedules:      f.schedules,
		LocalState:     f.localState,

		Usage:       NewUsageService(),
		ScheduleSvc: NewScheduleService(),
		Sync:        NewSyncService(categoryService, limitService),
		Enforcement: NewEnforcementService(f.appRecords, f.localState, f.blocker, f.notifier),

		// Pin the pass clock so the midnight clamp and schedule windows are
		// deterministic no matter when the test runs.
		Now: func() time.Time { return testNow },
	})
	return f
}

func clockAt(t time.Time) string {
	return t.Format("15:04")
}

// alwaysActiveBedtime builds a bedtime window containing the pinned pass
// clock.
func alwaysActiveBedtime(id string) models.Schedule {
	now := testNow
	return models.Schedule{
		ID:         id,
		Name:       "Bedtime",
		Type:       models.ScheduleTypeBedtime,
		DaysOfWeek: []int{0, 1, 2, 3, 4, 5, 6},
		StartTime:  clockAt(now.Add(-time.Hour)),
		EndTime:    clockAt(now.Add(time.Hour)),
		IsActive:   true,
	}
}

func TestRunPassFullPipeline(t *testing.T) {
	f := newMonitorFixture()
	now := testNow

	previous := map[string]models.AppRecord{
		"com.roblox.client": {
			OwnerUID:          testOwner,
			AppPackage:        "com.roblox.client",
			DisplayName:       "Roblox",
			DailyLimitMinutes: 15,
			MinutesUsedToday:  10,
			Category:          CategoryGames,
		},
	}
	events := []models.UsageEvent{
		{AppPackage: "com.roblox.client", Transition: models.TransitionForegroundEnter, Timestamp: now.Add(-30 * time.Minute)},
		{AppPackage: "com.roblox.client", Transition: models.TransitionForegroundExit, Timestamp: now.Add(-10 * time.Minute)},
	}

	f.appRecords.On("FindByOwner", mock.Anything, testOwner).Return(previous, nil)
	f.catLimits.On("FindByOwner", mock.Anything, testOwner).Return(nil, nil)
	f.schedules.On("FindByOwner", mock.Anything, testOwner).Return(nil, nil)
	f.events.On("QueryEvents", mock.Anything, mock.Anything, mock.Anything).Return(events, nil)
	f.appRecords.On("BulkUpsert", mock.Anything, mock.MatchedBy(func(records []models.AppRecord) bool {
		return len(records) == 1 && records[0].AppPackage == "com.roblox.client" && records[0].IsBlocked
	})).Return(nil)
	f.blocker.On("SetBlockedApps", mock.Anything, []string{"com.roblox.client"}).Return(nil)
	f.localState.On("SaveBlockedSet", []string{"com.roblox.client"}).Return(nil)
	f.localState.On("SavePass", mock.Anything).Return(nil)
	f.notifier.On("NotifyParent", mock.Anything, "Limit reached", mock.Anything, mock.Anything).Return(nil)

	pass, err := f.monitor.RunPass(context.Background(), TriggerTimer)

	require.NoError(t, err)
	assert.Equal(t, models.PassStatusOK, pass.Status)
	assert.Equal(t, 1, pass.AppsSeen)
	assert.Equal(t, 1, pass.Upserts)
	assert.Equal(t, 1, pass.BlockedCount)
	assert.NotEmpty(t, pass.ID)

	// The cheap paths see the pass result.
	assert.True(t, f.monitor.IsBlockedNow("com.roblox.client"))
	verdict, known := f.monitor.CheckApp("com.roblox.client")
	assert.True(t, known)
	assert.True(t, verdict.Blocked)
	assert.Equal(t, models.BlockReasonLimit, verdict.Reason)

	latest, ok := f.monitor.LatestPass()
	assert.True(t, ok)
	assert.Equal(t, pass.ID, latest.ID)

	f.appRecords.AssertExpectations(t)
	f.blocker.AssertExpectations(t)
}

func TestRunPassStoreFailureAbortsCleanly(t *testing.T) {
	f := newMonitorFixture()

	f.appRecords.On("FindByOwner", mock.Anything, testOwner).Return(nil, errors.New("store unreachable"))
	f.localState.On("SavePass", mock.MatchedBy(func(pass models.SyncPass) bool {
		return pass.Status == models.PassStatusError
	})).Return(nil)

	_, err := f.monitor.RunPass(context.Background(), TriggerTask)

	assert.Error(t, err)
	f.appRecords.AssertNotCalled(t, "BulkUpsert", mock.Anything, mock.Anything)
	f.blocker.AssertNotCalled(t, "SetBlockedApps", mock.Anything, mock.Anything)
	f.localState.AssertExpectations(t)
}

func TestRunPassReportsScheduleTransition(t *testing.T) {
	f := newMonitorFixture()
	bedtime := alwaysActiveBedtime("bedtime-1")

	f.appRecords.On("FindByOwner", mock.Anything, testOwner).Return(map[string]models.AppRecord{}, nil)
	f.catLimits.On("FindByOwner", mock.Anything, testOwner).Return(nil, nil)
	f.events.On("QueryEvents", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	f.blocker.On("SetBlockedApps", mock.Anything, mock.Anything).Return(nil)
	f.localState.On("SaveBlockedSet", mock.Anything).Return(nil)
	f.localState.On("SavePass", mock.Anything).Return(nil)

	// First pass: bedtime active, nothing to compare against.
	f.schedules.On("FindByOwner", mock.Anything, testOwner).Return([]models.Schedule{bedtime}, nil).Once()
	pass, err := f.monitor.RunPass(context.Background(), TriggerTimer)
	require.NoError(t, err)
	assert.Equal(t, "bedtime-1", pass.ActiveScheduleID)
	f.notifier.AssertNotCalled(t, "NotifyParent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// Second pass: bedtime gone, transition reported.
	f.schedules.On("FindByOwner", mock.Anything, testOwner).Return(nil, nil).Once()
	f.notifier.On("NotifyParent", mock.Anything, "Schedule ended", "Bedtime is over", mock.Anything).Return(nil)
	pass, err = f.monitor.RunPass(context.Background(), TriggerPush)
	require.NoError(t, err)
	assert.Empty(t, pass.ActiveScheduleID)
	f.notifier.AssertExpectations(t)
}

func TestTriggerSyncNeverBlocks(t *testing.T) {
	f := newMonitorFixture()

	for i := 0; i < 50; i++ {
		f.monitor.TriggerSync(TriggerPush)
	}
}

func TestCheckAppUnknownDefaultsToUnblocked(t *testing.T) {
	f := newMonitorFixture()

	verdict, known := f.monitor.CheckApp("com.never.seen")

	assert.False(t, known)
	assert.False(t, verdict.Blocked)
	assert.Equal(t, models.UnlimitedMinutes, verdict.DailyLimitMinutes)
}
