package cmd

import (
	"PinguinAgent/config"
	"PinguinAgent/platform"
	"PinguinAgent/repositories/impl"
	"PinguinAgent/services"
)

// buildMonitor assembles the full pipeline from configuration. Both the
// resident agent and the one-shot background sync use the exact same wiring;
// the background task simply never starts the loops.
func buildMonitor(settings config.Settings) *services.MonitorService {
	config.InitLocalStore()
	config.InitFirebase()

	bridge := platform.NewBridge(settings.BridgeURL)

	appRecords := impl.NewAppRecordRepository(config.Firestore)
	categoryLimits := impl.NewCategoryLimitRepository(config.Firestore)
	schedules := impl.NewScheduleRepository(config.Firestore)
	localState := impl.NewLocalStateRepository(config.LocalDB)
	watcher := impl.NewStoreWatcher(config.Firestore)

	notifier := services.NewNotificationService(config.Messaging, settings.ParentDeviceToken)
	categoryService := services.NewCategoryService()
	limitService := services.NewLimitService()
	syncService := services.NewSyncService(categoryService, limitService)
	enforcement := services.NewEnforcementService(appRecords, localState, bridge, notifier)

	return services.NewMonitorService(services.MonitorConfig{
		OwnerUID:     settings.OwnerUID,
		PollInterval: settings.PollInterval,
		SyncInterval: settings.SyncInterval,

		Events:         bridge,
		Blocker:        bridge,
		AppRecords:     appRecords,
		CategoryLimits: categoryLimits,
		Schedules:      schedules,
		LocalState:     localState,
		Watcher:        watcher,

		Usage:       services.NewUsageService(),
		ScheduleSvc: services.NewScheduleService(),
		Sync:        syncService,
		Enforcement: enforcement,
	})
}
