package services

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"PinguinAgent/interfaces"
	"PinguinAgent/models"
	"PinguinAgent/repositories"

	"github.com/google/uuid"
)

// The event query window starts well before midnight so a session that was
// already open at the day boundary is clamped, not lost.
const eventWindowLookback = 6 * time.Hour

// Trigger labels recorded in the pass journal.
const (
	TriggerTimer  = "timer"
	TriggerPush   = "push"
	TriggerSocket = "socket"
	TriggerAPI    = "api"
	TriggerTask   = "background_task"
)

// Collections watched for parent-side edits.
var watchedCollections = []string{"app_records", "category_limits", "schedules"}

// AppVerdict is the cached per-app result of the last pass, served by the
// local check-blocking endpoint without re-running accounting.
type AppVerdict struct {
	Blocked           bool   `json:"blocked"`
	Reason            string `json:"reason,omitempty"`
	MinutesUsedToday  int    `json:"minutes_used_today"`
	DailyLimitMinutes int    `json:"daily_limit_minutes"`
}

// MonitorConfig wires the monitor's collaborators together.
type MonitorConfig struct {
	OwnerUID     string
	PollInterval time.Duration
	SyncInterval time.Duration

	Events         interfaces.EventSource
	Blocker        interfaces.AppBlocker
	AppRecords     repositories.AppRecordRepository
	CategoryLimits repositories.CategoryLimitRepository
	Schedules      repositories.ScheduleRepository
	LocalState     repositories.LocalStateRepository
	Watcher        repositories.StoreWatcher

	Usage       *UsageService
	ScheduleSvc *ScheduleService
	Sync        *SyncService
	Enforcement *EnforcementService

	// Now is the pass clock, overridable in tests. Defaults to time.Now.
	Now func() time.Time
}

// MonitorService runs the accounting pipeline. Full passes are serialized
// through a single worker no matter which trigger fired them; the
// seconds-scale foreground poll never touches the pipeline, it only consults
// the blocked set cached by the last pass.
type MonitorService struct {
	cfg MonitorConfig

	triggers chan string

	blockedSet atomic.Value // map[string]bool
	verdicts   atomic.Value // map[string]AppVerdict
	lastPass   atomic.Value // models.SyncPass

	// Worker-only schedule identity tracking across passes.
	scheduleKnown    bool
	lastScheduleID   string
	lastScheduleName string
}

func NewMonitorService(cfg MonitorConfig) *MonitorService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	m := &MonitorService{
		cfg:      cfg,
		triggers: make(chan string, 8),
	}
	m.blockedSet.Store(map[string]bool{})
	m.verdicts.Store(map[string]AppVerdict{})
	return m
}

// Start launches the worker, the accounting ticker, the foreground poll and
// the store watchers, then returns. All goroutines exit with the context.
func (m *MonitorService) Start(ctx context.Context) {
	// Re-enforce what we knew before the restart until the first pass lands.
	if persisted, err := m.cfg.LocalState.LoadBlockedSet(); err == nil && len(persisted) > 0 {
		blocked := make(map[string]bool, len(persisted))
		for _, app := range persisted {
			blocked[app] = true
		}
		m.blockedSet.Store(blocked)
		log.Printf("[MONITOR] Restored %d blocked apps from local store", len(persisted))
	}

	go m.worker(ctx)
	go m.accountingTicker(ctx)
	go m.foregroundPoll(ctx)

	if m.cfg.Watcher != nil {
		for _, collection := range watchedCollections {
			go m.cfg.Watcher.Watch(ctx, collection, m.cfg.OwnerUID, func() {
				m.TriggerSync(TriggerPush)
			})
		}
	}

	m.TriggerSync(TriggerTimer)
}

// TriggerSync queues a full pass. Non-blocking: if a trigger is already
// pending the new one is redundant anyway, every pass re-reads everything.
func (m *MonitorService) TriggerSync(reason string) {
	select {
	case m.triggers <- reason:
	default:
	}
}

func (m *MonitorService) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case trigger := <-m.triggers:
			if _, err := m.RunPass(ctx, trigger); err != nil {
				log.Printf("[MONITOR] Pass failed (%s): %v", trigger, err)
			}
		}
	}
}

func (m *MonitorService) accountingTicker(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.SyncInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.TriggerSync(TriggerTimer)
		}
	}
}

// foregroundPoll is the cheap path: read the current foreground app and
// re-assert the blocker when a blocked app surfaces. No accounting, no
// store reads.
func (m *MonitorService) foregroundPoll(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app, err := m.cfg.Events.CurrentForegroundApp(ctx)
			if err != nil || app == "" {
				continue
			}
			if !m.IsBlockedNow(app) {
				continue
			}
			log.Printf("[MONITOR] Blocked app %s in foreground, re-asserting", app)
			if err := m.cfg.Blocker.SetBlockedApps(ctx, m.BlockedApps()); err != nil {
				log.Printf("[BLOCK] Re-assert failed: %v", err)
			}
		}
	}
}

// RunPass executes one full accounting pass: reconstruct, classify,
// evaluate, reconcile, publish. Limits, schedules and records are fetched
// fresh from the store every time so interleaved passes and out-of-process
// invocations never act on cached parent edits. Any store error aborts the
// pass before anything is written.
func (m *MonitorService) RunPass(ctx context.Context, trigger string) (models.SyncPass, error) {
	now := m.cfg.Now()
	pass := models.SyncPass{
		ID:        uuid.NewString(),
		StartedAt: now,
		Trigger:   trigger,
		Status:    models.PassStatusOK,
	}

	fail := func(err error) (models.SyncPass, error) {
		pass.Status = models.PassStatusError
		pass.Error = err.Error()
		pass.FinishedAt = time.Now()
		m.journal(pass)
		return pass, err
	}

	previous, err := m.cfg.AppRecords.FindByOwner(ctx, m.cfg.OwnerUID)
	if err != nil {
		return fail(fmt.Errorf("fetching app records: %w", err))
	}
	categoryLimits, err := m.cfg.CategoryLimits.FindByOwner(ctx, m.cfg.OwnerUID)
	if err != nil {
		return fail(fmt.Errorf("fetching category limits: %w", err))
	}
	schedules, err := m.cfg.Schedules.FindByOwner(ctx, m.cfg.OwnerUID)
	if err != nil {
		return fail(fmt.Errorf("fetching schedules: %w", err))
	}

	midnight := LocalMidnight(now)
	events, err := m.cfg.Events.QueryEvents(ctx, midnight.Add(-eventWindowLookback), now)
	if err != nil {
		return fail(fmt.Errorf("querying usage events: %w", err))
	}

	durations := m.cfg.Usage.ReconstructDurations(events, midnight, now)
	active := m.cfg.ScheduleSvc.ActiveSchedule(schedules, now)
	outcome := m.cfg.Sync.Reconcile(m.cfg.OwnerUID, durations, previous, categoryLimits, active, now)

	if err := m.cfg.Enforcement.Publish(ctx, outcome, m.scheduleTransition(active)); err != nil {
		return fail(err)
	}

	m.cacheOutcome(outcome)

	pass.AppsSeen = len(outcome.State)
	pass.Upserts = len(outcome.Changeset.Upserts)
	pass.ImplicitResets = len(outcome.Changeset.ImplicitResets)
	pass.BlockedCount = len(outcome.BlockedSet())
	if active != nil {
		pass.ActiveScheduleID = active.ID
	}
	pass.FinishedAt = time.Now()
	m.journal(pass)

	log.Printf("[MONITOR] Pass %s done: %d apps, %d upserts, %d blocked",
		pass.ID, pass.AppsSeen, pass.Upserts, pass.BlockedCount)
	return pass, nil
}

// scheduleTransition compares the active schedule against the previous pass.
// The first pass of a process has nothing to compare against.
func (m *MonitorService) scheduleTransition(active *models.Schedule) *ScheduleTransition {
	currentID, currentName := "", ""
	if active != nil {
		currentID, currentName = active.ID, active.Name
	}

	defer func() {
		m.scheduleKnown = true
		m.lastScheduleID = currentID
		m.lastScheduleName = currentName
	}()

	if !m.scheduleKnown || m.lastScheduleID == currentID {
		return nil
	}
	return &ScheduleTransition{
		PreviousID:   m.lastScheduleID,
		PreviousName: m.lastScheduleName,
		CurrentID:    currentID,
		CurrentName:  currentName,
	}
}

func (m *MonitorService) cacheOutcome(outcome ReconcileOutcome) {
	blocked := make(map[string]bool)
	for _, app := range outcome.BlockedSet() {
		blocked[app] = true
	}
	verdicts := make(map[string]AppVerdict, len(outcome.State))
	for app, rec := range outcome.State {
		verdicts[app] = AppVerdict{
			Blocked:           rec.IsBlocked,
			Reason:            outcome.Reasons[app],
			MinutesUsedToday:  rec.MinutesUsedToday,
			DailyLimitMinutes: rec.DailyLimitMinutes,
		}
	}
	m.blockedSet.Store(blocked)
	m.verdicts.Store(verdicts)
}

func (m *MonitorService) journal(pass models.SyncPass) {
	m.lastPass.Store(pass)
	if err := m.cfg.LocalState.SavePass(pass); err != nil {
		log.Printf("[MONITOR] Failed to journal pass %s: %v", pass.ID, err)
	}
}

// IsBlockedNow consults the last published blocked set.
func (m *MonitorService) IsBlockedNow(appPackage string) bool {
	return m.blockedSet.Load().(map[string]bool)[appPackage]
}

// BlockedApps returns the last published blocked set as a slice.
func (m *MonitorService) BlockedApps() []string {
	blocked := m.blockedSet.Load().(map[string]bool)
	apps := make([]string, 0, len(blocked))
	for app := range blocked {
		apps = append(apps, app)
	}
	return apps
}

// CheckApp returns the cached verdict for one app. Unknown apps (no usage
// today) are unblocked unless the blocked set says otherwise.
func (m *MonitorService) CheckApp(appPackage string) (AppVerdict, bool) {
	verdicts := m.verdicts.Load().(map[string]AppVerdict)
	if v, ok := verdicts[appPackage]; ok {
		return v, true
	}
	if m.IsBlockedNow(appPackage) {
		return AppVerdict{Blocked: true}, true
	}
	return AppVerdict{DailyLimitMinutes: models.UnlimitedMinutes}, false
}

// LatestPass serves the status endpoint: the in-memory pass if the process
// has run one, otherwise whatever the journal holds.
func (m *MonitorService) LatestPass() (models.SyncPass, bool) {
	if pass, ok := m.lastPass.Load().(models.SyncPass); ok && pass.ID != "" {
		return pass, true
	}
	pass, err := m.cfg.LocalState.LatestPass()
	if err != nil {
		return models.SyncPass{}, false
	}
	return pass, true
}
