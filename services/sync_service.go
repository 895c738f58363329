package services

import (
	"sort"
	"strings"
	"time"

	"PinguinAgent/models"
)

// systemPrefixes lists packages that must never be accounted or persisted:
// launchers, system UI and Google services churn constantly and would flood
// the store with meaningless rows.
var systemPrefixes = []string{
	"com.android.systemui",
	"com.android.launcher",
	"com.android.inputmethod",
	"com.google.android.gms",
	"com.google.android.gsf",
	"com.google.android.inputmethod",
	"com.sec.android.app.launcher",
	"com.miui.home",
}

func isSystemPackage(appPackage string) bool {
	if appPackage == "android" {
		return true
	}
	for _, prefix := range systemPrefixes {
		if strings.HasPrefix(appPackage, prefix) {
			return true
		}
	}
	return false
}

// genericSegments are package-name parts that make poor display names.
var genericSegments = map[string]bool{
	"com": true, "org": true, "net": true, "io": true, "co": true,
	"android": true, "app": true, "apps": true, "mobile": true, "google": true,
}

// displayNameFor derives a readable name from a package id, e.g.
// "com.instagram.android" -> "Instagram". The store value wins once set.
func displayNameFor(appPackage string) string {
	parts := strings.Split(appPackage, ".")
	name := parts[len(parts)-1]
	for _, part := range parts {
		if part != "" && !genericSegments[strings.ToLower(part)] {
			name = part
			break
		}
	}
	if name == "" {
		return appPackage
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// ReconcileOutcome is everything one reconciliation computes: the minimal
// changeset to write, the full post-merge state, and the per-app block
// reasons the local API reports.
type ReconcileOutcome struct {
	Changeset    models.Changeset
	State        map[string]models.AppRecord
	Reasons      map[string]string
	NewlyBlocked []models.AppRecord
}

// SyncService merges freshly reconstructed usage into the previously
// persisted records without clobbering the parent-owned fields.
type SyncService struct {
	Categories *CategoryService
	Limits     *LimitService
}

func NewSyncService(categories *CategoryService, limits *LimitService) *SyncService {
	return &SyncService{Categories: categories, Limits: limits}
}

// Reconcile builds the changeset for one accounting pass.
//
// For apps seen in the current window, daily_limit_minutes and
// manual_category are carried forward from the persisted record (the parent
// owns them) and is_blocked is recomputed from scratch. For persisted apps
// with no usage in the window an implicit reset zeroes the usage; a manual
// block (limit 0) survives the reset, limit- and schedule-based blocks are
// lifted. Records land in the changeset only when an observable field
// actually changed, which makes the whole operation idempotent.
func (s *SyncService) Reconcile(
	ownerUID string,
	durations map[string]int,
	previous map[string]models.AppRecord,
	categoryLimits []models.CategoryLimit,
	active *models.Schedule,
	now time.Time,
) ReconcileOutcome {
	outcome := ReconcileOutcome{
		State:   make(map[string]models.AppRecord),
		Reasons: make(map[string]string),
	}

	limits := make(map[string]int, len(categoryLimits))
	for _, cl := range categoryLimits {
		limits[cl.Category] = cl.DailyLimitMinutes
	}

	// First pass: carry-forward and category totals for the current window.
	fresh := make(map[string]models.AppRecord, len(durations))
	effective := make(map[string]string, len(durations))
	totals := make(map[string]int)

	for app, minutes := range durations {
		if isSystemPackage(app) {
			continue
		}

		rec := models.AppRecord{
			OwnerUID:          ownerUID,
			AppPackage:        app,
			DisplayName:       displayNameFor(app),
			DailyLimitMinutes: models.UnlimitedMinutes,
			MinutesUsedToday:  minutes,
			Category:          s.Categories.Classify(app),
		}
		if prev, ok := previous[app]; ok {
			rec.DailyLimitMinutes = prev.DailyLimitMinutes
			rec.ManualCategory = prev.ManualCategory
			if prev.DisplayName != "" {
				rec.DisplayName = prev.DisplayName
			}
		}

		eff := s.Categories.EffectiveCategory(rec)
		fresh[app] = rec
		effective[app] = eff
		totals[eff] += minutes
	}

	// Second pass: verdicts and change detection.
	for _, app := range sortedKeys(fresh) {
		rec := fresh[app]
		blocked, reason := s.Limits.Evaluate(rec, effective[app], totals, limits, active)
		rec.IsBlocked = blocked

		prev, existed := previous[app]
		if !existed || !rec.ObservablyEquals(prev) {
			rec.LastUpdated = now
			outcome.Changeset.Upserts = append(outcome.Changeset.Upserts, rec)
		} else {
			rec.LastUpdated = prev.LastUpdated
		}
		if blocked && (!existed || !prev.IsBlocked) {
			outcome.NewlyBlocked = append(outcome.NewlyBlocked, rec)
		}

		outcome.State[app] = rec
		outcome.Reasons[app] = reason
	}

	// Implicit resets: persisted apps with no usage in the current window.
	for _, app := range sortedKeys(previous) {
		if _, seen := fresh[app]; seen {
			continue
		}
		if isSystemPackage(app) {
			continue
		}

		prev := previous[app]
		reset := prev
		reset.MinutesUsedToday = 0
		reset.IsBlocked = prev.HasManualBlock()

		reason := models.BlockReasonNone
		if reset.IsBlocked {
			reason = models.BlockReasonManual
		}

		if !reset.ObservablyEquals(prev) {
			reset.LastUpdated = now
			outcome.Changeset.Upserts = append(outcome.Changeset.Upserts, reset)
			outcome.Changeset.ImplicitResets = append(outcome.Changeset.ImplicitResets, app)
		}

		outcome.State[app] = reset
		outcome.Reasons[app] = reason
	}

	return outcome
}

// BlockedSet extracts the sorted list of packages to hand to the blocker.
func (o ReconcileOutcome) BlockedSet() []string {
	blocked := []string{}
	for app, rec := range o.State {
		if rec.IsBlocked {
			blocked = append(blocked, app)
		}
	}
	sort.Strings(blocked)
	return blocked
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
