package models

import "time"

// UnlimitedMinutes marks an app without a daily limit. Distinct from 0,
// which is the manual block sentinel set by the parent.
const UnlimitedMinutes = 1440

// Block reasons reported by the evaluator and the check-blocking endpoint.
const (
	BlockReasonNone     = ""
	BlockReasonManual   = "manual"
	BlockReasonLimit    = "limit"
	BlockReasonCategory = "category"
	BlockReasonSchedule = "schedule"
)

// AppRecord is the per-day usage row for one app of one device owner.
// The device writes minutes_used_today, is_blocked and category; the parent
// backend writes daily_limit_minutes and manual_category. The reconciler is
// the only place the two sides get merged.
type AppRecord struct {
	OwnerUID          string    `json:"owner_uid" firestore:"owner_uid"`
	AppPackage        string    `json:"app_package" firestore:"app_package"`
	DisplayName       string    `json:"display_name" firestore:"display_name"`
	DailyLimitMinutes int       `json:"daily_limit_minutes" firestore:"daily_limit_minutes"`
	MinutesUsedToday  int       `json:"minutes_used_today" firestore:"minutes_used_today"`
	IsBlocked         bool      `json:"is_blocked" firestore:"is_blocked"`
	Category          string    `json:"category" firestore:"category"`
	ManualCategory    string    `json:"manual_category,omitempty" firestore:"manual_category"`
	LastUpdated       time.Time `json:"last_updated" firestore:"last_updated"`
}

// HasManualBlock reports whether the parent blocked this app outright.
func (r AppRecord) HasManualBlock() bool {
	return r.DailyLimitMinutes == 0
}

// ObservablyEquals compares the fields that matter for change detection.
// LastUpdated is deliberately excluded so that touching a record with no real
// change does not generate writes on every poll.
func (r AppRecord) ObservablyEquals(other AppRecord) bool {
	return r.AppPackage == other.AppPackage &&
		r.DisplayName == other.DisplayName &&
		r.DailyLimitMinutes == other.DailyLimitMinutes &&
		r.MinutesUsedToday == other.MinutesUsedToday &&
		r.IsBlocked == other.IsBlocked &&
		r.Category == other.Category &&
		r.ManualCategory == other.ManualCategory
}
