package services

import "PinguinAgent/models"

// essentialApps can never be blocked by a schedule: losing the dialer or our
// own app during bedtime would lock the child out of emergency calls and the
// parent out of the device.
var essentialApps = map[string]bool{
	"com.android.dialer":           true,
	"com.google.android.dialer":    true,
	"com.samsung.android.dialer":   true,
	"com.android.contacts":         true,
	"com.google.android.contacts":  true,
	"com.android.settings":         true,
	"com.android.emergency":        true,
	"mobile.pinguin.child":         true,
	"mobile.pinguin.agent":         true,
}

// IsEssentialApp reports whether the package is exempt from schedule blocks.
func IsEssentialApp(appPackage string) bool {
	return essentialApps[appPackage]
}

// LimitService decides whether a single app must be blocked right now.
type LimitService struct{}

func NewLimitService() *LimitService {
	return &LimitService{}
}

// Evaluate applies the layered rules in order and returns the verdict with
// the first reason that tripped:
//
//  1. daily limit 0 is the parent's manual block,
//  2. the app spent its own daily limit,
//  3. the app's effective category spent its shared limit,
//  4. the active schedule blocks everything or this category.
//
// Once a rule trips the app stays blocked until usage resets or the parent
// changes the limit or schedule; there is no in-engine grace period.
func (s *LimitService) Evaluate(
	record models.AppRecord,
	effectiveCategory string,
	categoryTotals map[string]int,
	categoryLimits map[string]int,
	active *models.Schedule,
) (bool, string) {
	if record.DailyLimitMinutes == 0 {
		return true, models.BlockReasonManual
	}

	if record.DailyLimitMinutes > 0 && record.MinutesUsedToday >= record.DailyLimitMinutes {
		return true, models.BlockReasonLimit
	}

	if limit, ok := categoryLimits[effectiveCategory]; ok {
		if categoryTotals[effectiveCategory] >= limit {
			return true, models.BlockReasonCategory
		}
	}

	if active != nil && !IsEssentialApp(record.AppPackage) {
		if active.ForcesAllApps() || active.BlocksCategory(effectiveCategory) {
			return true, models.BlockReasonSchedule
		}
	}

	return false, models.BlockReasonNone
}
