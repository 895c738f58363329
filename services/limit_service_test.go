package services

import (
	"testing"

	"PinguinAgent/models"

	"github.com/stretchr/testify/assert"
)

func evalRecord(limitMinutes, usedMinutes int) models.AppRecord {
	return models.AppRecord{
		AppPackage:        "com.roblox.client",
		DailyLimitMinutes: limitMinutes,
		MinutesUsedToday:  usedMinutes,
	}
}

func TestManualBlockAlwaysBlocks(t *testing.T) {
	limits := NewLimitService()

	blocked, reason := limits.Evaluate(evalRecord(0, 0), CategoryGames, nil, nil, nil)

	assert.True(t, blocked)
	assert.Equal(t, models.BlockReasonManual, reason)
}

func TestDailyLimitReached(t *testing.T) {
	limits := NewLimitService()

	blocked, reason := limits.Evaluate(evalRecord(30, 32), CategoryGames, nil, nil, nil)
	assert.True(t, blocked)
	assert.Equal(t, models.BlockReasonLimit, reason)

	blocked, reason = limits.Evaluate(evalRecord(30, 30), CategoryGames, nil, nil, nil)
	assert.True(t, blocked)
	assert.Equal(t, models.BlockReasonLimit, reason)

	blocked, reason = limits.Evaluate(evalRecord(30, 25), CategoryGames, nil, nil, nil)
	assert.False(t, blocked)
	assert.Equal(t, models.BlockReasonNone, reason)
}

func TestUnlimitedAppNotBlockedByUsage(t *testing.T) {
	limits := NewLimitService()

	blocked, _ := limits.Evaluate(evalRecord(models.UnlimitedMinutes, 600), CategoryGames, nil, nil, nil)

	assert.False(t, blocked)
}

func TestCategoryLimitBlocksEveryAppInCategory(t *testing.T) {
	limits := NewLimitService()

	categoryLimits := map[string]int{CategoryGames: 60}
	totals := map[string]int{CategoryGames: 70} // 35 + 35 across two apps

	// Each app is individually under (or without) its own limit.
	blocked, reason := limits.Evaluate(evalRecord(models.UnlimitedMinutes, 35), CategoryGames, totals, categoryLimits, nil)
	assert.True(t, blocked)
	assert.Equal(t, models.BlockReasonCategory, reason)

	blocked, reason = limits.Evaluate(evalRecord(120, 35), CategoryGames, totals, categoryLimits, nil)
	assert.True(t, blocked)
	assert.Equal(t, models.BlockReasonCategory, reason)

	// A different category is untouched.
	blocked, _ = limits.Evaluate(evalRecord(120, 35), CategorySocial, totals, categoryLimits, nil)
	assert.False(t, blocked)
}

func TestScheduleBlockAllApps(t *testing.T) {
	limits := NewLimitService()
	bedtime := bedtimeSchedule()

	blocked, reason := limits.Evaluate(evalRecord(models.UnlimitedMinutes, 5), CategoryGames, nil, nil, &bedtime)

	assert.True(t, blocked)
	assert.Equal(t, models.BlockReasonSchedule, reason)
}

func TestScheduleBlockedCategories(t *testing.T) {
	limits := NewLimitService()
	homework := models.Schedule{
		Type:              models.ScheduleTypeHomework,
		BlockedCategories: []string{CategoryGames},
	}

	blocked, reason := limits.Evaluate(evalRecord(models.UnlimitedMinutes, 5), CategoryGames, nil, nil, &homework)
	assert.True(t, blocked)
	assert.Equal(t, models.BlockReasonSchedule, reason)

	blocked, _ = limits.Evaluate(evalRecord(models.UnlimitedMinutes, 5), CategoryEducation, nil, nil, &homework)
	assert.False(t, blocked)
}

func TestEssentialAppsExemptFromSchedulesOnly(t *testing.T) {
	limits := NewLimitService()
	bedtime := bedtimeSchedule()

	dialer := models.AppRecord{
		AppPackage:        "com.android.dialer",
		DailyLimitMinutes: models.UnlimitedMinutes,
		MinutesUsedToday:  10,
	}
	blocked, _ := limits.Evaluate(dialer, CategoryOther, nil, nil, &bedtime)
	assert.False(t, blocked)

	// The exemption does not extend to explicit limits.
	dialer.DailyLimitMinutes = 0
	blocked, reason := limits.Evaluate(dialer, CategoryOther, nil, nil, &bedtime)
	assert.True(t, blocked)
	assert.Equal(t, models.BlockReasonManual, reason)
}

func TestManualBlockOutranksOtherReasons(t *testing.T) {
	limits := NewLimitService()
	bedtime := bedtimeSchedule()
	categoryLimits := map[string]int{CategoryGames: 10}
	totals := map[string]int{CategoryGames: 500}

	blocked, reason := limits.Evaluate(evalRecord(0, 500), CategoryGames, totals, categoryLimits, &bedtime)

	assert.True(t, blocked)
	assert.Equal(t, models.BlockReasonManual, reason)
}
