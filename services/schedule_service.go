package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"PinguinAgent/models"
)

// ScheduleService answers "which schedule is active right now". It keeps no
// state of its own; everything is recomputed from wall-clock time on every
// evaluation.
type ScheduleService struct{}

func NewScheduleService() *ScheduleService {
	return &ScheduleService{}
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(value string) (int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hour*60 + minute, nil
}

// IsActiveAt reports whether the schedule's weekly window contains now.
// Windows whose start is later than their end wrap past midnight:
// 21:00-07:00 matches 23:30 and 03:00 but not 12:00. Schedules with
// malformed times are treated as inactive rather than failing the pass.
func (s *ScheduleService) IsActiveAt(sched models.Schedule, now time.Time) bool {
	if !sched.IsActive {
		return false
	}

	weekday := int(now.Weekday()) // 0=Sunday..6=Saturday
	dayMatches := false
	for _, d := range sched.DaysOfWeek {
		if d == weekday {
			dayMatches = true
			break
		}
	}
	if !dayMatches {
		return false
	}

	startMinutes, err := parseClock(sched.StartTime)
	if err != nil {
		log.Printf("[SCHED] Schedule %s has bad start time: %v", sched.ID, err)
		return false
	}
	endMinutes, err := parseClock(sched.EndTime)
	if err != nil {
		log.Printf("[SCHED] Schedule %s has bad end time: %v", sched.ID, err)
		return false
	}

	currentMinutes := now.Hour()*60 + now.Minute()
	if startMinutes > endMinutes {
		// Overnight window.
		return currentMinutes >= startMinutes || currentMinutes < endMinutes
	}
	return currentMinutes >= startMinutes && currentMinutes < endMinutes
}

// restrictiveness ranks overlapping schedules so the tie-break is explicit:
// a schedule that blocks everything outranks one that blocks categories,
// which outranks allowed-hours windows that block nothing.
func restrictiveness(sched models.Schedule) int {
	switch {
	case sched.ForcesAllApps():
		return 3
	case len(sched.BlockedCategories) > 0 && sched.Type != models.ScheduleTypeAllowedHours:
		return 2
	default:
		return 1
	}
}

// ActiveSchedule returns the single authoritative schedule for now, or nil.
// When windows overlap the most restrictive one wins; among equals, the
// earliest created (the input order from the store) wins.
func (s *ScheduleService) ActiveSchedule(schedules []models.Schedule, now time.Time) *models.Schedule {
	var best *models.Schedule
	bestRank := 0

	for i := range schedules {
		if !s.IsActiveAt(schedules[i], now) {
			continue
		}
		if rank := restrictiveness(schedules[i]); rank > bestRank {
			best = &schedules[i]
			bestRank = rank
		}
	}
	return best
}
