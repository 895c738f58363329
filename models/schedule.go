package models

import "time"

// Schedule types. Bedtime always blocks everything while active, Homework
// honors its own flags, AllowedHours imposes no blocking at all.
const (
	ScheduleTypeBedtime      = "bedtime"
	ScheduleTypeHomework     = "homework"
	ScheduleTypeAllowedHours = "allowed_hours"
)

// Schedule is a recurring weekly time window set by the parent.
// StartTime/EndTime use the "HH:MM" format; DaysOfWeek uses 0=Sunday..6=Saturday.
// A window whose start is later than its end wraps past midnight
// (21:00-07:00 covers the evening and the following morning).
type Schedule struct {
	ID                string    `json:"id" firestore:"id"`
	OwnerUID          string    `json:"owner_uid" firestore:"owner_uid"`
	Name              string    `json:"name" firestore:"name"`
	Type              string    `json:"type" firestore:"type"`
	DaysOfWeek        []int     `json:"days_of_week" firestore:"days_of_week"`
	StartTime         string    `json:"start_time" firestore:"start_time"`
	EndTime           string    `json:"end_time" firestore:"end_time"`
	IsActive          bool      `json:"is_active" firestore:"is_active"`
	BlockAllApps      bool      `json:"block_all_apps" firestore:"block_all_apps"`
	BlockedCategories []string  `json:"blocked_categories" firestore:"blocked_categories"`
	CreatedAt         time.Time `json:"created_at" firestore:"created_at"`
}

// ForcesAllApps reports whether the schedule blocks every non-essential app
// while it is active. Bedtime forces this regardless of the stored flag.
func (s Schedule) ForcesAllApps() bool {
	if s.Type == ScheduleTypeBedtime {
		return true
	}
	if s.Type == ScheduleTypeAllowedHours {
		return false
	}
	return s.BlockAllApps
}

// BlocksCategory reports whether the schedule blocks apps of the given
// effective category while it is active.
func (s Schedule) BlocksCategory(category string) bool {
	if s.Type == ScheduleTypeAllowedHours {
		return false
	}
	for _, c := range s.BlockedCategories {
		if c == category {
			return true
		}
	}
	return false
}
