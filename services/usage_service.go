package services

import (
	"log"
	"time"

	"PinguinAgent/models"
)

// UsageService rebuilds per-app usage for the current day from the raw
// foreground transition stream.
type UsageService struct{}

func NewUsageService() *UsageService {
	return &UsageService{}
}

// LocalMidnight returns the start of the day containing t, in t's location.
func LocalMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ReconstructDurations converts a sorted event stream into whole minutes of
// foreground time per app since midnight. The query window is expected to
// start before midnight so sessions that were already open at the day
// boundary are counted from midnight, not lost.
//
// Sessions still open when the stream ends are closed at now. A second Enter
// for an app that is already open starts a fresh interval instead of
// stacking. Intervals that end before midnight clamp to a non-positive
// duration and are dropped.
func (s *UsageService) ReconstructDurations(events []models.UsageEvent, midnight, now time.Time) map[string]int {
	openSince := make(map[string]time.Time)
	accumulated := make(map[string]time.Duration)

	for _, ev := range events {
		if !ev.IsValid() {
			log.Printf("[USAGE] Skipping malformed event for %q", ev.AppPackage)
			continue
		}

		switch ev.Transition {
		case models.TransitionForegroundEnter:
			openSince[ev.AppPackage] = ev.Timestamp

		case models.TransitionForegroundExit:
			start, open := openSince[ev.AppPackage]
			if !open {
				// Exit without a matching Enter, nothing to account.
				continue
			}
			delete(openSince, ev.AppPackage)
			addInterval(accumulated, ev.AppPackage, start, ev.Timestamp, midnight)
		}
	}

	// Whatever is still open is in progress right now.
	for app, start := range openSince {
		addInterval(accumulated, app, start, now, midnight)
	}

	minutes := make(map[string]int, len(accumulated))
	for app, total := range accumulated {
		minutes[app] = int(total / time.Minute)
	}
	return minutes
}

func addInterval(accumulated map[string]time.Duration, app string, start, end, midnight time.Time) {
	if start.Before(midnight) {
		start = midnight
	}
	if d := end.Sub(start); d > 0 {
		accumulated[app] += d
	}
}
