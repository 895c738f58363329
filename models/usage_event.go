package models

import "time"

// Transition is the foreground lifecycle tag attached to a usage event.
type Transition string

const (
	TransitionForegroundEnter Transition = "foreground_enter"
	TransitionForegroundExit  Transition = "foreground_exit"
)

// UsageEvent is a single foreground transition reported by the platform shim.
// Events arrive sorted by timestamp for a bounded query window.
type UsageEvent struct {
	AppPackage string     `json:"app_package"`
	Transition Transition `json:"transition"`
	Timestamp  time.Time  `json:"timestamp"`
}

// IsValid reports whether the event carries enough data to account for.
// Unknown transition tags are skipped, not treated as errors.
func (e UsageEvent) IsValid() bool {
	if e.AppPackage == "" || e.Timestamp.IsZero() {
		return false
	}
	return e.Transition == TransitionForegroundEnter || e.Transition == TransitionForegroundExit
}
