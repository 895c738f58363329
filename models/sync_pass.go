package models

import "time"

// Pass statuses recorded in the local journal.
const (
	PassStatusOK    = "ok"
	PassStatusError = "error"
)

// SyncPass is the journal row written after every accounting pass. The local
// status endpoint serves the most recent one.
type SyncPass struct {
	ID               string    `json:"id" gorm:"primaryKey;size:36"`
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
	Trigger          string    `json:"trigger"`
	AppsSeen         int       `json:"apps_seen"`
	Upserts          int       `json:"upserts"`
	ImplicitResets   int       `json:"implicit_resets"`
	BlockedCount     int       `json:"blocked_count"`
	ActiveScheduleID string    `json:"active_schedule_id"`
	Status           string    `json:"status"`
	Error            string    `json:"error,omitempty"`
}

// BlockedApp mirrors one entry of the last published blocked set in the local
// store, so enforcement survives a process restart before the first full pass.
type BlockedApp struct {
	AppPackage string    `json:"app_package" gorm:"primaryKey"`
	BlockedAt  time.Time `json:"blocked_at"`
}
