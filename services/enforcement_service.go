package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"PinguinAgent/interfaces"
	"PinguinAgent/models"
	"PinguinAgent/repositories"
)

// ScheduleTransition describes an active-schedule change between two passes.
// Reported even when the blocked set did not change, so the lock screen and
// the parent can react to "bedtime started" on time.
type ScheduleTransition struct {
	PreviousID   string
	PreviousName string
	CurrentID    string
	CurrentName  string
}

// EnforcementService applies a finished pass to the outside world: the
// changeset goes to the remote store, the blocked set goes to the platform
// blocker and the local mirror, and the parent gets notified about
// transitions worth knowing.
type EnforcementService struct {
	AppRecords repositories.AppRecordRepository
	LocalState repositories.LocalStateRepository
	Blocker    interfaces.AppBlocker
	Notifier   interfaces.Notifier
}

func NewEnforcementService(
	appRecords repositories.AppRecordRepository,
	localState repositories.LocalStateRepository,
	blocker interfaces.AppBlocker,
	notifier interfaces.Notifier,
) *EnforcementService {
	return &EnforcementService{
		AppRecords: appRecords,
		LocalState: localState,
		Blocker:    blocker,
		Notifier:   notifier,
	}
}

// Publish writes the changeset and pushes the blocked set. The store write
// is the atomic unit: if it fails nothing else happens and the pass reports
// an error. A blocker failure is logged and left for the next pass; the
// blocker is external and retrying it synchronously gains nothing.
func (s *EnforcementService) Publish(
	ctx context.Context,
	outcome ReconcileOutcome,
	transition *ScheduleTransition,
) error {
	if !outcome.Changeset.Empty() {
		if err := s.AppRecords.BulkUpsert(ctx, outcome.Changeset.Upserts); err != nil {
			return fmt.Errorf("writing changeset: %w", err)
		}
		log.Printf("[SYNC] Wrote %d records (%d implicit resets)",
			len(outcome.Changeset.Upserts), len(outcome.Changeset.ImplicitResets))
	}

	blocked := outcome.BlockedSet()
	if err := s.Blocker.SetBlockedApps(ctx, blocked); err != nil {
		log.Printf("[BLOCK] Blocker unreachable, will retry next pass: %v", err)
	}
	if err := s.LocalState.SaveBlockedSet(blocked); err != nil {
		log.Printf("[BLOCK] Failed to persist blocked set locally: %v", err)
	}

	s.notify(ctx, outcome, transition)
	return nil
}

func (s *EnforcementService) notify(ctx context.Context, outcome ReconcileOutcome, transition *ScheduleTransition) {
	if s.Notifier == nil {
		return
	}

	if transition != nil {
		title := "Schedule ended"
		body := transition.PreviousName + " is over"
		if transition.CurrentID != "" {
			title = "Schedule started"
			body = transition.CurrentName + " is now active"
		}
		if err := s.Notifier.NotifyParent(ctx, title, body, map[string]string{
			"type":        "schedule_transition",
			"schedule_id": transition.CurrentID,
		}); err != nil {
			log.Printf("[FCM] Schedule transition notification failed: %v", err)
		}
	}

	// Only limit- and category-trips are news to the parent; manual blocks
	// and schedule blocks are their own doing.
	var tripped []string
	for _, rec := range outcome.NewlyBlocked {
		switch outcome.Reasons[rec.AppPackage] {
		case models.BlockReasonLimit, models.BlockReasonCategory:
			tripped = append(tripped, rec.DisplayName)
		}
	}
	if len(tripped) == 0 {
		return
	}

	body := strings.Join(tripped, ", ") + " reached the daily limit"
	if err := s.Notifier.NotifyParent(ctx, "Limit reached", body, map[string]string{
		"type":  "limit_reached",
		"count": strconv.Itoa(len(tripped)),
	}); err != nil {
		log.Printf("[FCM] Limit notification failed: %v", err)
	}
}
