package models

// Changeset is the output of one reconciliation pass. It is ephemeral and
// fully computed in memory before anything is written, so a crashed pass
// leaves the store untouched.
type Changeset struct {
	// Upserts holds every record whose observable fields changed, including
	// implicit resets. Written in one bulk operation.
	Upserts []AppRecord

	// ImplicitResets lists apps that were present in the persisted state but
	// absent from the current window, and therefore got their usage zeroed.
	// Each listed app also appears in Upserts.
	ImplicitResets []string
}

// Empty reports whether applying the changeset would be a no-op.
func (c Changeset) Empty() bool {
	return len(c.Upserts) == 0
}
