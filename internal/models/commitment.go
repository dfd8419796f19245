package models

import "time"

// CommitmentStatus is the lifecycle state of a long-term goal.
type CommitmentStatus string

const (
	CommitmentActive    CommitmentStatus = "active"
	CommitmentPaused    CommitmentStatus = "paused"
	CommitmentCompleted CommitmentStatus = "completed"
)

// Commitment is a long-term goal with a weekly time-effort target.
// WeeklyCommitmentHours of zero means "no target"; progress math must treat
// it as unbounded rather than divide by zero.
type Commitment struct {
	ID                    string           `db:"id" json:"id"`
	UserID                string           `db:"user_id" json:"-"`
	Title                 string           `db:"title" json:"title"`
	WeeklyCommitmentHours float64          `db:"weekly_commitment_hours" json:"weekly_commitment_hours"`
	StartDate             time.Time        `db:"start_date" json:"start_date"`
	TargetDate            *time.Time       `db:"target_date" json:"target_date,omitempty"`
	Status                CommitmentStatus `db:"status" json:"status"`
	CreatedAt             time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time        `db:"updated_at" json:"updated_at"`
}

// EffectiveStart is the instant tracking begins: the explicit start date, or
// the creation time when none was set.
func (c Commitment) EffectiveStart() time.Time {
	if !c.StartDate.IsZero() {
		return c.StartDate
	}
	return c.CreatedAt
}

// EffectiveTarget is the deadline, falling back to the given horizon after
// the effective start when no target date was set.
func (c Commitment) EffectiveTarget(horizon time.Duration) time.Time {
	if c.TargetDate != nil && !c.TargetDate.IsZero() {
		return *c.TargetDate
	}
	return c.EffectiveStart().Add(horizon)
}
