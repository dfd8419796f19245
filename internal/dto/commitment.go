package dto

import "time"

// CreateCommitmentRequest registers a new long-term goal.
type CreateCommitmentRequest struct {
	Title                 string     `json:"title" validate:"required"`
	WeeklyCommitmentHours float64    `json:"weekly_commitment_hours" validate:"gte=0"`
	StartDate             *time.Time `json:"start_date"`
	TargetDate            *time.Time `json:"target_date"`
}

// UpdateCommitmentRequest modifies a goal.
type UpdateCommitmentRequest struct {
	Title                 string     `json:"title" validate:"required"`
	WeeklyCommitmentHours float64    `json:"weekly_commitment_hours" validate:"gte=0"`
	StartDate             *time.Time `json:"start_date"`
	TargetDate            *time.Time `json:"target_date"`
	Status                string     `json:"status" validate:"required,oneof=active paused completed"`
}
