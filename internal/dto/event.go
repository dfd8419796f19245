package dto

import "time"

// CreateEventRequest describes a new personal event.
type CreateEventRequest struct {
	Title    string    `json:"title" validate:"required"`
	Start    time.Time `json:"start" validate:"required"`
	End      time.Time `json:"end" validate:"required"`
	Location string    `json:"location"`
	Category string    `json:"category"`
	GoalRef  *string   `json:"goal_ref"`
}

// UpdateEventRequest describes changes to a personal event.
type UpdateEventRequest struct {
	Title    string    `json:"title" validate:"required"`
	Start    time.Time `json:"start" validate:"required"`
	End      time.Time `json:"end" validate:"required"`
	Location string    `json:"location"`
	Category string    `json:"category"`
	GoalRef  *string   `json:"goal_ref"`
}
