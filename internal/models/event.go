package models

import "time"

// EventOrigin marks which source materialized an event. Provenance, not
// ownership: external events are recomputed on every feed fetch and are not
// individually editable.
type EventOrigin string

const (
	OriginExternal EventOrigin = "external"
	OriginPersonal EventOrigin = "personal"
)

// Default display categories assigned when a source supplies none.
const (
	CategorySchool   = "School"
	CategoryPersonal = "Personal"
)

// CalendarEvent is a single entry on a user's merged timeline.
type CalendarEvent struct {
	ID       string      `db:"id" json:"id"`
	UserID   string      `db:"user_id" json:"-"`
	Title    string      `db:"title" json:"title"`
	Start    time.Time   `db:"start_at" json:"start"`
	End      time.Time   `db:"end_at" json:"end"`
	Origin   EventOrigin `db:"origin" json:"origin"`
	Location string      `db:"location" json:"location,omitempty"`
	Category string      `db:"category" json:"category"`
	GoalRef  *string     `db:"goal_ref" json:"goal_ref,omitempty"`

	// Persistence timestamps are only meaningful for personal events;
	// external events are ephemeral and carry zero values here.
	CreatedAt time.Time `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// DurationMinutes returns the event length in whole minutes.
func (e CalendarEvent) DurationMinutes() int {
	return int(e.End.Sub(e.Start) / time.Minute)
}

// Overlaps reports whether the event intersects the half-open interval
// [start, end).
func (e CalendarEvent) Overlaps(start, end time.Time) bool {
	return e.Start.Before(end) && e.End.After(start)
}
