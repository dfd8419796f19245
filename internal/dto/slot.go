package dto

import "time"

// SlotSearchRequest asks for the earliest free interval of the given length.
// Zero values for the window fields pick up the configured defaults.
type SlotSearchRequest struct {
	DurationMin  int       `json:"duration_min" validate:"required,gt=0"`
	StartFrom    time.Time `json:"start_from"`
	Days         int       `json:"days" validate:"gte=0,lte=366"`
	DayStartHour int       `json:"day_start_hour" validate:"gte=0,lte=23"`
	DayEndHour   int       `json:"day_end_hour" validate:"gte=0,lte=24"`
}

// SlotResponse is a proposed interval. Absence of a fit is represented by a
// null data payload, not an error.
type SlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
