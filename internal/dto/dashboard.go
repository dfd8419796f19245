package dto

import "github.com/halcyonlab/agenda-api/internal/models"

// DashboardResponse is the composed landing-page payload.
type DashboardResponse struct {
	UpcomingEvents  []models.CalendarEvent `json:"upcoming_events"`
	Goals           []GoalProgress         `json:"goals"`
	WeekBusyMinutes int                    `json:"week_busy_minutes"`
}
