package dto

// GoalProgress reports effort against a commitment's lifetime expectation.
// DaysLeft goes negative once the target date has passed; that is the overdue
// signal and is deliberately not clamped.
type GoalProgress struct {
	CommitmentID         string  `json:"commitment_id"`
	Title                string  `json:"title"`
	TotalMinutes         int     `json:"total_minutes"`
	WeekMinutes          int     `json:"week_minutes"`
	ExpectedTotalMinutes float64 `json:"expected_total_minutes"`
	ProgressPercent      int     `json:"progress_percent"`
	DaysLeft             int     `json:"days_left"`
	Status               string  `json:"status"`
}
