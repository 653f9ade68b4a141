package models

import "time"

// MaxWeeklyHours caps the summed hours of one user's reports within an ISO week.
const MaxWeeklyHours = 45

type Report struct {
	ID         string    `json:"_id"`
	UserID     string    `json:"user"`
	ProjectID  string    `json:"project"`
	WeekNumber int       `json:"weekNumber"`
	Hours      float64   `json:"hours"`
	Year       int       `json:"year"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TotalHours sums the hours of the given reports.
func TotalHours(reports []Report) float64 {
	var sum float64
	for _, r := range reports {
		sum += r.Hours
	}
	return sum
}
