package model

import "time"

// StatMetric is one dashboard counter with its one-step delta. Change is
// measured against the value seen on the previous stats fetch, not against
// any persisted history.
type StatMetric struct {
	Title  string `json:"title"`
	Value  int    `json:"value"`
	Change int    `json:"change"`
}

// DashboardStats groups the four tracked counters
type DashboardStats struct {
	Regions      StatMetric `json:"regions"`
	Suburbs      StatMetric `json:"suburbs"`
	Schedules    StatMetric `json:"schedules"`
	ActiveAlerts StatMetric `json:"active_alerts"`
}

// ActivityPoint is one day in the trailing 7-day schedule activity series
type ActivityPoint struct {
	Label        string `json:"label"` // abbreviated weekday, e.g. "Mon"
	Schedules    int    `json:"schedules"`
	ActiveEvents int    `json:"active_events"`
}

// ActivityEntry is one row of the recent-activity feed
type ActivityEntry struct {
	ID        int       `db:"id" json:"id"`
	Type      string    `db:"type" json:"type"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SystemMetric is one gauge on the system status panel
type SystemMetric struct {
	Name      string    `db:"name" json:"name"`
	Value     string    `db:"value" json:"value"`
	Status    string    `db:"status" json:"status"` // normal, warning
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
