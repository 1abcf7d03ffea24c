package dashboard

import (
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"loadshed-console-go/internal/schedule"
	"loadshed-console-go/pkg/model"
)

// DashboardService aggregates console statistics
type DashboardService struct {
	db        *sqlx.DB
	schedules *schedule.ScheduleService

	// Last-seen totals for the one-step deltas. Overwritten on every
	// stats fetch and lost on restart, so the first fetch after a reload
	// compares against zero.
	mu   sync.Mutex
	prev totals
}

type totals struct {
	Regions      int
	Suburbs      int
	Schedules    int
	ActiveAlerts int
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *sqlx.DB, schedules *schedule.ScheduleService) *DashboardService {
	return &DashboardService{db: db, schedules: schedules}
}

// Stats returns the four tracked counters with their change since the
// previous fetch.
func (s *DashboardService) Stats(now time.Time) (*model.DashboardStats, error) {
	var cur totals
	if err := s.db.Get(&cur.Regions, "SELECT COUNT(*) FROM regions"); err != nil {
		return nil, err
	}
	if err := s.db.Get(&cur.Suburbs, "SELECT COUNT(*) FROM suburbs"); err != nil {
		return nil, err
	}
	if err := s.db.Get(&cur.Schedules, "SELECT COUNT(*) FROM schedules"); err != nil {
		return nil, err
	}

	active, err := s.schedules.CountActive(now)
	if err != nil {
		return nil, err
	}
	cur.ActiveAlerts = active

	prev := s.advance(cur)

	stats := &model.DashboardStats{
		Regions:      model.StatMetric{Title: "Total Regions", Value: cur.Regions, Change: cur.Regions - prev.Regions},
		Suburbs:      model.StatMetric{Title: "Total Suburbs", Value: cur.Suburbs, Change: cur.Suburbs - prev.Suburbs},
		Schedules:    model.StatMetric{Title: "Active Schedules", Value: cur.Schedules, Change: cur.Schedules - prev.Schedules},
		ActiveAlerts: model.StatMetric{Title: "Total Alerts", Value: cur.ActiveAlerts, Change: cur.ActiveAlerts - prev.ActiveAlerts},
	}
	return stats, nil
}

// advance swaps in the freshly observed totals and returns what they are
// compared against.
func (s *DashboardService) advance(cur totals) totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.prev
	s.prev = cur
	return prev
}

// WeeklyActivity buckets schedule creation and active events over the
// trailing 7 calendar days including today, oldest first.
func (s *DashboardService) WeeklyActivity(now time.Time) ([]model.ActivityPoint, error) {
	records, err := s.schedules.ListAll()
	if err != nil {
		return nil, err
	}
	return BucketWeek(records, now), nil
}

// BucketWeek computes the 7-day series from a record set. Split out so the
// bucketing rules are testable without a database.
func BucketWeek(records []model.ScheduleRecord, now time.Time) []model.ActivityPoint {
	points := make([]model.ActivityPoint, 7)
	dayStart := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}

	for i := 0; i < 7; i++ {
		day := dayStart(now.AddDate(0, 0, i-6))
		next := day.AddDate(0, 0, 1)
		point := model.ActivityPoint{Label: day.Format("Mon")}

		for _, rec := range records {
			created := rec.CreatedAt.In(now.Location())
			if !created.Before(day) && created.Before(next) {
				point.Schedules++
			}
			// A record contributes one active event per day its
			// sessions cover.
			for _, sess := range rec.Sessions {
				if sess.Day == day.Weekday().String() {
					point.ActiveEvents++
					break
				}
			}
		}

		points[i] = point
	}
	return points
}

// RecentActivities returns the latest feed entries, newest first
func (s *DashboardService) RecentActivities(limit int) ([]model.ActivityEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	entries := []model.ActivityEntry{}
	err := s.db.Select(&entries, `
        SELECT id, type, message, created_at
        FROM activities
        ORDER BY created_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// SystemMetrics returns the gauges shown on the system status panel
func (s *DashboardService) SystemMetrics() ([]model.SystemMetric, error) {
	metrics := []model.SystemMetric{}
	err := s.db.Select(&metrics, `
        SELECT name, value, status, updated_at
        FROM system_metrics
        ORDER BY name ASC
    `)
	if err != nil {
		return nil, err
	}
	return metrics, nil
}
