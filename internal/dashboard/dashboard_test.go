package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadshed-console-go/pkg/model"
)

func TestBucketWeek(t *testing.T) {
	// 2026-08-30 is a Sunday
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)

	t.Run("produces seven points oldest to newest ending today", func(t *testing.T) {
		points := BucketWeek(nil, now)

		require.Len(t, points, 7)
		assert.Equal(t, "Mon", points[0].Label)
		assert.Equal(t, "Sun", points[6].Label)
		for _, p := range points {
			assert.Zero(t, p.Schedules)
			assert.Zero(t, p.ActiveEvents)
		}
	})

	t.Run("counts schedules on their creation day", func(t *testing.T) {
		records := []model.ScheduleRecord{
			{ID: "a", CreatedAt: now.AddDate(0, 0, -6)},                    // Monday
			{ID: "b", CreatedAt: now.AddDate(0, 0, -6).Add(2 * time.Hour)}, // Monday
			{ID: "c", CreatedAt: now},                                      // Sunday (today)
		}

		points := BucketWeek(records, now)

		assert.Equal(t, 2, points[0].Schedules)
		assert.Equal(t, 1, points[6].Schedules)
		for i := 1; i < 6; i++ {
			assert.Zero(t, points[i].Schedules)
		}
	})

	t.Run("ignores records created before the window", func(t *testing.T) {
		records := []model.ScheduleRecord{
			{ID: "old", CreatedAt: now.AddDate(0, 0, -8)},
		}

		points := BucketWeek(records, now)
		for _, p := range points {
			assert.Zero(t, p.Schedules)
		}
	})

	t.Run("a record contributes one active event per covered weekday", func(t *testing.T) {
		records := []model.ScheduleRecord{
			{
				ID:        "a",
				CreatedAt: now,
				Sessions: model.SessionList{
					{Day: "Wednesday", StartTime: "08:00", EndTime: "10:00"},
					{Day: "Wednesday", StartTime: "18:00", EndTime: "20:00"},
					{Day: "Sunday", StartTime: "06:00", EndTime: "08:00"},
				},
			},
		}

		points := BucketWeek(records, now)

		assert.Equal(t, 1, points[2].ActiveEvents) // Wednesday, deduplicated per record
		assert.Equal(t, 1, points[6].ActiveEvents) // Sunday
		assert.Zero(t, points[0].ActiveEvents)
	})
}

func TestDeltaBookkeeping(t *testing.T) {
	t.Run("first observation compares against zero", func(t *testing.T) {
		s := &DashboardService{}
		cur := totals{Regions: 4, Suburbs: 12, Schedules: 3, ActiveAlerts: 1}

		prev := s.advance(cur)

		assert.Equal(t, totals{}, prev)
		assert.Equal(t, 4, cur.Regions-prev.Regions)
		assert.Equal(t, 12, cur.Suburbs-prev.Suburbs)
	})

	t.Run("second observation yields the one-step delta", func(t *testing.T) {
		s := &DashboardService{}
		s.advance(totals{Regions: 4, Suburbs: 12, Schedules: 3, ActiveAlerts: 1})

		cur := totals{Regions: 5, Suburbs: 12, Schedules: 2, ActiveAlerts: 3}
		prev := s.advance(cur)

		assert.Equal(t, 1, cur.Regions-prev.Regions)
		assert.Equal(t, 0, cur.Suburbs-prev.Suburbs)
		assert.Equal(t, -1, cur.Schedules-prev.Schedules)
		assert.Equal(t, 2, cur.ActiveAlerts-prev.ActiveAlerts)
	})
}
