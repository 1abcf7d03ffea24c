package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadshed-console-go/pkg/model"
)

func validReq() model.SessionAddRequest {
	return model.SessionAddRequest{
		Day:       "Friday",
		StartTime: "09:00",
		EndTime:   "11:00",
		Period:    "morning",
		Level:     2,
	}
}

func TestValidateSession(t *testing.T) {
	t.Run("should accept a valid session", func(t *testing.T) {
		assert.NoError(t, ValidateSession(validReq()))
	})

	t.Run("should reject missing start time", func(t *testing.T) {
		req := validReq()
		req.StartTime = ""
		assert.ErrorIs(t, ValidateSession(req), ErrMissingField)
	})

	t.Run("should reject missing end time", func(t *testing.T) {
		req := validReq()
		req.EndTime = ""
		assert.ErrorIs(t, ValidateSession(req), ErrMissingField)
	})

	t.Run("should reject end before start", func(t *testing.T) {
		req := validReq()
		req.StartTime = "10:00"
		req.EndTime = "09:00"
		assert.ErrorIs(t, ValidateSession(req), ErrInvalidRange)
	})

	t.Run("should reject zero-duration session", func(t *testing.T) {
		req := validReq()
		req.StartTime = "09:00"
		req.EndTime = "09:00"
		assert.ErrorIs(t, ValidateSession(req), ErrInvalidRange)
	})

	t.Run("should reject malformed clock strings", func(t *testing.T) {
		req := validReq()
		req.StartTime = "9:00"
		assert.ErrorIs(t, ValidateSession(req), ErrBadTime)

		req = validReq()
		req.EndTime = "25:00"
		assert.ErrorIs(t, ValidateSession(req), ErrBadTime)
	})

	t.Run("should reject unknown day", func(t *testing.T) {
		req := validReq()
		req.Day = "Funday"
		assert.ErrorIs(t, ValidateSession(req), ErrBadDay)
	})

	t.Run("should reject unknown period", func(t *testing.T) {
		req := validReq()
		req.Period = "midnight"
		assert.ErrorIs(t, ValidateSession(req), ErrBadPeriod)
	})

	t.Run("should reject level outside 1..4", func(t *testing.T) {
		req := validReq()
		req.Level = 0
		assert.ErrorIs(t, ValidateSession(req), ErrBadLevel)

		req = validReq()
		req.Level = 5
		assert.ErrorIs(t, ValidateSession(req), ErrBadLevel)
	})
}

func TestSortEntries(t *testing.T) {
	t.Run("should order by weekday then start time", func(t *testing.T) {
		entries := []model.ScheduleEntry{
			{ScheduleID: "a", Day: "Wednesday", StartTime: "09:00", EndTime: "11:00"},
			{ScheduleID: "b", Day: "Monday", StartTime: "14:00", EndTime: "15:00"},
			{ScheduleID: "c", Day: "Monday", StartTime: "08:00", EndTime: "09:00"},
		}

		SortEntries(entries)

		require.Len(t, entries, 3)
		assert.Equal(t, "Monday", entries[0].Day)
		assert.Equal(t, "08:00", entries[0].StartTime)
		assert.Equal(t, "Monday", entries[1].Day)
		assert.Equal(t, "14:00", entries[1].StartTime)
		assert.Equal(t, "Wednesday", entries[2].Day)
	})

	t.Run("should place Sunday last", func(t *testing.T) {
		entries := []model.ScheduleEntry{
			{Day: "Sunday", StartTime: "06:00"},
			{Day: "Saturday", StartTime: "22:00"},
			{Day: "Monday", StartTime: "23:00"},
		}

		SortEntries(entries)

		assert.Equal(t, "Monday", entries[0].Day)
		assert.Equal(t, "Saturday", entries[1].Day)
		assert.Equal(t, "Sunday", entries[2].Day)
	})

	t.Run("sorted output is non-decreasing", func(t *testing.T) {
		entries := []model.ScheduleEntry{
			{Day: "Friday", StartTime: "10:00"},
			{Day: "Tuesday", StartTime: "18:00"},
			{Day: "Friday", StartTime: "04:00"},
			{Day: "Monday", StartTime: "12:00"},
			{Day: "Tuesday", StartTime: "06:00"},
			{Day: "Monday", StartTime: "12:00"},
		}

		SortEntries(entries)

		index := func(day string) int {
			for i, d := range Days {
				if d == day {
					return i
				}
			}
			return -1
		}
		for i := 1; i < len(entries); i++ {
			prev, cur := entries[i-1], entries[i]
			require.LessOrEqual(t, index(prev.Day), index(cur.Day))
			if prev.Day == cur.Day {
				require.LessOrEqual(t, prev.StartTime, cur.StartTime)
			}
		}
	})
}

func TestFlatten(t *testing.T) {
	t.Run("should tag every session with its parent record id", func(t *testing.T) {
		records := []model.ScheduleRecord{
			{
				ID: "rec-1",
				Sessions: model.SessionList{
					{Day: "Monday", StartTime: "08:00", EndTime: "10:00", Level: 1},
					{Day: "Tuesday", StartTime: "12:00", EndTime: "14:00", Level: 2},
				},
			},
			{
				ID: "rec-2",
				Sessions: model.SessionList{
					{Day: "Monday", StartTime: "16:00", EndTime: "18:00", Level: 3},
				},
			},
		}

		entries := Flatten(records)

		require.Len(t, entries, 3)
		ids := map[string]int{}
		for _, e := range entries {
			ids[e.ScheduleID]++
		}
		assert.Equal(t, 2, ids["rec-1"])
		assert.Equal(t, 1, ids["rec-2"])
	})

	t.Run("deleting a record removes all of its flattened rows", func(t *testing.T) {
		records := []model.ScheduleRecord{
			{ID: "keep", Sessions: model.SessionList{{Day: "Monday", StartTime: "08:00", EndTime: "10:00"}}},
			{ID: "gone", Sessions: model.SessionList{
				{Day: "Tuesday", StartTime: "08:00", EndTime: "10:00"},
				{Day: "Friday", StartTime: "18:00", EndTime: "20:00"},
			}},
		}

		// Simulate the record-granularity delete and re-fetch
		remaining := records[:1]
		entries := Flatten(remaining)

		for _, e := range entries {
			assert.NotEqual(t, "gone", e.ScheduleID)
		}
	})
}

func TestSessionActiveAt(t *testing.T) {
	// 2026-08-31 is a Monday
	monday := time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC)

	t.Run("active inside the window on the right day", func(t *testing.T) {
		sess := model.ScheduleSession{Day: "Monday", StartTime: "09:00", EndTime: "11:00"}
		assert.True(t, SessionActiveAt(sess, monday))
	})

	t.Run("inactive on another day", func(t *testing.T) {
		sess := model.ScheduleSession{Day: "Tuesday", StartTime: "09:00", EndTime: "11:00"}
		assert.False(t, SessionActiveAt(sess, monday))
	})

	t.Run("inactive outside the window", func(t *testing.T) {
		sess := model.ScheduleSession{Day: "Monday", StartTime: "10:00", EndTime: "11:00"}
		assert.False(t, SessionActiveAt(sess, monday))
	})

	t.Run("boundaries are inclusive", func(t *testing.T) {
		atStart := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
		sess := model.ScheduleSession{Day: "Monday", StartTime: "09:00", EndTime: "11:00"}
		assert.True(t, SessionActiveAt(sess, atStart))
	})

	t.Run("record is active when any session matches", func(t *testing.T) {
		rec := model.ScheduleRecord{Sessions: model.SessionList{
			{Day: "Sunday", StartTime: "01:00", EndTime: "02:00"},
			{Day: "Monday", StartTime: "09:00", EndTime: "10:00"},
		}}
		assert.True(t, RecordActiveAt(rec, monday))
	})
}
