package schedule

import (
	"errors"
	"sort"
	"time"

	"loadshed-console-go/pkg/model"
)

// Sentinel errors surfaced to the handler layer
var (
	ErrMissingField = errors.New("start and end times are required")
	ErrInvalidRange = errors.New("end time must be after start time")
	ErrBadTime      = errors.New("time must be HH:MM in 24h format")
	ErrBadDay       = errors.New("unknown day of week")
	ErrBadPeriod    = errors.New("period must be morning, afternoon or evening")
	ErrBadLevel     = errors.New("level must be between 1 and 4")
	ErrNotFound     = errors.New("schedule not found")
	ErrIncomplete   = errors.New("region, suburb and at least one session are required")
)

// Days is the fixed weekday sequence used for ordering sessions
var Days = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

var dayIndex = func() map[string]int {
	m := make(map[string]int, len(Days))
	for i, d := range Days {
		m[d] = i
	}
	return m
}()

var validPeriods = map[string]bool{
	"morning":   true,
	"afternoon": true,
	"evening":   true,
}

// ValidateSession checks one session before it joins the working set.
// Equal start and end times are rejected: an outage must have nonzero
// duration.
func ValidateSession(req model.SessionAddRequest) error {
	if req.StartTime == "" || req.EndTime == "" {
		return ErrMissingField
	}
	if !validClock(req.StartTime) || !validClock(req.EndTime) {
		return ErrBadTime
	}
	if _, ok := dayIndex[req.Day]; !ok {
		return ErrBadDay
	}
	if !validPeriods[req.Period] {
		return ErrBadPeriod
	}
	if req.Level < model.MinLevel || req.Level > model.MaxLevel {
		return ErrBadLevel
	}
	// Fixed-width zero-padded clock strings compare correctly as strings
	if req.StartTime >= req.EndTime {
		return ErrInvalidRange
	}
	return nil
}

func validClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// SortEntries orders flattened sessions by weekday in the fixed Monday-first
// sequence, then by start time. The sort is stable.
func SortEntries(entries []model.ScheduleEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := dayIndex[entries[i].Day], dayIndex[entries[j].Day]
		if di != dj {
			return di < dj
		}
		return entries[i].StartTime < entries[j].StartTime
	})
}

// Flatten expands every record's embedded sessions into individual entries
// tagged with the parent record id, so the caller knows which record a
// displayed row belongs to.
func Flatten(records []model.ScheduleRecord) []model.ScheduleEntry {
	entries := []model.ScheduleEntry{}
	for _, rec := range records {
		for _, sess := range rec.Sessions {
			entries = append(entries, model.ScheduleEntry{
				ScheduleID: rec.ID,
				Day:        sess.Day,
				StartTime:  sess.StartTime,
				EndTime:    sess.EndTime,
				Period:     sess.Period,
				Level:      sess.Level,
			})
		}
	}
	return entries
}

// SessionActiveAt reports whether the session covers the given instant:
// matching weekday and start <= clock <= end.
func SessionActiveAt(sess model.ScheduleSession, at time.Time) bool {
	if sess.Day != at.Weekday().String() {
		return false
	}
	clock := at.Format("15:04")
	return sess.StartTime <= clock && clock <= sess.EndTime
}

// RecordActiveAt reports whether any embedded session is active at the
// given instant.
func RecordActiveAt(rec model.ScheduleRecord, at time.Time) bool {
	for _, sess := range rec.Sessions {
		if SessionActiveAt(sess, at) {
			return true
		}
	}
	return false
}
