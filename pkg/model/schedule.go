package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Outage severity levels run from stage 1 (mildest) to stage 4
const (
	MinLevel = 1
	MaxLevel = 4
)

// MaxStagedSuburbs caps how many suburbs can be staged in one batch
const MaxStagedSuburbs = 15

// ScheduleSession is one scheduled outage window. Times are zero-padded
// 24h "HH:MM" strings, so lexicographic comparison matches chronological
// order.
type ScheduleSession struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Period    string `json:"period"` // morning, afternoon, evening
	Level     int    `json:"level"`
	Day       string `json:"day"` // Monday..Sunday
}

// SessionList stores embedded sessions as a JSONB column
type SessionList []ScheduleSession

// Value implements driver.Valuer
func (l SessionList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *SessionList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	}
	return errors.New("unsupported type for SessionList")
}

// ScheduleRecord aggregates all sessions submitted together for one suburb
// in one save operation. Deletion is all-or-nothing at record granularity.
type ScheduleRecord struct {
	ID        string      `db:"id" json:"id"`
	SuburbID  string      `db:"suburb_id" json:"suburb_id"`
	RegionID  string      `db:"region_id" json:"region_id"`
	Sessions  SessionList `db:"sessions" json:"sessions"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}

// ScheduleEntry is a single session flattened out of its parent record for
// display. ScheduleID identifies the parent record so the row can be deleted
// at record granularity.
type ScheduleEntry struct {
	ScheduleID string `json:"schedule_id"`
	Day        string `json:"day"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Period     string `json:"period"`
	Level      int    `json:"level"`
}

// SessionAddRequest adds one session to the working set
type SessionAddRequest struct {
	Day       string `json:"day" binding:"required"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Period    string `json:"period" binding:"required"`
	Level     int    `json:"level" binding:"required,min=1,max=4"`
}
