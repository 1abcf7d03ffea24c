package schedule

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"loadshed-console-go/pkg/model"
)

// Notifier is told about newly published schedules. Implementations must
// not block the publish path.
type Notifier interface {
	SchedulePublished(record model.ScheduleRecord)
}

// ScheduleService handles schedule record operations
type ScheduleService struct {
	db       *sqlx.DB
	notifier Notifier
}

// NewScheduleService creates a new schedule service
func NewScheduleService(db *sqlx.DB, notifier Notifier) *ScheduleService {
	return &ScheduleService{db: db, notifier: notifier}
}

// Submit freezes the working session list into one schedule record
func (s *ScheduleService) Submit(regionID, suburbID string, sessions []model.ScheduleSession) (*model.ScheduleRecord, error) {
	if regionID == "" || suburbID == "" || len(sessions) == 0 {
		return nil, ErrIncomplete
	}

	record := model.ScheduleRecord{
		ID:        uuid.NewString(),
		SuburbID:  suburbID,
		RegionID:  regionID,
		Sessions:  sessions,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(`
        INSERT INTO schedules (id, suburb_id, region_id, sessions, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `, record.ID, record.SuburbID, record.RegionID, record.Sessions, record.CreatedAt)
	if err != nil {
		return nil, err
	}

	s.recordActivity("schedule", fmt.Sprintf("New schedule with %d sessions added", len(sessions)))

	if s.notifier != nil {
		s.notifier.SchedulePublished(record)
	}

	return &record, nil
}

// SessionsForSuburb returns every session of every record referencing the
// suburb, flattened and ordered by weekday then start time.
func (s *ScheduleService) SessionsForSuburb(suburbID string) ([]model.ScheduleEntry, error) {
	records := []model.ScheduleRecord{}
	err := s.db.Select(&records, `
        SELECT id, suburb_id, region_id, sessions, created_at
        FROM schedules
        WHERE suburb_id = $1
    `, suburbID)
	if err != nil {
		return nil, err
	}

	entries := Flatten(records)
	SortEntries(entries)
	return entries, nil
}

// Delete removes a whole schedule record, i.e. every session saved in that
// batch. Single sessions cannot be deleted on their own.
func (s *ScheduleService) Delete(recordID string) error {
	var suburbID string
	err := s.db.Get(&suburbID, "SELECT suburb_id FROM schedules WHERE id = $1", recordID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	_, err = s.db.Exec("DELETE FROM schedules WHERE id = $1", recordID)
	if err != nil {
		return err
	}

	s.recordActivity("schedule", "Schedule deleted")

	return nil
}

// ListAll returns every schedule record, newest first
func (s *ScheduleService) ListAll() ([]model.ScheduleRecord, error) {
	records := []model.ScheduleRecord{}
	err := s.db.Select(&records, `
        SELECT id, suburb_id, region_id, sessions, created_at
        FROM schedules
        ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CountActive returns how many records have a session covering the instant
func (s *ScheduleService) CountActive(at time.Time) (int, error) {
	records, err := s.ListAll()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, rec := range records {
		if RecordActiveAt(rec, at) {
			count++
		}
	}
	return count, nil
}

func (s *ScheduleService) recordActivity(kind, message string) {
	_, err := s.db.Exec(`
        INSERT INTO activities (type, message, created_at)
        VALUES ($1, $2, $3)
    `, kind, message, time.Now().UTC())
	if err != nil {
		log.Printf("Failed to record activity: %v", err)
	}
}
