package metrics

import (
	"log"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"loadshed-console-go/internal/schedule"
)

// Collector periodically snapshots console health figures into the
// system_metrics table so the dashboard status panel has fresh numbers even
// when nobody has touched the data recently.
type Collector struct {
	db        *sqlx.DB
	schedules *schedule.ScheduleService
	interval  time.Duration
}

// NewCollector creates a new metrics collector
func NewCollector(db *sqlx.DB, schedules *schedule.ScheduleService) *Collector {
	return &Collector{
		db:        db,
		schedules: schedules,
		interval:  5 * time.Minute,
	}
}

// RunScheduledSnapshots loops forever taking snapshots; run it in a
// goroutine from main.
func (c *Collector) RunScheduledSnapshots() {
	log.Printf("Starting metrics snapshots every %s", c.interval)
	c.snapshot()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for range ticker.C {
		c.snapshot()
	}
}

func (c *Collector) snapshot() {
	now := time.Now()

	var schedules int
	if err := c.db.Get(&schedules, "SELECT COUNT(*) FROM schedules"); err != nil {
		log.Printf("Metrics snapshot failed counting schedules: %v", err)
		return
	}

	active, err := c.schedules.CountActive(now)
	if err != nil {
		log.Printf("Metrics snapshot failed counting active schedules: %v", err)
		return
	}

	status := "normal"
	if schedules > 0 && active*2 >= schedules {
		status = "warning"
	}

	c.upsert("Stored Schedules", strconv.Itoa(schedules), "normal", now)
	c.upsert("Active Outages", strconv.Itoa(active), status, now)
}

func (c *Collector) upsert(name, value, status string, at time.Time) {
	_, err := c.db.Exec(`
        INSERT INTO system_metrics (name, value, status, updated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (name) DO UPDATE
        SET value = EXCLUDED.value,
            status = EXCLUDED.status,
            updated_at = EXCLUDED.updated_at
    `, name, value, status, at.UTC())
	if err != nil {
		log.Printf("Failed to store system metric %q: %v", name, err)
	}
}
