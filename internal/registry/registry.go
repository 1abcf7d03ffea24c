package registry

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"loadshed-console-go/pkg/model"
)

// Sentinel errors surfaced to the handler layer
var (
	ErrDuplicateName    = errors.New("name already exists")
	ErrEmptyName        = errors.New("name must not be empty")
	ErrNotFound         = errors.New("not found")
	ErrNoRegionSelected = errors.New("no region selected")
	ErrEmptyBatch       = errors.New("suburb batch is empty")
	ErrBatchTooLarge    = fmt.Errorf("suburb batch exceeds %d entries", model.MaxStagedSuburbs)
)

// RegistryService handles region and suburb operations
type RegistryService struct {
	db *sqlx.DB
}

// NewRegistryService creates a new registry service
func NewRegistryService(db *sqlx.DB) *RegistryService {
	return &RegistryService{db: db}
}

// ListRegions returns all regions, newest first
func (s *RegistryService) ListRegions() ([]model.Region, error) {
	regions := []model.Region{}
	err := s.db.Select(&regions, `
        SELECT id, name, created_at
        FROM regions
        ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, err
	}
	return regions, nil
}

// AddRegion creates a region after a case-insensitive name uniqueness check
func (s *RegistryService) AddRegion(name string) (*model.Region, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	var count int
	err := s.db.Get(&count, "SELECT COUNT(*) FROM regions WHERE LOWER(name) = LOWER($1)", name)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateName
	}

	region := model.Region{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.Exec(`
        INSERT INTO regions (id, name, created_at)
        VALUES ($1, $2, $3)
    `, region.ID, region.Name, region.CreatedAt)
	if err != nil {
		return nil, err
	}

	s.recordActivity("region", fmt.Sprintf("New region %q added", region.Name))

	return &region, nil
}

// DeleteRegion removes a region by id. Suburbs and schedules referencing the
// region are left in place (no cascade); callers confirm before invoking.
func (s *RegistryService) DeleteRegion(regionID string) error {
	var name string
	err := s.db.Get(&name, "SELECT name FROM regions WHERE id = $1", regionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	_, err = s.db.Exec("DELETE FROM regions WHERE id = $1", regionID)
	if err != nil {
		return err
	}

	s.recordActivity("region", fmt.Sprintf("Region %q deleted", name))

	return nil
}

// ListSuburbsForRegion returns all suburbs of one region. An empty region id
// yields an empty result, not an error.
func (s *RegistryService) ListSuburbsForRegion(regionID string) ([]model.Suburb, error) {
	suburbs := []model.Suburb{}
	if regionID == "" {
		return suburbs, nil
	}

	err := s.db.Select(&suburbs, `
        SELECT id, name, region_id, created_at
        FROM suburbs
        WHERE region_id = $1
        ORDER BY name ASC
    `, regionID)
	if err != nil {
		return nil, err
	}
	return suburbs, nil
}

// CommitSuburbBatch persists all staged suburbs for one region as a single
// transaction: either every row is inserted or none are.
func (s *RegistryService) CommitSuburbBatch(regionID string, names []string) ([]model.Suburb, error) {
	if regionID == "" {
		return nil, ErrNoRegionSelected
	}
	if len(names) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(names) > model.MaxStagedSuburbs {
		return nil, ErrBatchTooLarge
	}

	// Re-check uniqueness against what is already persisted; staging only
	// guards against what the client had loaded at the time.
	existing, err := s.ListSuburbsForRegion(regionID)
	if err != nil {
		return nil, err
	}
	if dup := FindDuplicate(names, existing); dup != "" {
		return nil, fmt.Errorf("suburb %q: %w", dup, ErrDuplicateName)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	suburbs := make([]model.Suburb, 0, len(names))
	for _, name := range names {
		suburb := model.Suburb{
			ID:        uuid.NewString(),
			Name:      strings.TrimSpace(name),
			RegionID:  regionID,
			CreatedAt: now,
		}
		_, err = tx.Exec(`
            INSERT INTO suburbs (id, name, region_id, created_at)
            VALUES ($1, $2, $3, $4)
        `, suburb.ID, suburb.Name, suburb.RegionID, suburb.CreatedAt)
		if err != nil {
			return nil, err
		}
		suburbs = append(suburbs, suburb)
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	s.recordActivity("suburb", fmt.Sprintf("%d suburbs added to region", len(suburbs)))

	return suburbs, nil
}

// FindDuplicate returns the first staged name that collides with a persisted
// suburb or with an earlier staged name, case-insensitively. Empty string
// means no collision.
func FindDuplicate(names []string, existing []model.Suburb) string {
	seen := make(map[string]struct{}, len(names)+len(existing))
	for _, s := range existing {
		seen[strings.ToLower(strings.TrimSpace(s.Name))] = struct{}{}
	}
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if _, ok := seen[key]; ok {
			return n
		}
		seen[key] = struct{}{}
	}
	return ""
}

// recordActivity appends to the dashboard activity feed. Best effort: a
// failed insert must not fail the originating operation.
func (s *RegistryService) recordActivity(kind, message string) {
	_, err := s.db.Exec(`
        INSERT INTO activities (type, message, created_at)
        VALUES ($1, $2, $3)
    `, kind, message, time.Now().UTC())
	if err != nil {
		log.Printf("Failed to record activity: %v", err)
	}
}
