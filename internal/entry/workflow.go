package entry

import (
	"errors"
	"strings"
	"sync"

	"loadshed-console-go/internal/registry"
	"loadshed-console-go/internal/schedule"
	"loadshed-console-go/pkg/model"
)

// Mode is the active surface of the data-entry wizard
type Mode string

const (
	ModeSelect   Mode = "select"
	ModeRegion   Mode = "region"
	ModeSuburb   Mode = "suburb"
	ModeSchedule Mode = "schedule"
)

var validModes = map[Mode]bool{
	ModeSelect:   true,
	ModeRegion:   true,
	ModeSuburb:   true,
	ModeSchedule: true,
}

// Sentinel errors surfaced to the handler layer
var (
	ErrBadMode      = errors.New("unknown entry mode")
	ErrBadIndex     = errors.New("index out of range")
	ErrNoSuchSuburb = errors.New("suburb does not belong to the selected region")
)

// Session is one admin's in-progress data-entry state. Nothing here is
// persisted; the database only sees committed batches and submitted
// schedules.
type Session struct {
	Mode             Mode                    `json:"mode"`
	SelectedRegionID string                  `json:"selected_region_id"`
	SelectedSuburbID string                  `json:"selected_suburb_id"`
	StagedSuburbs    []string                `json:"staged_suburbs"`
	Sessions         []model.ScheduleSession `json:"sessions"`
	ExistingSuburbs  []model.Suburb          `json:"existing_suburbs"`
	ExistingEntries  []model.ScheduleEntry   `json:"existing_entries"`

	// Sticky input defaults: day, period and level survive an added
	// session so consecutive sessions need fewer keystrokes.
	DraftDay    string `json:"draft_day"`
	DraftPeriod string `json:"draft_period"`
	DraftLevel  int    `json:"draft_level"`
}

func newSession() *Session {
	return &Session{
		Mode:          ModeSelect,
		StagedSuburbs: []string{},
		Sessions:      []model.ScheduleSession{},
		DraftDay:      "Monday",
		DraftPeriod:   "morning",
		DraftLevel:    1,
	}
}

// WorkflowService coordinates the per-admin data-entry wizard
type WorkflowService struct {
	registry  *registry.RegistryService
	schedules *schedule.ScheduleService

	mu       sync.Mutex
	sessions map[int]*Session
}

// NewWorkflowService creates a new workflow service
func NewWorkflowService(reg *registry.RegistryService, sched *schedule.ScheduleService) *WorkflowService {
	return &WorkflowService{
		registry:  reg,
		schedules: sched,
		sessions:  make(map[int]*Session),
	}
}

// Session returns the admin's current wizard state, creating it on first use
func (w *WorkflowService) Session(userID int) *Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sessionLocked(userID)
}

func (w *WorkflowService) sessionLocked(userID int) *Session {
	sess, ok := w.sessions[userID]
	if !ok {
		sess = newSession()
		w.sessions[userID] = sess
	}
	return sess
}

// SetMode switches the active editing surface. Returning to select keeps
// selections and staged work so the admin can come back to it.
func (w *WorkflowService) SetMode(userID int, mode Mode) (*Session, error) {
	if !validModes[mode] {
		return nil, ErrBadMode
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	sess := w.sessionLocked(userID)
	sess.Mode = mode
	return sess, nil
}

// SelectRegion sets the active region and, as a side effect, loads its
// persisted suburbs. Clearing the selection (empty id) empties the loaded
// list. The suburb selection is always reset.
func (w *WorkflowService) SelectRegion(userID int, regionID string) (*Session, error) {
	suburbs := []model.Suburb{}
	if regionID != "" {
		var err error
		suburbs, err = w.registry.ListSuburbsForRegion(regionID)
		if err != nil {
			return nil, err
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	sess := w.sessionLocked(userID)
	sess.SelectedRegionID = regionID
	sess.SelectedSuburbID = ""
	sess.ExistingSuburbs = suburbs
	sess.ExistingEntries = []model.ScheduleEntry{}
	return sess, nil
}

// StageSuburb adds a name to the working batch. Collisions against staged
// names or persisted suburbs of the selected region are rejected
// case-insensitively. Once the batch holds the maximum the attempt is a
// silent no-op, mirroring the disabled input in the console.
func (w *WorkflowService) StageSuburb(userID int, name string) (*Session, error) {
	name = strings.TrimSpace(name)

	w.mu.Lock()
	defer w.mu.Unlock()

	sess := w.sessionLocked(userID)
	if name == "" {
		return sess, registry.ErrEmptyName
	}
	if len(sess.StagedSuburbs) >= model.MaxStagedSuburbs {
		return sess, nil
	}

	lower := strings.ToLower(name)
	for _, staged := range sess.StagedSuburbs {
		if strings.ToLower(staged) == lower {
			return sess, registry.ErrDuplicateName
		}
	}
	for _, existing := range sess.ExistingSuburbs {
		if strings.ToLower(existing.Name) == lower {
			return sess, registry.ErrDuplicateName
		}
	}

	sess.StagedSuburbs = append(sess.StagedSuburbs, name)
	return sess, nil
}

// UnstageSuburb removes a staged name by position
func (w *WorkflowService) UnstageSuburb(userID int, index int) (*Session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	sess := w.sessionLocked(userID)
	if index < 0 || index >= len(sess.StagedSuburbs) {
		return sess, ErrBadIndex
	}
	sess.StagedSuburbs = append(sess.StagedSuburbs[:index], sess.StagedSuburbs[index+1:]...)
	return sess, nil
}

// CommitSuburbs persists the staged batch atomically, then clears the
// staging area and the region selection.
func (w *WorkflowService) CommitSuburbs(userID int) (*Session, error) {
	w.mu.Lock()
	regionID := w.sessionLocked(userID).SelectedRegionID
	staged := append([]string{}, w.sessionLocked(userID).StagedSuburbs...)
	w.mu.Unlock()

	_, err := w.registry.CommitSuburbBatch(regionID, staged)
	if err != nil {
		return w.Session(userID), err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	sess := w.sessionLocked(userID)
	sess.StagedSuburbs = []string{}
	sess.SelectedRegionID = ""
	sess.ExistingSuburbs = []model.Suburb{}
	return sess, nil
}

// ToggleSuburb selects a suburb for scheduling, loading its existing
// flattened sessions. Selecting the already-selected suburb deselects it
// and clears the dependent builder state.
func (w *WorkflowService) ToggleSuburb(userID int, suburbID string) (*Session, error) {
	w.mu.Lock()
	sess := w.sessionLocked(userID)
	if sess.SelectedSuburbID == suburbID {
		sess.SelectedSuburbID = ""
		sess.ExistingEntries = []model.ScheduleEntry{}
		sess.Sessions = []model.ScheduleSession{}
		w.mu.Unlock()
		return w.Session(userID), nil
	}

	known := false
	for _, sub := range sess.ExistingSuburbs {
		if sub.ID == suburbID {
			known = true
			break
		}
	}
	w.mu.Unlock()

	if !known {
		return w.Session(userID), ErrNoSuchSuburb
	}

	entries, err := w.schedules.SessionsForSuburb(suburbID)
	if err != nil {
		return w.Session(userID), err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	sess = w.sessionLocked(userID)
	sess.SelectedSuburbID = suburbID
	sess.ExistingEntries = entries
	return sess, nil
}

// AddSession validates one outage window and appends it to the working
// list. On success the time inputs clear while day, period and level stick
// around as defaults for the next session.
func (w *WorkflowService) AddSession(userID int, req model.SessionAddRequest) (*Session, error) {
	if err := schedule.ValidateSession(req); err != nil {
		return w.Session(userID), err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	sess := w.sessionLocked(userID)
	sess.Sessions = append(sess.Sessions, model.ScheduleSession{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Period:    req.Period,
		Level:     req.Level,
		Day:       req.Day,
	})
	sess.DraftDay = req.Day
	sess.DraftPeriod = req.Period
	sess.DraftLevel = req.Level
	return sess, nil
}

// RemoveSession drops a working session by position
func (w *WorkflowService) RemoveSession(userID int, index int) (*Session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	sess := w.sessionLocked(userID)
	if index < 0 || index >= len(sess.Sessions) {
		return sess, ErrBadIndex
	}
	sess.Sessions = append(sess.Sessions[:index], sess.Sessions[index+1:]...)
	return sess, nil
}

// SubmitSchedule freezes the working sessions into one record, then clears
// the builder and the suburb selection. The region selection survives so
// another suburb of the same region can be scheduled next.
func (w *WorkflowService) SubmitSchedule(userID int) (*Session, error) {
	w.mu.Lock()
	sess := w.sessionLocked(userID)
	regionID := sess.SelectedRegionID
	suburbID := sess.SelectedSuburbID
	sessions := append([]model.ScheduleSession{}, sess.Sessions...)
	w.mu.Unlock()

	_, err := w.schedules.Submit(regionID, suburbID, sessions)
	if err != nil {
		return w.Session(userID), err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	sess = w.sessionLocked(userID)
	sess.SelectedSuburbID = ""
	sess.Sessions = []model.ScheduleSession{}
	sess.ExistingEntries = []model.ScheduleEntry{}
	return sess, nil
}

// RefreshEntries re-reads the flattened session view for the selected
// suburb, used after a record delete.
func (w *WorkflowService) RefreshEntries(userID int) (*Session, error) {
	w.mu.Lock()
	suburbID := w.sessionLocked(userID).SelectedSuburbID
	w.mu.Unlock()

	if suburbID == "" {
		return w.Session(userID), nil
	}

	entries, err := w.schedules.SessionsForSuburb(suburbID)
	if err != nil {
		return w.Session(userID), err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	sess := w.sessionLocked(userID)
	sess.ExistingEntries = entries
	return sess, nil
}

// Reset discards the admin's wizard state entirely, used on logout
func (w *WorkflowService) Reset(userID int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.sessions, userID)
}
