package entry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadshed-console-go/internal/registry"
	"loadshed-console-go/internal/schedule"
	"loadshed-console-go/pkg/model"
)

// The wizard state machine is exercised without a database: only methods
// that stay in memory are called here. Selections that would trigger a
// fetch are seeded directly on the session.
func newTestWorkflow() *WorkflowService {
	return NewWorkflowService(nil, nil)
}

func TestSessionLifecycle(t *testing.T) {
	t.Run("starts in select mode with empty staging", func(t *testing.T) {
		w := newTestWorkflow()
		sess := w.Session(1)

		assert.Equal(t, ModeSelect, sess.Mode)
		assert.Empty(t, sess.StagedSuburbs)
		assert.Empty(t, sess.Sessions)
	})

	t.Run("mode switches and returns to select", func(t *testing.T) {
		w := newTestWorkflow()

		sess, err := w.SetMode(1, ModeRegion)
		require.NoError(t, err)
		assert.Equal(t, ModeRegion, sess.Mode)

		sess, err = w.SetMode(1, ModeSelect)
		require.NoError(t, err)
		assert.Equal(t, ModeSelect, sess.Mode)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		w := newTestWorkflow()
		_, err := w.SetMode(1, Mode("wizard"))
		assert.ErrorIs(t, err, ErrBadMode)
	})

	t.Run("reset discards all state", func(t *testing.T) {
		w := newTestWorkflow()
		w.StageSuburb(1, "Hillview")
		w.Reset(1)

		assert.Empty(t, w.Session(1).StagedSuburbs)
	})
}

func TestStageSuburb(t *testing.T) {
	t.Run("stages trimmed names", func(t *testing.T) {
		w := newTestWorkflow()

		sess, err := w.StageSuburb(1, "  Hillview  ")
		require.NoError(t, err)
		assert.Equal(t, []string{"Hillview"}, sess.StagedSuburbs)
	})

	t.Run("rejects a case-insensitive duplicate of a staged name", func(t *testing.T) {
		w := newTestWorkflow()
		_, err := w.StageSuburb(1, "Hillview")
		require.NoError(t, err)

		_, err = w.StageSuburb(1, "hillview")
		assert.ErrorIs(t, err, registry.ErrDuplicateName)
	})

	t.Run("rejects a duplicate of a persisted suburb", func(t *testing.T) {
		w := newTestWorkflow()
		sess := w.Session(1)
		sess.ExistingSuburbs = []model.Suburb{{ID: "s1", Name: "Northgate"}}

		_, err := w.StageSuburb(1, "NORTHGATE")
		assert.ErrorIs(t, err, registry.ErrDuplicateName)
	})

	t.Run("rejects empty names", func(t *testing.T) {
		w := newTestWorkflow()
		_, err := w.StageSuburb(1, "   ")
		assert.ErrorIs(t, err, registry.ErrEmptyName)
	})

	t.Run("16th staging attempt is a silent no-op", func(t *testing.T) {
		w := newTestWorkflow()
		for i := 0; i < model.MaxStagedSuburbs; i++ {
			_, err := w.StageSuburb(1, fmt.Sprintf("Suburb %d", i))
			require.NoError(t, err)
		}

		sess, err := w.StageSuburb(1, "One Too Many")
		assert.NoError(t, err)
		assert.Len(t, sess.StagedSuburbs, model.MaxStagedSuburbs)
		assert.NotContains(t, sess.StagedSuburbs, "One Too Many")
	})

	t.Run("unstage removes by position", func(t *testing.T) {
		w := newTestWorkflow()
		w.StageSuburb(1, "A")
		w.StageSuburb(1, "B")
		w.StageSuburb(1, "C")

		sess, err := w.UnstageSuburb(1, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "C"}, sess.StagedSuburbs)

		_, err = w.UnstageSuburb(1, 5)
		assert.ErrorIs(t, err, ErrBadIndex)
	})
}

func TestAddSession(t *testing.T) {
	req := model.SessionAddRequest{
		Day:       "Friday",
		StartTime: "10:00",
		EndTime:   "12:00",
		Period:    "morning",
		Level:     3,
	}

	t.Run("appends a valid session and keeps sticky defaults", func(t *testing.T) {
		w := newTestWorkflow()

		sess, err := w.AddSession(1, req)
		require.NoError(t, err)
		require.Len(t, sess.Sessions, 1)
		assert.Equal(t, "Friday", sess.DraftDay)
		assert.Equal(t, "morning", sess.DraftPeriod)
		assert.Equal(t, 3, sess.DraftLevel)
	})

	t.Run("rejected session leaves the working list unchanged", func(t *testing.T) {
		w := newTestWorkflow()
		w.AddSession(1, req)

		bad := req
		bad.StartTime = "10:00"
		bad.EndTime = "09:00"
		sess, err := w.AddSession(1, bad)
		assert.ErrorIs(t, err, schedule.ErrInvalidRange)
		assert.Len(t, sess.Sessions, 1)
	})

	t.Run("remove session by position", func(t *testing.T) {
		w := newTestWorkflow()
		w.AddSession(1, req)

		second := req
		second.Day = "Saturday"
		w.AddSession(1, second)

		sess, err := w.RemoveSession(1, 0)
		require.NoError(t, err)
		require.Len(t, sess.Sessions, 1)
		assert.Equal(t, "Saturday", sess.Sessions[0].Day)
	})
}

func TestToggleSuburb(t *testing.T) {
	t.Run("re-selecting the selected suburb deselects and clears builder state", func(t *testing.T) {
		w := newTestWorkflow()
		sess := w.Session(1)
		sess.SelectedSuburbID = "sub-1"
		sess.Sessions = []model.ScheduleSession{{Day: "Monday", StartTime: "08:00", EndTime: "10:00"}}
		sess.ExistingEntries = []model.ScheduleEntry{{ScheduleID: "rec-1"}}

		got, err := w.ToggleSuburb(1, "sub-1")
		require.NoError(t, err)
		assert.Empty(t, got.SelectedSuburbID)
		assert.Empty(t, got.Sessions)
		assert.Empty(t, got.ExistingEntries)
	})

	t.Run("selecting a suburb outside the loaded region fails", func(t *testing.T) {
		w := newTestWorkflow()
		sess := w.Session(1)
		sess.ExistingSuburbs = []model.Suburb{{ID: "sub-1", Name: "Hillview"}}

		_, err := w.ToggleSuburb(1, "sub-2")
		assert.ErrorIs(t, err, ErrNoSuchSuburb)
	})
}

func TestSessionsAreIsolatedPerAdmin(t *testing.T) {
	w := newTestWorkflow()
	w.StageSuburb(1, "Hillview")

	assert.Empty(t, w.Session(2).StagedSuburbs)
	assert.Len(t, w.Session(1).StagedSuburbs, 1)
}
