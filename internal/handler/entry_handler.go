package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"loadshed-console-go/internal/entry"
	"loadshed-console-go/internal/registry"
	"loadshed-console-go/internal/schedule"
	"loadshed-console-go/pkg/model"
)

// EntryHandler exposes the data-entry wizard: region management, suburb
// staging and the schedule session builder.
type EntryHandler struct {
	workflow        *entry.WorkflowService
	registryService *registry.RegistryService
	scheduleService *schedule.ScheduleService
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(workflow *entry.WorkflowService, reg *registry.RegistryService, sched *schedule.ScheduleService) *EntryHandler {
	return &EntryHandler{
		workflow:        workflow,
		registryService: reg,
		scheduleService: sched,
	}
}

// entryError maps service errors to HTTP statuses
func entryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, registry.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, registry.ErrNotFound), errors.Is(err, schedule.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, registry.ErrEmptyName),
		errors.Is(err, registry.ErrNoRegionSelected),
		errors.Is(err, registry.ErrEmptyBatch),
		errors.Is(err, registry.ErrBatchTooLarge),
		errors.Is(err, schedule.ErrMissingField),
		errors.Is(err, schedule.ErrInvalidRange),
		errors.Is(err, schedule.ErrBadTime),
		errors.Is(err, schedule.ErrBadDay),
		errors.Is(err, schedule.ErrBadPeriod),
		errors.Is(err, schedule.ErrBadLevel),
		errors.Is(err, schedule.ErrIncomplete),
		errors.Is(err, entry.ErrBadMode),
		errors.Is(err, entry.ErrBadIndex),
		errors.Is(err, entry.ErrNoSuchSuburb):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Entry operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
	}
}

// GetSession handles GET /api/entry
func (h *EntryHandler) GetSession(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, h.workflow.Session(userID))
}

// SetMode handles POST /api/entry/mode
func (h *EntryHandler) SetMode(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Mode string `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.workflow.SetMode(userID, entry.Mode(req.Mode))
	if err != nil {
		entryError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// ListRegions handles GET /api/entry/regions
func (h *EntryHandler) ListRegions(c *gin.Context) {
	regions, err := h.registryService.ListRegions()
	if err != nil {
		log.Printf("Error fetching regions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch regions"})
		return
	}
	c.JSON(http.StatusOK, regions)
}

// AddRegion handles POST /api/entry/regions
func (h *EntryHandler) AddRegion(c *gin.Context) {
	var req model.RegionAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	region, err := h.registryService.AddRegion(req.Name)
	if err != nil {
		entryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, region)
}

// DeleteRegion handles DELETE /api/entry/regions/:id. Deletion is
// irreversible and does not cascade, so the caller must confirm explicitly.
func (h *EntryHandler) DeleteRegion(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Deleting a region cannot be undone; repeat the request with confirm=true",
		})
		return
	}

	if err := h.registryService.DeleteRegion(c.Param("id")); err != nil {
		entryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Region deleted; suburbs and schedules referencing it are left in place",
	})
}

// SelectRegion handles POST /api/entry/region-select
func (h *EntryHandler) SelectRegion(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		RegionID string `json:"region_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.workflow.SelectRegion(userID, req.RegionID)
	if err != nil {
		entryError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// StageSuburb handles POST /api/entry/suburbs/stage
func (h *EntryHandler) StageSuburb(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req model.SuburbStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.workflow.StageSuburb(userID, req.Name)
	if err != nil {
		entryError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// UnstageSuburb handles DELETE /api/entry/suburbs/stage/:index
func (h *EntryHandler) UnstageSuburb(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index"})
		return
	}

	sess, err := h.workflow.UnstageSuburb(userID, index)
	if err != nil {
		entryError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// CommitSuburbs handles POST /api/entry/suburbs/commit
func (h *EntryHandler) CommitSuburbs(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sess, err := h.workflow.CommitSuburbs(userID)
	if err != nil {
		entryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Suburbs added successfully", "session": sess})
}

// ToggleSuburb handles POST /api/entry/suburb-select
func (h *EntryHandler) ToggleSuburb(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		SuburbID string `json:"suburb_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.workflow.ToggleSuburb(userID, req.SuburbID)
	if err != nil {
		entryError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// AddSession handles POST /api/entry/sessions
func (h *EntryHandler) AddSession(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req model.SessionAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.workflow.AddSession(userID, req)
	if err != nil {
		entryError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// RemoveSession handles DELETE /api/entry/sessions/:index
func (h *EntryHandler) RemoveSession(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index"})
		return
	}

	sess, err := h.workflow.RemoveSession(userID, index)
	if err != nil {
		entryError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// SubmitSchedule handles POST /api/entry/schedule/submit
func (h *EntryHandler) SubmitSchedule(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sess, err := h.workflow.SubmitSchedule(userID)
	if err != nil {
		entryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Schedule added successfully", "session": sess})
}

// GetSuburbSchedules handles GET /api/suburbs/:id/schedules
func (h *EntryHandler) GetSuburbSchedules(c *gin.Context) {
	entries, err := h.scheduleService.SessionsForSuburb(c.Param("id"))
	if err != nil {
		log.Printf("Error fetching schedules: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedules"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// DeleteSchedule handles DELETE /api/schedules/:id. Removes the whole
// record, i.e. every session saved in that batch.
func (h *EntryHandler) DeleteSchedule(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.scheduleService.Delete(c.Param("id")); err != nil {
		entryError(c, err)
		return
	}

	// Refresh the flattened view if a suburb is selected in the wizard
	sess, err := h.workflow.RefreshEntries(userID)
	if err != nil {
		entryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully", "session": sess})
}

// ListSuburbs handles GET /api/regions/:id/suburbs
func (h *EntryHandler) ListSuburbs(c *gin.Context) {
	suburbs, err := h.registryService.ListSuburbsForRegion(c.Param("id"))
	if err != nil {
		log.Printf("Error fetching suburbs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suburbs"})
		return
	}
	c.JSON(http.StatusOK, model.SuburbListResponse{Suburbs: suburbs, TotalSuburbs: len(suburbs)})
}
