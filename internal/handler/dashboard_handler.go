package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"loadshed-console-go/internal/dashboard"
)

// DashboardHandler serves console statistics
type DashboardHandler struct {
	dashboardService *dashboard.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *dashboard.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(time.Now())
	if err != nil {
		log.Printf("Error computing dashboard stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetWeeklyActivity handles GET /api/dashboard/activity
func (h *DashboardHandler) GetWeeklyActivity(c *gin.Context) {
	points, err := h.dashboardService.WeeklyActivity(time.Now())
	if err != nil {
		log.Printf("Error computing weekly activity: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute activity"})
		return
	}
	c.JSON(http.StatusOK, points)
}

// GetRecentActivities handles GET /api/dashboard/activities
func (h *DashboardHandler) GetRecentActivities(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := h.dashboardService.RecentActivities(limit)
	if err != nil {
		log.Printf("Error fetching activities: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetSystemMetrics handles GET /api/dashboard/metrics
func (h *DashboardHandler) GetSystemMetrics(c *gin.Context) {
	metrics, err := h.dashboardService.SystemMetrics()
	if err != nil {
		log.Printf("Error fetching system metrics: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch metrics"})
		return
	}
	c.JSON(http.StatusOK, metrics)
}
