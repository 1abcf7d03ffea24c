package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"loadshed-console-go/internal/notification"
	"loadshed-console-go/pkg/model"
)

// SubscriptionHandler manages alert email recipients
type SubscriptionHandler struct {
	emailService *notification.EmailService
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(emailService *notification.EmailService) *SubscriptionHandler {
	return &SubscriptionHandler{emailService: emailService}
}

// ListSubscriptions handles GET /api/subscriptions
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	subs, err := h.emailService.ListSubscriptions()
	if err != nil {
		log.Printf("Error fetching subscriptions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
		return
	}
	c.JSON(http.StatusOK, subs)
}

// AddSubscription handles POST /api/subscriptions
func (h *SubscriptionHandler) AddSubscription(c *gin.Context) {
	var req model.SubscriptionAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.emailService.AddSubscription(req)
	if err != nil {
		log.Printf("Error adding subscription: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add subscription"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Subscription added", "id": id})
}

// SetSubscriptionActive handles PUT /api/subscriptions/:id/active
func (h *SubscriptionHandler) SetSubscriptionActive(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.emailService.SetSubscriptionActive(id, *req.Active); err != nil {
		log.Printf("Error updating subscription: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscription"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription updated"})
}

// DeleteSubscription handles DELETE /api/subscriptions/:id
func (h *SubscriptionHandler) DeleteSubscription(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return
	}

	if err := h.emailService.DeleteSubscription(id); err != nil {
		log.Printf("Error deleting subscription: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subscription"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription deleted"})
}
