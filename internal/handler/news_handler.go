package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"loadshed-console-go/internal/news"
	"loadshed-console-go/pkg/model"
)

// NewsHandler serves published announcements
type NewsHandler struct {
	newsService *news.NewsService
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(newsService *news.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// ListArticles handles GET /api/news
func (h *NewsHandler) ListArticles(c *gin.Context) {
	articles, err := h.newsService.List()
	if err != nil {
		log.Printf("Error fetching news: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
		return
	}
	c.JSON(http.StatusOK, articles)
}

// CreateArticle handles POST /api/news
func (h *NewsHandler) CreateArticle(c *gin.Context) {
	var req model.NewsAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.newsService.Create(req)
	if err != nil {
		log.Printf("Error publishing article: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish article"})
		return
	}
	c.JSON(http.StatusCreated, article)
}

// DeleteArticle handles DELETE /api/news/:id
func (h *NewsHandler) DeleteArticle(c *gin.Context) {
	if err := h.newsService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, news.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		log.Printf("Error deleting article: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}
