package news

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"loadshed-console-go/pkg/model"
)

// ErrNotFound is returned when an article id does not exist
var ErrNotFound = errors.New("article not found")

// NewsService handles published announcements
type NewsService struct {
	db *sqlx.DB
}

// NewNewsService creates a new news service
func NewNewsService(db *sqlx.DB) *NewsService {
	return &NewsService{db: db}
}

// List returns all articles, newest first
func (s *NewsService) List() ([]model.NewsArticle, error) {
	articles := []model.NewsArticle{}
	err := s.db.Select(&articles, `
        SELECT id, title, content, category, created_at
        FROM news
        ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// Create publishes a new article
func (s *NewsService) Create(req model.NewsAddRequest) (*model.NewsArticle, error) {
	article := model.NewsArticle{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(`
        INSERT INTO news (id, title, content, category, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `, article.ID, article.Title, article.Content, article.Category, article.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Delete removes an article by id
func (s *NewsService) Delete(articleID string) error {
	var id string
	err := s.db.Get(&id, "SELECT id FROM news WHERE id = $1", articleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	_, err = s.db.Exec("DELETE FROM news WHERE id = $1", articleID)
	return err
}
