package board

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sujalbistaa/feedhub/internal/models"
)

// NewsService owns the ticker items shown above the public listing.
type NewsService struct {
	db *gorm.DB
}

func NewNewsService(db *gorm.DB) *NewsService {
	return &NewsService{db: db}
}

// ListActive returns the items the ticker should rotate through: active,
// not expired, in display order.
func (s *NewsService) ListActive(now time.Time) ([]models.News, error) {
	var items []models.News
	err := s.db.
		Where("is_active = ?", true).
		Where("(expires_at IS NULL OR expires_at > ?)", now).
		Order("display_order asc").
		Find(&items).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list news", Err: err}
	}
	return items, nil
}

// Create publishes a new ticker item.
func (s *NewsService) Create(title, content string, displayOrder int, expiresAt *time.Time) (models.News, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return models.News{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if content == "" {
		return models.News{}, &ValidationError{Field: "content", Reason: "must not be empty"}
	}

	item := models.News{
		Title:        title,
		Content:      content,
		DisplayOrder: displayOrder,
		IsActive:     true,
		ExpiresAt:    expiresAt,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return models.News{}, &PersistenceError{Op: "insert news", Err: err}
	}
	return item, nil
}

// Deactivate pulls an item from the ticker. Deactivating twice is a no-op.
func (s *NewsService) Deactivate(id uint) error {
	var item models.News
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "news", ID: id}
		}
		return &PersistenceError{Op: "find news", Err: err}
	}
	if err := s.db.Model(&item).Update("is_active", false).Error; err != nil {
		return &PersistenceError{Op: "update news", Err: err}
	}
	return nil
}
