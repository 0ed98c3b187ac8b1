package activity

import (
	"context"

	"github.com/trosone/tros-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists activity log entries via GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to activity log operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a log entry.
func (r *Repository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Recent returns up to limit entries, newest first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	var rows []models.ActivityLog
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
