package importer

import (
	"context"

	"github.com/trosone/tros-backend/pkg/db/models"
	"gorm.io/gorm"
)

// JobRepository persists import job records via GORM.
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository binds a GORM DB to import job operations.
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts an import job row.
func (r *JobRepository) Create(ctx context.Context, job *models.ImportJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// Recent returns up to limit job rows, newest first.
func (r *JobRepository) Recent(ctx context.Context, limit int) ([]models.ImportJob, error) {
	var rows []models.ImportJob
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
