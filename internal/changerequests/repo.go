package changerequests

import (
	"context"

	"github.com/trosone/tros-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists change requests via GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to change request operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a change request row.
func (r *Repository) Create(ctx context.Context, cr *models.ChangeRequest) error {
	return r.db.WithContext(ctx).Create(cr).Error
}

// List returns all change requests, newest first.
func (r *Repository) List(ctx context.Context) ([]models.ChangeRequest, error) {
	var rows []models.ChangeRequest
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByVendorName returns one vendor's change requests, newest first.
func (r *Repository) ListByVendorName(ctx context.Context, vendorName string) ([]models.ChangeRequest, error) {
	var rows []models.ChangeRequest
	if err := r.db.WithContext(ctx).
		Where("vendor_name = ?", vendorName).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
