package assignments

import (
	"context"

	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles the vendor/shop join rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to assignment operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByPair loads the join row for a vendor/shop pair.
func (r *Repository) FindByPair(ctx context.Context, vendorID, shopID uuid.UUID) (*models.Assignment, error) {
	var row models.Assignment
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND shop_id = ?", vendorID, shopID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a join row.
func (r *Repository) Create(ctx context.Context, row *models.Assignment) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// Delete removes a join row by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Assignment{}, "id = ?", id).Error
}

// ListByVendor returns all join rows for the vendor.
func (r *Repository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Assignment, error) {
	var rows []models.Assignment
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByShop returns all join rows for the shop.
func (r *Repository) ListByShop(ctx context.Context, shopID uuid.UUID) ([]models.Assignment, error) {
	var rows []models.Assignment
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
