package shops

import (
	"context"

	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles shop persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to shop operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new shop row.
func (r *Repository) Create(ctx context.Context, shop *models.Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

// FindByID loads a shop by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// List returns all shops ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// FindByAssignedVendor returns shops whose direct assignment points at the vendor.
func (r *Repository) FindByAssignedVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Shop, error) {
	var shops []models.Shop
	if err := r.db.WithContext(ctx).
		Where("assigned_vendor_id = ?", vendorID).
		Order("name ASC").
		Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// NamesByAssignedVendor returns just the shop names for the vendor's computed
// assignment list.
func (r *Repository) NamesByAssignedVendor(ctx context.Context, vendorID uuid.UUID) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("assigned_vendor_id = ?", vendorID).
		Order("name ASC").
		Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// Update saves the provided shop.
func (r *Repository) Update(ctx context.Context, shop *models.Shop) error {
	if shop == nil {
		return gorm.ErrInvalidValue
	}
	return r.db.WithContext(ctx).Save(shop).Error
}

// SetAssignedVendor writes both direct assignment columns in one statement.
func (r *Repository) SetAssignedVendor(ctx context.Context, shopID uuid.UUID, vendorID *uuid.UUID, vendorName *string) error {
	return r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("id = ?", shopID).
		UpdateColumns(map[string]any{
			"assigned_vendor_id":   vendorID,
			"assigned_vendor_name": vendorName,
		}).Error
}

// Delete removes the shop row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Shop{}, "id = ?", id).Error
}

// CreateBatch inserts shop rows in one statement.
func (r *Repository) CreateBatch(ctx context.Context, rows []models.Shop) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
