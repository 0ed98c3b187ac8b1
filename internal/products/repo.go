package products

import (
	"context"

	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists products via GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to product operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a product row.
func (r *Repository) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// FindByID loads one product.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByBarcode loads a product by exact barcode equality.
func (r *Repository) FindByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).First(&p, "barcode = ?", barcode).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns the full catalog, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByVendorEmail filters by exact, case-sensitive vendor email. Scoping
// happens in the query, never by hiding rows after the fact.
func (r *Repository) ListByVendorEmail(ctx context.Context, email string) ([]models.Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).
		Where("vendor_email = ?", email).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves all columns of the product row.
func (r *Repository) Update(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes a product row by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// AssignVendorEmail overwrites vendor_email for the given ids in one batch.
func (r *Repository) AssignVendorEmail(ctx context.Context, ids []uuid.UUID, email string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id IN ?", ids).
		Update("vendor_email", email)
	return res.RowsAffected, res.Error
}

// AssignShop overwrites shop_id and shop_name for the given ids in one batch.
func (r *Repository) AssignShop(ctx context.Context, ids []uuid.UUID, shopID uuid.UUID, shopName string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"shop_id": shopID, "shop_name": shopName})
	return res.RowsAffected, res.Error
}

// CountAll returns the total number of products.
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&n).Error
	return n, err
}

// CountAllByVendorEmail counts products scoped to one vendor email.
func (r *Repository) CountAllByVendorEmail(ctx context.Context, email string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("vendor_email = ?", email).
		Count(&n).Error
	return n, err
}

// CountOutOfStock counts products with stock at or below zero.
func (r *Repository) CountOutOfStock(ctx context.Context, vendorEmail string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{}).Where("stock <= 0")
	if vendorEmail != "" {
		q = q.Where("vendor_email = ?", vendorEmail)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// CountLowStock counts products above zero stock but at or below min_stock.
func (r *Repository) CountLowStock(ctx context.Context, vendorEmail string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("stock > 0 AND stock <= min_stock")
	if vendorEmail != "" {
		q = q.Where("vendor_email = ?", vendorEmail)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// CreateBatch inserts product rows in one statement.
func (r *Repository) CreateBatch(ctx context.Context, rows []models.Product) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
