package products

import (
	"time"

	dbtypes "github.com/trosone/tros-backend/pkg/db/types"
	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/trosone/tros-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO is the wire shape of a catalog product.
type ProductDTO struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Brand        *string           `json:"brand,omitempty"`
	SKU          *string           `json:"sku,omitempty"`
	Barcode      *string           `json:"barcode,omitempty"`
	Price        decimal.Decimal   `json:"price"`
	CostPrice    *decimal.Decimal  `json:"cost_price,omitempty"`
	TaxRate      *decimal.Decimal  `json:"tax_rate,omitempty"`
	Stock        int               `json:"stock"`
	MinStock     int               `json:"min_stock"`
	Category     *string           `json:"category,omitempty"`
	SubCategory  *string           `json:"sub_category,omitempty"`
	Status       string            `json:"status"`
	StockState   string            `json:"stock_state"`
	VendorEmail  string            `json:"vendor_email"`
	ShopID       *uuid.UUID        `json:"shop_id,omitempty"`
	ShopName     *string           `json:"shop_name,omitempty"`
	Manufacturer *string           `json:"manufacturer,omitempty"`
	Origin       *string           `json:"origin,omitempty"`
	ExpiryDate   *time.Time        `json:"expiry_date,omitempty"`
	Description  *string           `json:"description,omitempty"`
	CustomFields dbtypes.JSONMap   `json:"custom_fields,omitempty"`
	Documents    dbtypes.Documents `json:"documents,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// CreateProductInput carries the fields accepted on product creation.
type CreateProductInput struct {
	Name         string           `json:"name" validate:"required"`
	Brand        *string          `json:"brand"`
	SKU          *string          `json:"sku"`
	Barcode      *string          `json:"barcode"`
	Price        decimal.Decimal  `json:"price"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	TaxRate      *decimal.Decimal `json:"tax_rate"`
	Stock        int              `json:"stock"`
	MinStock     int              `json:"min_stock"`
	Category     *string          `json:"category"`
	SubCategory  *string          `json:"sub_category"`
	Status       string           `json:"status"`
	VendorEmail  string           `json:"vendor_email"`
	ShopID       *uuid.UUID       `json:"shop_id"`
	ShopName     *string          `json:"shop_name"`
	Manufacturer *string          `json:"manufacturer"`
	Origin       *string          `json:"origin"`
	ExpiryDate   *time.Time       `json:"expiry_date"`
	Description  *string          `json:"description"`
	CustomFields dbtypes.JSONMap  `json:"custom_fields"`
}

// ToModel builds a persistence model with a fresh id.
func (in CreateProductInput) ToModel() *models.Product {
	status := enums.ProductStatusActive
	if parsed, err := enums.ParseProductStatus(in.Status); err == nil {
		status = parsed
	}
	return &models.Product{
		ID:           uuid.New(),
		Name:         in.Name,
		Brand:        in.Brand,
		SKU:          in.SKU,
		Barcode:      in.Barcode,
		Price:        in.Price,
		CostPrice:    in.CostPrice,
		TaxRate:      in.TaxRate,
		Stock:        in.Stock,
		MinStock:     in.MinStock,
		Category:     in.Category,
		SubCategory:  in.SubCategory,
		Status:       status,
		VendorEmail:  in.VendorEmail,
		ShopID:       in.ShopID,
		ShopName:     in.ShopName,
		Manufacturer: in.Manufacturer,
		Origin:       in.Origin,
		ExpiryDate:   in.ExpiryDate,
		Description:  in.Description,
		CustomFields: in.CustomFields,
	}
}

// UpdateProductInput carries a partial product update. Nil pointers mean
// "leave unchanged". Which fields actually apply depends on the caller's
// role; vendors only reach stock, min_stock and status.
type UpdateProductInput struct {
	Name         *string          `json:"name"`
	Brand        *string          `json:"brand"`
	SKU          *string          `json:"sku"`
	Barcode      *string          `json:"barcode"`
	Price        *decimal.Decimal `json:"price"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	TaxRate      *decimal.Decimal `json:"tax_rate"`
	Stock        *int             `json:"stock"`
	MinStock     *int             `json:"min_stock"`
	Category     *string          `json:"category"`
	SubCategory  *string          `json:"sub_category"`
	Status       *string          `json:"status"`
	VendorEmail  *string          `json:"vendor_email"`
	ShopID       *uuid.UUID       `json:"shop_id"`
	ShopName     *string          `json:"shop_name"`
	Manufacturer *string          `json:"manufacturer"`
	Origin       *string          `json:"origin"`
	ExpiryDate   *time.Time       `json:"expiry_date"`
	Description  *string          `json:"description"`
	CustomFields *dbtypes.JSONMap `json:"custom_fields"`
}

// BulkAssignInput targets a set of products at either a vendor or a shop.
type BulkAssignInput struct {
	ProductIDs []uuid.UUID `json:"product_ids" validate:"required,min=1"`
	VendorID   *uuid.UUID  `json:"vendor_id"`
	ShopID     *uuid.UUID  `json:"shop_id"`
}

// BulkAssignResult reports how far a bulk assignment got.
type BulkAssignResult struct {
	Requested   int  `json:"requested"`
	Updated     int  `json:"updated"`
	Batches     int  `json:"batches"`
	FailedBatch *int `json:"failed_batch,omitempty"`
}

// FromModel converts a persistence model into the wire shape.
func FromModel(p *models.Product) *ProductDTO {
	return &ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		Brand:        p.Brand,
		SKU:          p.SKU,
		Barcode:      p.Barcode,
		Price:        p.Price,
		CostPrice:    p.CostPrice,
		TaxRate:      p.TaxRate,
		Stock:        p.Stock,
		MinStock:     p.MinStock,
		Category:     p.Category,
		SubCategory:  p.SubCategory,
		Status:       p.Status.String(),
		StockState:   StockState(p.Stock, p.MinStock),
		VendorEmail:  p.VendorEmail,
		ShopID:       p.ShopID,
		ShopName:     p.ShopName,
		Manufacturer: p.Manufacturer,
		Origin:       p.Origin,
		ExpiryDate:   p.ExpiryDate,
		Description:  p.Description,
		CustomFields: p.CustomFields,
		Documents:    p.Documents,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func fromModels(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
