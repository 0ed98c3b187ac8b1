package models

import (
	"time"

	dbtypes "github.com/trosone/tros-backend/pkg/db/types"
	"github.com/trosone/tros-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalog item. VendorEmail links to vendors by value
// with no constraint; deleting a vendor leaves the reference dangling.
type Product struct {
	ID           uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Name         string              `gorm:"column:name;not null"`
	Brand        *string             `gorm:"column:brand"`
	SKU          *string             `gorm:"column:sku"`
	Barcode      *string             `gorm:"column:barcode;index"`
	Price        decimal.Decimal     `gorm:"column:price;type:numeric(12,2);not null;default:0"`
	CostPrice    *decimal.Decimal    `gorm:"column:cost_price;type:numeric(12,2)"`
	TaxRate      *decimal.Decimal    `gorm:"column:tax_rate;type:numeric(5,2)"`
	Stock        int                 `gorm:"column:stock;not null;default:0"`
	MinStock     int                 `gorm:"column:min_stock;not null;default:0"`
	Category     *string             `gorm:"column:category"`
	SubCategory  *string             `gorm:"column:sub_category"`
	Status       enums.ProductStatus `gorm:"column:status;not null;default:'Active'"`
	VendorEmail  string              `gorm:"column:vendor_email;not null;default:'';index"`
	ShopID       *uuid.UUID          `gorm:"column:shop_id;type:uuid"`
	ShopName     *string             `gorm:"column:shop_name"`
	Manufacturer *string             `gorm:"column:manufacturer"`
	Origin       *string             `gorm:"column:origin"`
	ExpiryDate   *time.Time          `gorm:"column:expiry_date"`
	Description  *string             `gorm:"column:description"`
	CustomFields dbtypes.JSONMap     `gorm:"column:custom_fields;type:jsonb;not null;default:'{}'"`
	Documents    dbtypes.Documents   `gorm:"column:documents;type:jsonb;not null;default:'[]'"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
