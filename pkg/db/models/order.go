package models

import (
	"time"

	dbtypes "github.com/trosone/tros-backend/pkg/db/types"
	"github.com/trosone/tros-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order captures a placed order. TotalItems and TotalValue are computed once
// at placement and never recomputed; Items is immutable after create.
type Order struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey"`
	VendorName string             `gorm:"column:vendor_name;not null;index"`
	Shop       string             `gorm:"column:shop;not null"`
	ShopID     *uuid.UUID         `gorm:"column:shop_id;type:uuid"`
	Date       time.Time          `gorm:"column:date;not null"`
	TotalItems int                `gorm:"column:total_items;not null"`
	TotalValue decimal.Decimal    `gorm:"column:total_value;type:numeric(14,2);not null"`
	Status     enums.OrderStatus  `gorm:"column:status;not null;default:'Pending'"`
	Items      dbtypes.OrderItems `gorm:"column:items;type:jsonb;not null;default:'[]'"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
