package models

import (
	"time"

	"github.com/google/uuid"
)

// Assignment is a pure vendor/shop join row. It is deliberately not
// synchronized with Shop.AssignedVendorID.
type Assignment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	VendorID  uuid.UUID `gorm:"column:vendor_id;type:uuid;not null;uniqueIndex:idx_assignments_vendor_shop"`
	ShopID    uuid.UUID `gorm:"column:shop_id;type:uuid;not null;uniqueIndex:idx_assignments_vendor_shop"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
