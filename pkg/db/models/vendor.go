package models

import (
	"time"

	dbtypes "github.com/trosone/tros-backend/pkg/db/types"
	"github.com/trosone/tros-backend/pkg/enums"
	"github.com/google/uuid"
)

// Vendor represents a supplier account. Email is the join key used by
// products; the link is by value and may dangle after a vendor delete.
type Vendor struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Name          string             `gorm:"column:name;not null"`
	Owner         string             `gorm:"column:owner;not null;default:''"`
	Email         string             `gorm:"type:text;not null;uniqueIndex"`
	Phone         *string            `gorm:"column:phone"`
	Address       *string            `gorm:"column:address"`
	Status        enums.VendorStatus `gorm:"column:status;not null;default:'Active'"`
	ProductsCount int                `gorm:"column:products_count;not null;default:0"`
	TaxID         *string            `gorm:"column:tax_id"`
	LicenseNumber *string            `gorm:"column:license_number"`
	Website       *string            `gorm:"column:website"`
	Documents     dbtypes.Documents  `gorm:"column:documents;type:jsonb;not null;default:'[]'"`
	CustomFields  dbtypes.JSONMap    `gorm:"column:custom_fields;type:jsonb;not null;default:'{}'"`
	LinkedUserID  *uuid.UUID         `gorm:"column:linked_user_id;type:uuid"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
