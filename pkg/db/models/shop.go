package models

import (
	"time"

	dbtypes "github.com/trosone/tros-backend/pkg/db/types"
	"github.com/trosone/tros-backend/pkg/enums"
	"github.com/google/uuid"
)

// Shop represents a retail location. AssignedVendorName is a denormalized
// copy of the vendor name, maintained manually on assignment writes.
type Shop struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Name               string            `gorm:"column:name;not null"`
	Manager            *string           `gorm:"column:manager"`
	Location           *string           `gorm:"column:location"`
	Address            *string           `gorm:"column:address"`
	Phone              *string           `gorm:"column:phone"`
	Status             enums.ShopStatus  `gorm:"column:status;not null;default:'Open'"`
	ShopType           *string           `gorm:"column:shop_type"`
	OperatingHours     *string           `gorm:"column:operating_hours"`
	SquareFootage      *int              `gorm:"column:square_footage"`
	AssignedVendorID   *uuid.UUID        `gorm:"column:assigned_vendor_id;type:uuid"`
	AssignedVendorName *string           `gorm:"column:assigned_vendor_name"`
	Documents          dbtypes.Documents `gorm:"column:documents;type:jsonb;not null;default:'[]'"`
	CustomFields       dbtypes.JSONMap   `gorm:"column:custom_fields;type:jsonb;not null;default:'{}'"`
	CreatedAt          time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
