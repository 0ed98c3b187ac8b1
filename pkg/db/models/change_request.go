package models

import (
	"time"

	"github.com/trosone/tros-backend/pkg/enums"
	"github.com/google/uuid"
)

// ChangeRequest is a vendor-submitted ask. Rows are created Pending and no
// transition operation exists on the API.
type ChangeRequest struct {
	ID               uuid.UUID                 `gorm:"type:uuid;primaryKey"`
	VendorID         *uuid.UUID                `gorm:"column:vendor_id;type:uuid"`
	VendorName       string                    `gorm:"column:vendor_name;not null"`
	TargetCollection string                    `gorm:"column:target_collection;not null"`
	TargetID         *uuid.UUID                `gorm:"column:target_id;type:uuid"`
	TargetName       *string                   `gorm:"column:target_name"`
	RequestType      enums.ChangeRequestType   `gorm:"column:request_type;not null"`
	Description      string                    `gorm:"column:description;not null"`
	Status           enums.ChangeRequestStatus `gorm:"column:status;not null;default:'Pending'"`
	CreatedAt        time.Time                 `gorm:"column:created_at;autoCreateTime"`
}
