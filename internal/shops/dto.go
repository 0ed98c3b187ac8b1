package shops

import (
	"time"

	dbtypes "github.com/trosone/tros-backend/pkg/db/types"
	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/trosone/tros-backend/pkg/enums"
	"github.com/google/uuid"
)

// ShopDTO exposes shop data in API responses.
type ShopDTO struct {
	ID                 uuid.UUID         `json:"id"`
	Name               string            `json:"name"`
	Manager            *string           `json:"manager,omitempty"`
	Location           *string           `json:"location,omitempty"`
	Address            *string           `json:"address,omitempty"`
	Phone              *string           `json:"phone,omitempty"`
	Status             enums.ShopStatus  `json:"status"`
	ShopType           *string           `json:"shop_type,omitempty"`
	OperatingHours     *string           `json:"operating_hours,omitempty"`
	SquareFootage      *int              `json:"square_footage,omitempty"`
	AssignedVendorID   *uuid.UUID        `json:"assigned_vendor_id,omitempty"`
	AssignedVendorName *string           `json:"assigned_vendor_name,omitempty"`
	Documents          dbtypes.Documents `json:"documents"`
	CustomFields       dbtypes.JSONMap   `json:"custom_fields"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// CreateShopInput holds creation-time shop data.
type CreateShopInput struct {
	Name           string
	Manager        *string
	Location       *string
	Address        *string
	Phone          *string
	Status         *enums.ShopStatus
	ShopType       *string
	OperatingHours *string
	SquareFootage  *int
	Documents      dbtypes.Documents
	CustomFields   dbtypes.JSONMap
}

// UpdateShopInput captures the shop fields an administrator may change.
// Vendor assignment has its own operation and is not part of this input.
type UpdateShopInput struct {
	Name           *string
	Manager        *string
	Location       *string
	Address        *string
	Phone          *string
	Status         *enums.ShopStatus
	ShopType       *string
	OperatingHours *string
	SquareFootage  *int
	Documents      *dbtypes.Documents
	CustomFields   *dbtypes.JSONMap
}

// ToModel maps the input into a persisted shop row.
func (in CreateShopInput) ToModel() *models.Shop {
	status := enums.ShopStatusOpen
	if in.Status != nil {
		status = *in.Status
	}
	docs := in.Documents
	if docs == nil {
		docs = dbtypes.Documents{}
	}
	custom := in.CustomFields
	if custom == nil {
		custom = dbtypes.JSONMap{}
	}
	return &models.Shop{
		ID:             uuid.New(),
		Name:           in.Name,
		Manager:        in.Manager,
		Location:       in.Location,
		Address:        in.Address,
		Phone:          in.Phone,
		Status:         status,
		ShopType:       in.ShopType,
		OperatingHours: in.OperatingHours,
		SquareFootage:  in.SquareFootage,
		Documents:      docs,
		CustomFields:   custom,
	}
}

// FromModel maps the persisted shop into a DTO.
func FromModel(m *models.Shop) *ShopDTO {
	if m == nil {
		return nil
	}
	return &ShopDTO{
		ID:                 m.ID,
		Name:               m.Name,
		Manager:            m.Manager,
		Location:           m.Location,
		Address:            m.Address,
		Phone:              m.Phone,
		Status:             m.Status,
		ShopType:           m.ShopType,
		OperatingHours:     m.OperatingHours,
		SquareFootage:      m.SquareFootage,
		AssignedVendorID:   m.AssignedVendorID,
		AssignedVendorName: m.AssignedVendorName,
		Documents:          m.Documents,
		CustomFields:       m.CustomFields,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
