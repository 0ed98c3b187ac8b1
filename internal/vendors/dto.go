package vendors

import (
	"time"

	dbtypes "github.com/trosone/tros-backend/pkg/db/types"
	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/trosone/tros-backend/pkg/enums"
	"github.com/google/uuid"
)

// VendorDTO exposes vendor data in API responses. AssignedShops is computed
// at read time from shops.assigned_vendor_id.
type VendorDTO struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	Owner         string             `json:"owner"`
	Email         string             `json:"email"`
	Phone         *string            `json:"phone,omitempty"`
	Address       *string            `json:"address,omitempty"`
	Status        enums.VendorStatus `json:"status"`
	ProductsCount int                `json:"products_count"`
	TaxID         *string            `json:"tax_id,omitempty"`
	LicenseNumber *string            `json:"license_number,omitempty"`
	Website       *string            `json:"website,omitempty"`
	Documents     dbtypes.Documents  `json:"documents"`
	CustomFields  dbtypes.JSONMap    `json:"custom_fields"`
	LinkedUserID  *uuid.UUID         `json:"linked_user_id,omitempty"`
	AssignedShops []string           `json:"assigned_shops,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// CreateVendorInput holds creation-time vendor data.
type CreateVendorInput struct {
	Name          string
	Owner         string
	Email         string
	Phone         *string
	Address       *string
	Status        *enums.VendorStatus
	TaxID         *string
	LicenseNumber *string
	Website       *string
	Documents     dbtypes.Documents
	CustomFields  dbtypes.JSONMap
	CreateLogin   bool
}

// UpdateVendorInput captures the vendor fields an administrator may change.
type UpdateVendorInput struct {
	Name          *string
	Owner         *string
	Phone         *string
	Address       *string
	Status        *enums.VendorStatus
	TaxID         *string
	LicenseNumber *string
	Website       *string
	Documents     *dbtypes.Documents
	CustomFields  *dbtypes.JSONMap
}

// ToModel maps the input into a persisted vendor row.
func (in CreateVendorInput) ToModel() *models.Vendor {
	status := enums.VendorStatusActive
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
	return &models.Vendor{
		ID:            uuid.New(),
		Name:          in.Name,
		Owner:         in.Owner,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		Status:        status,
		TaxID:         in.TaxID,
		LicenseNumber: in.LicenseNumber,
		Website:       in.Website,
		Documents:     docs,
		CustomFields:  custom,
	}
}

// FromModel maps the persisted vendor into a DTO.
func FromModel(m *models.Vendor) *VendorDTO {
	if m == nil {
		return nil
	}
	return &VendorDTO{
		ID:            m.ID,
		Name:          m.Name,
		Owner:         m.Owner,
		Email:         m.Email,
		Phone:         m.Phone,
		Address:       m.Address,
		Status:        m.Status,
		ProductsCount: m.ProductsCount,
		TaxID:         m.TaxID,
		LicenseNumber: m.LicenseNumber,
		Website:       m.Website,
		Documents:     m.Documents,
		CustomFields:  m.CustomFields,
		LinkedUserID:  m.LinkedUserID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
