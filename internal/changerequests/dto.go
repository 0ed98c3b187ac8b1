package changerequests

import (
	"time"

	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/google/uuid"
)

// ChangeRequestDTO is the wire shape of a vendor change request.
type ChangeRequestDTO struct {
	ID               uuid.UUID  `json:"id"`
	VendorID         *uuid.UUID `json:"vendor_id,omitempty"`
	VendorName       string     `json:"vendor_name"`
	TargetCollection string     `json:"target_collection"`
	TargetID         *uuid.UUID `json:"target_id,omitempty"`
	TargetName       *string    `json:"target_name,omitempty"`
	RequestType      string     `json:"request_type"`
	Description      string     `json:"description"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
}

// SubmitInput carries the fields a vendor provides. Status is never
// caller-settable; every new request starts Pending.
type SubmitInput struct {
	TargetCollection string     `json:"target_collection" validate:"required"`
	TargetID         *uuid.UUID `json:"target_id"`
	TargetName       *string    `json:"target_name"`
	RequestType      string     `json:"request_type" validate:"required"`
	Description      string     `json:"description" validate:"required"`
}

// FromModel converts a persistence model into the wire shape.
func FromModel(cr *models.ChangeRequest) *ChangeRequestDTO {
	return &ChangeRequestDTO{
		ID:               cr.ID,
		VendorID:         cr.VendorID,
		VendorName:       cr.VendorName,
		TargetCollection: cr.TargetCollection,
		TargetID:         cr.TargetID,
		TargetName:       cr.TargetName,
		RequestType:      cr.RequestType.String(),
		Description:      cr.Description,
		Status:           cr.Status.String(),
		CreatedAt:        cr.CreatedAt,
	}
}

func fromModels(rows []models.ChangeRequest) []ChangeRequestDTO {
	out := make([]ChangeRequestDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
