package controllers

import (
	"net/http"

	"github.com/trosone/tros-backend/api/responses"
	"github.com/trosone/tros-backend/api/validators"
	assignmentsvc "github.com/trosone/tros-backend/internal/assignments"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/trosone/tros-backend/pkg/logger"
	"github.com/google/uuid"
)

type toggleAssignmentRequest struct {
	VendorID uuid.UUID `json:"vendor_id" validate:"required"`
	ShopID   uuid.UUID `json:"shop_id" validate:"required"`
}

// AssignmentToggle flips the join row for a vendor/shop pair.
func AssignmentToggle(svc assignmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload toggleAssignmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Toggle(r.Context(), payload.VendorID, payload.ShopID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AssignmentList filters the join collection by vendor_id or shop_id.
func AssignmentList(svc assignmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if raw := r.URL.Query().Get("vendor_id"); raw != "" {
			vendorID, err := validators.ParsePathUUID(raw, "vendor_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			rows, err := svc.ListByVendor(r.Context(), vendorID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, rows)
			return
		}

		if raw := r.URL.Query().Get("shop_id"); raw != "" {
			shopID, err := validators.ParsePathUUID(raw, "shop_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			rows, err := svc.ListByShop(r.Context(), shopID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, rows)
			return
		}

		responses.WriteError(r.Context(), logg, w,
			pkgerrors.New(pkgerrors.CodeValidation, "vendor_id or shop_id query parameter is required"))
	}
}
