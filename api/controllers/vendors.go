package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trosone/tros-backend/api/responses"
	"github.com/trosone/tros-backend/api/validators"
	vendorsvc "github.com/trosone/tros-backend/internal/vendors"
	dbtypes "github.com/trosone/tros-backend/pkg/db/types"
	"github.com/trosone/tros-backend/pkg/enums"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/trosone/tros-backend/pkg/logger"
)

type createVendorRequest struct {
	Name          string            `json:"name" validate:"required"`
	Owner         string            `json:"owner"`
	Email         string            `json:"email" validate:"required,email"`
	Phone         *string           `json:"phone"`
	Address       *string           `json:"address"`
	Status        *string           `json:"status"`
	TaxID         *string           `json:"tax_id"`
	LicenseNumber *string           `json:"license_number"`
	Website       *string           `json:"website"`
	Documents     dbtypes.Documents `json:"documents"`
	CustomFields  dbtypes.JSONMap   `json:"custom_fields"`
	CreateLogin   bool              `json:"create_login"`
}

type updateVendorRequest struct {
	Name          *string            `json:"name"`
	Owner         *string            `json:"owner"`
	Phone         *string            `json:"phone"`
	Address       *string            `json:"address"`
	Status        *string            `json:"status"`
	TaxID         *string            `json:"tax_id"`
	LicenseNumber *string            `json:"license_number"`
	Website       *string            `json:"website"`
	Documents     *dbtypes.Documents `json:"documents"`
	CustomFields  *dbtypes.JSONMap   `json:"custom_fields"`
}

func VendorCreate(svc vendorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createVendorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := vendorsvc.CreateVendorInput{
			Name:          payload.Name,
			Owner:         payload.Owner,
			Email:         payload.Email,
			Phone:         payload.Phone,
			Address:       payload.Address,
			TaxID:         payload.TaxID,
			LicenseNumber: payload.LicenseNumber,
			Website:       payload.Website,
			Documents:     payload.Documents,
			CustomFields:  payload.CustomFields,
			CreateLogin:   payload.CreateLogin,
		}
		if payload.Status != nil {
			status, err := enums.ParseVendorStatus(*payload.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, err.Error()))
				return
			}
			input.Status = &status
		}

		vendor, tempPassword, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		body := map[string]any{"vendor": vendor}
		if tempPassword != "" {
			// Returned exactly once; the hash is all that persists.
			body["temp_password"] = tempPassword
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, body)
	}
}

func VendorList(svc vendorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendors, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendors)
	}
}

func VendorDetail(svc vendorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "vendorId"), "vendorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

func VendorUpdate(svc vendorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "vendorId"), "vendorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateVendorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := vendorsvc.UpdateVendorInput{
			Name:          payload.Name,
			Owner:         payload.Owner,
			Phone:         payload.Phone,
			Address:       payload.Address,
			TaxID:         payload.TaxID,
			LicenseNumber: payload.LicenseNumber,
			Website:       payload.Website,
			Documents:     payload.Documents,
			CustomFields:  payload.CustomFields,
		}
		if payload.Status != nil {
			status, err := enums.ParseVendorStatus(*payload.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, err.Error()))
				return
			}
			input.Status = &status
		}

		vendor, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

func VendorDelete(svc vendorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "vendorId"), "vendorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
