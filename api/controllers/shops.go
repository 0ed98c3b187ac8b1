package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trosone/tros-backend/api/responses"
	"github.com/trosone/tros-backend/api/validators"
	shopsvc "github.com/trosone/tros-backend/internal/shops"
	dbtypes "github.com/trosone/tros-backend/pkg/db/types"
	"github.com/trosone/tros-backend/pkg/enums"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/trosone/tros-backend/pkg/logger"
	"github.com/google/uuid"
)

type createShopRequest struct {
	Name           string            `json:"name" validate:"required"`
	Manager        *string           `json:"manager"`
	Location       *string           `json:"location"`
	Address        *string           `json:"address"`
	Phone          *string           `json:"phone"`
	Status         *string           `json:"status"`
	ShopType       *string           `json:"shop_type"`
	OperatingHours *string           `json:"operating_hours"`
	SquareFootage  *int              `json:"square_footage"`
	Documents      dbtypes.Documents `json:"documents"`
	CustomFields   dbtypes.JSONMap   `json:"custom_fields"`
}

type updateShopRequest struct {
	Name           *string            `json:"name"`
	Manager        *string            `json:"manager"`
	Location       *string            `json:"location"`
	Address        *string            `json:"address"`
	Phone          *string            `json:"phone"`
	Status         *string            `json:"status"`
	ShopType       *string            `json:"shop_type"`
	OperatingHours *string            `json:"operating_hours"`
	SquareFootage  *int               `json:"square_footage"`
	Documents      *dbtypes.Documents `json:"documents"`
	CustomFields   *dbtypes.JSONMap   `json:"custom_fields"`
}

type assignVendorRequest struct {
	VendorID uuid.UUID `json:"vendor_id" validate:"required"`
}

func ShopCreate(svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createShopRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := shopsvc.CreateShopInput{
			Name:           payload.Name,
			Manager:        payload.Manager,
			Location:       payload.Location,
			Address:        payload.Address,
			Phone:          payload.Phone,
			ShopType:       payload.ShopType,
			OperatingHours: payload.OperatingHours,
			SquareFootage:  payload.SquareFootage,
			Documents:      payload.Documents,
			CustomFields:   payload.CustomFields,
		}
		if payload.Status != nil {
			status, err := enums.ParseShopStatus(*payload.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, err.Error()))
				return
			}
			input.Status = &status
		}

		shop, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, shop)
	}
}

// ShopList returns every shop for administrators and the assigned subset
// for vendors.
func ShopList(svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var shops []shopsvc.ShopDTO
		if caller.Role == enums.RoleAdministrator {
			shops, err = svc.List(r.Context())
		} else {
			shops, err = svc.ListForVendorEmail(r.Context(), caller.Email)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shops)
	}
}

func ShopDetail(svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "shopId"), "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shop)
	}
}

func ShopUpdate(svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "shopId"), "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateShopRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := shopsvc.UpdateShopInput{
			Name:           payload.Name,
			Manager:        payload.Manager,
			Location:       payload.Location,
			Address:        payload.Address,
			Phone:          payload.Phone,
			ShopType:       payload.ShopType,
			OperatingHours: payload.OperatingHours,
			SquareFootage:  payload.SquareFootage,
			Documents:      payload.Documents,
			CustomFields:   payload.CustomFields,
		}
		if payload.Status != nil {
			status, err := enums.ParseShopStatus(*payload.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, err.Error()))
				return
			}
			input.Status = &status
		}

		shop, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shop)
	}
}

// ShopAssignVendor writes the direct assignment columns on the shop row.
func ShopAssignVendor(svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "shopId"), "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload assignVendorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := svc.AssignVendor(r.Context(), id, payload.VendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shop)
	}
}

func ShopUnassignVendor(svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "shopId"), "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := svc.UnassignVendor(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shop)
	}
}

func ShopDelete(svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "shopId"), "shopId")
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
