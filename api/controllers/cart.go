package controllers

import (
	"net/http"

	"github.com/trosone/tros-backend/api/responses"
	"github.com/trosone/tros-backend/api/validators"
	cartsvc "github.com/trosone/tros-backend/internal/cart"
	dbtypes "github.com/trosone/tros-backend/pkg/db/types"
	"github.com/trosone/tros-backend/pkg/logger"
)

type putCartRequest struct {
	ShopID   string             `json:"shop_id"`
	ShopName string             `json:"shop_name"`
	Items    dbtypes.OrderItems `json:"items" validate:"required"`
}

func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.Get(r.Context(), caller.UserID.String())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

// CartPut replaces the caller's cart wholesale.
func CartPut(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload putCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart := cartsvc.Cart{
			ShopID:   payload.ShopID,
			ShopName: payload.ShopName,
			Items:    payload.Items,
		}
		if err := svc.Put(r.Context(), caller.UserID.String(), cart); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Clear(r.Context(), caller.UserID.String()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
