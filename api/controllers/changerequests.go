package controllers

import (
	"net/http"

	"github.com/trosone/tros-backend/api/responses"
	"github.com/trosone/tros-backend/api/validators"
	crsvc "github.com/trosone/tros-backend/internal/changerequests"
	"github.com/trosone/tros-backend/pkg/logger"
	"github.com/google/uuid"
)

type submitChangeRequestRequest struct {
	TargetCollection string     `json:"target_collection" validate:"required"`
	TargetID         *uuid.UUID `json:"target_id"`
	TargetName       *string    `json:"target_name"`
	RequestType      string     `json:"request_type" validate:"required"`
	Description      string     `json:"description" validate:"required"`
}

func ChangeRequestSubmit(svc crsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload submitChangeRequestRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.Submit(r.Context(), crsvc.Actor{Email: caller.Email, Role: caller.Role}, crsvc.SubmitInput{
			TargetCollection: payload.TargetCollection,
			TargetID:         payload.TargetID,
			TargetName:       payload.TargetName,
			RequestType:      payload.RequestType,
			Description:      payload.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

func ChangeRequestList(svc crsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		requests, err := svc.List(r.Context(), crsvc.Actor{Email: caller.Email, Role: caller.Role})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, requests)
	}
}
