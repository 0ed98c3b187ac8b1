package controllers

import (
	"net/http"

	"github.com/trosone/tros-backend/api/responses"
	reportsvc "github.com/trosone/tros-backend/internal/reports"
	"github.com/trosone/tros-backend/pkg/logger"
)

func DashboardStats(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), reportsvc.Actor{Email: caller.Email, Role: caller.Role})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
