package controllers

import (
	"net/http"

	"github.com/trosone/tros-backend/api/responses"
	"github.com/trosone/tros-backend/api/validators"
	activitysvc "github.com/trosone/tros-backend/internal/activity"
	"github.com/trosone/tros-backend/pkg/logger"
)

func ActivityRecent(svc activitysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", activitysvc.DefaultRecentLimit, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.Recent(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}
