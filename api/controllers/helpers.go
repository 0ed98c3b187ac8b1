package controllers

import (
	"net/http"

	"github.com/trosone/tros-backend/api/middleware"
	"github.com/trosone/tros-backend/pkg/enums"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/google/uuid"
)

type actor struct {
	UserID uuid.UUID
	Email  string
	Role   enums.Role
}

// actorFromRequest rebuilds the caller identity seeded by the auth middleware.
func actorFromRequest(r *http.Request) (actor, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	role, err := enums.ParseRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		return actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "role context missing")
	}
	return actor{
		UserID: userID,
		Email:  middleware.EmailFromContext(r.Context()),
		Role:   role,
	}, nil
}
