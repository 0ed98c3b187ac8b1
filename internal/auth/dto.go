package auth

import (
	"github.com/trosone/tros-backend/pkg/enums"
	"github.com/google/uuid"
)

// Role aliases the shared enum so the package reads naturally.
type Role = enums.Role

const (
	roleAdministrator = enums.RoleAdministrator
	roleVendor        = enums.RoleVendor
)

// RegisterInput captures a signup request.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// LoginInput captures a signin request.
type LoginInput struct {
	Email    string
	Password string
}

// Session is the token pair plus resolved identity returned on login,
// register, and refresh.
type Session struct {
	UserID         uuid.UUID `json:"user_id"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	AccessToken    string    `json:"access_token"`
	RefreshToken   string    `json:"refresh_token"`
	RoleDiagnostic string    `json:"role_diagnostic,omitempty"`
}

// RoleResolution is the outcome of reading the stored role. Fallback carries
// the optimistic guess used when the read failed; Diagnostic explains why.
type RoleResolution struct {
	Role       Role
	Diagnostic string
}
