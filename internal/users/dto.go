package users

import (
	"time"

	dbtypes "github.com/trosone/tros-backend/pkg/db/types"
	"github.com/trosone/tros-backend/pkg/db/models"
	"github.com/trosone/tros-backend/pkg/enums"
	"github.com/google/uuid"
)

// UserDTO exposes safe account data in API responses.
type UserDTO struct {
	ID          uuid.UUID         `json:"id"`
	Email       string            `json:"email"`
	DisplayName string            `json:"display_name"`
	Phone       *string           `json:"phone,omitempty"`
	Role        enums.Role        `json:"role"`
	Documents   dbtypes.Documents `json:"documents"`
	LastLoginAt *time.Time        `json:"last_login_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CreateUserDTO holds creation-time data for a new account.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	DisplayName  string
	Phone        *string
	Role         enums.Role
}

// ToModel maps the DTO into a persisted user row.
func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		DisplayName:  d.DisplayName,
		Phone:        d.Phone,
		Role:         d.Role,
		Documents:    dbtypes.Documents{},
	}
}

// UpdateProfileInput captures the profile fields a user may change.
type UpdateProfileInput struct {
	DisplayName *string
	Phone       *string
	Documents   *dbtypes.Documents
}

// FromModel maps the persisted user into a DTO.
func FromModel(m *models.User) *UserDTO {
	if m == nil {
		return nil
	}
	return &UserDTO{
		ID:          m.ID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Phone:       m.Phone,
		Role:        m.Role,
		Documents:   m.Documents,
		LastLoginAt: m.LastLoginAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
