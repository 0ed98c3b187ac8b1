package models

import (
	"time"

	dbtypes "github.com/trosone/tros-backend/pkg/db/types"
	"github.com/trosone/tros-backend/pkg/enums"
	"github.com/google/uuid"
)

// User represents the canonical identity entity. Rows are created lazily
// when a login succeeds without a matching profile.
type User struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Email        string            `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string            `gorm:"column:password_hash;not null"`
	DisplayName  string            `gorm:"column:display_name;not null;default:''"`
	Phone        *string           `gorm:"column:phone"`
	Role         enums.Role        `gorm:"column:role;not null"`
	Documents    dbtypes.Documents `gorm:"column:documents;type:jsonb;not null;default:'[]'"`
	LastLoginAt  *time.Time        `gorm:"column:last_login_at"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
