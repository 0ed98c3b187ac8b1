package models

import (
	"time"

	"github.com/trosone/tros-backend/pkg/enums"
	"github.com/google/uuid"
)

// ActivityLog is an append-only timeline entry. Write failures are swallowed
// by the service layer.
type ActivityLog struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Type        enums.ActivityType `gorm:"column:type;not null;index"`
	Description string             `gorm:"column:description;not null"`
	Actor       string             `gorm:"column:actor;not null;default:''"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime;index"`
}
