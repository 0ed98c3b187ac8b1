package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ImportJob records one CSV import run. SkippedRows holds 1-based row
// numbers that lacked a name and were dropped silently.
type ImportJob struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Collection   string        `gorm:"column:collection;not null"`
	TotalRows    int           `gorm:"column:total_rows;not null"`
	ImportedRows int           `gorm:"column:imported_rows;not null"`
	SkippedRows  pq.Int64Array `gorm:"column:skipped_rows;type:bigint[]"`
	Batches      int           `gorm:"column:batches;not null"`
	FailedBatch  *int          `gorm:"column:failed_batch"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime"`
}
