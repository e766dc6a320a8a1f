package model

import (
	"time"

	"github.com/google/uuid"
)

// OrphanUpload records an object that was written to the bucket but whose
// product row never committed. A background worker deletes these from
// storage; the row is kept (with Deleted=true) as an audit trail.
type OrphanUpload struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Path        string    `gorm:"not null;index"`
	Reason      string    `gorm:"not null"`
	RetryCount  int       `gorm:"not null;default:0"`
	NextRetryAt *time.Time
	LastError   *string
	Deleted     bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
