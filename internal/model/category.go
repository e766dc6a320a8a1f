package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies products. Slug is the URL-facing identifier.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Slug      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Products []Product
}
