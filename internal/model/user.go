package model

import (
	"time"

	"github.com/google/uuid"
)

// Role values for User.Role.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User stores storefront accounts with role-based access.
// Email and TaxID are globally unique.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	TaxID        string    `gorm:"column:tax_id;uniqueIndex;not null"`
	CompanyName  *string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(10);not null;default:'USER'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Auth-provider linkage rows are removed together with the user.
	Accounts       []Account       `gorm:"constraint:OnDelete:CASCADE"`
	Sessions       []Session       `gorm:"constraint:OnDelete:CASCADE"`
	Authenticators []Authenticator `gorm:"constraint:OnDelete:CASCADE"`
	Orders         []Order
}
