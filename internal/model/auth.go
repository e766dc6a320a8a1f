package model

import (
	"time"

	"github.com/google/uuid"
)

// External-auth-provider linkage records. These tables exist so that a
// hosted auth provider can persist its state; no endpoint in this service
// reads or writes them directly.

// Account links a User to an external OAuth provider account.
type Account struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index"`
	Type              string    `gorm:"not null"`
	Provider          string    `gorm:"not null;uniqueIndex:idx_accounts_provider_account"`
	ProviderAccountID string    `gorm:"not null;uniqueIndex:idx_accounts_provider_account"`
	RefreshToken      *string
	AccessToken       *string
	ExpiresAt         *int64
	TokenType         *string
	Scope             *string
	IDToken           *string
	SessionState      *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Session is a server-side login session issued by the auth provider.
type Session struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionToken string    `gorm:"uniqueIndex;not null"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Expires      time.Time `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VerificationToken backs email sign-in / verification flows.
type VerificationToken struct {
	Identifier string    `gorm:"primaryKey"`
	Token      string    `gorm:"primaryKey"`
	Expires    time.Time `gorm:"not null"`
}

// Authenticator stores WebAuthn credentials bound to a user.
type Authenticator struct {
	CredentialID         string    `gorm:"primaryKey"`
	UserID               uuid.UUID `gorm:"type:uuid;not null;index"`
	ProviderAccountID    string    `gorm:"not null"`
	CredentialPublicKey  string    `gorm:"not null"`
	Counter              int64     `gorm:"not null;default:0"`
	CredentialDeviceType string    `gorm:"not null"`
	CredentialBackedUp   bool      `gorm:"not null;default:false"`
	Transports           *string
}
