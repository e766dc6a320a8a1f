package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Packaging types accepted for Product.Type.
const (
	PackagingUnit     = "unit"
	PackagingBox      = "box"
	PackagingPackage  = "package"
	PackagingKilogram = "kilogram"
	PackagingLiter    = "liter"
)

// PackagingTypes lists every accepted packaging type, in display order.
var PackagingTypes = []string{
	PackagingUnit, PackagingBox, PackagingPackage, PackagingKilogram, PackagingLiter,
}

// Product is a catalog entry. Rows are immutable once created — there are
// no update or delete endpoints on the catalog surface.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Type        *string   `gorm:"type:varchar(20)"`
	Description *string
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ImageURL    *string
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Barcode     string    `gorm:"uniqueIndex;not null"`
	CreatedAt   time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}
