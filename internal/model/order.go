package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order status values. Transitions: DRAFT → PAID or DRAFT → CANCELED.
const (
	OrderDraft    = "DRAFT"
	OrderPaid     = "PAID"
	OrderCanceled = "CANCELED"
)

// Order is a per-user cart/order row. The composite unique index on
// (user_id, status) enforces at most one order per (user, status) pair —
// in particular, one DRAFT cart per user at a time.
type Order struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_orders_user_status"`
	Status    string          `gorm:"type:varchar(10);not null;default:'DRAFT';uniqueIndex:idx_orders_user_status"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt time.Time

	User  *User       `gorm:"foreignKey:UserID"`
	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

// OrderItem links an order to a product. Price is snapshotted from the
// product at the moment the item is added and never recomputed, so later
// catalog price changes do not rewrite history.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
