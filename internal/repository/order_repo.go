package repository

import (
	"context"

	"github.com/JuniorCesarMarques/ecommerce/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderRepository defines the data access contract for orders and line items.
type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindDraftByUserID(ctx context.Context, userID uuid.UUID) (*model.Order, error)

	// Used inside transactions — callers must pass the tx instance.
	CreateItemTx(tx *gorm.DB, item *model.OrderItem) error
	AddToTotalTx(tx *gorm.DB, orderID uuid.UUID, delta decimal.Decimal) error
	UpdateStatusTx(tx *gorm.DB, orderID uuid.UUID, status string) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items").Preload("Items.Product").First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindDraftByUserID(ctx context.Context, userID uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("user_id = ? AND status = ?", userID, model.OrderDraft).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) CreateItemTx(tx *gorm.DB, item *model.OrderItem) error {
	return tx.Create(item).Error
}

// AddToTotalTx increments the order total atomically in SQL. A relative
// update keeps concurrent AddItem calls from clobbering each other's totals.
func (r *orderRepo) AddToTotalTx(tx *gorm.DB, orderID uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.Order{}).Where("id = ?", orderID).
		Update("total", gorm.Expr("total + ?", delta)).Error
}

func (r *orderRepo) UpdateStatusTx(tx *gorm.DB, orderID uuid.UUID, status string) error {
	return tx.Model(&model.Order{}).Where("id = ?", orderID).Update("status", status).Error
}

func (r *orderRepo) DB() *gorm.DB { return r.db }
