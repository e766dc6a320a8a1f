package service

import (
	"context"
	"errors"
	"time"

	"github.com/JuniorCesarMarques/ecommerce/internal/dto"
	"github.com/JuniorCesarMarques/ecommerce/internal/model"
	"github.com/JuniorCesarMarques/ecommerce/internal/repository"
	"github.com/JuniorCesarMarques/ecommerce/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrNotDraft — the order already transitioned out of DRAFT.
	ErrNotDraft = errors.New("order is not in DRAFT status")
	// ErrEmptyOrder — a DRAFT with no items cannot be paid.
	ErrEmptyOrder = errors.New("order has no items")
	// ErrOrderConflict — the (user, status) pair is already taken; at most one
	// order per user may hold a given status.
	ErrOrderConflict = errors.New("user already has an order in that status")
)

// ReceiptEnqueuer dispatches the async receipt job after a successful payment.
// Satisfied by *worker.Dispatcher.
type ReceiptEnqueuer interface {
	EnqueueReceipt(ctx context.Context, payload interface{}) error
}

// OrderService implements the DRAFT cart lifecycle: one DRAFT per user,
// snapshot prices on line items, DRAFT → PAID / CANCELED transitions.
type OrderService interface {
	GetOrCreateDraft(ctx context.Context, userID uuid.UUID) (*dto.OrderResponse, error)
	AddItem(ctx context.Context, userID uuid.UUID, req dto.AddOrderItemRequest) (*dto.OrderResponse, error)
	Pay(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*dto.OrderResponse, error)
	Cancel(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*dto.OrderResponse, error)
}

type orderService struct {
	repo       repository.OrderRepository
	products   repository.ProductRepository
	dispatcher ReceiptEnqueuer
}

func NewOrderService(repo repository.OrderRepository, products repository.ProductRepository, dispatcher ReceiptEnqueuer) OrderService {
	return &orderService{repo: repo, products: products, dispatcher: dispatcher}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func mapOrder(o *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:        it.ID.String(),
			ProductID: it.ProductID.String(),
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return dto.OrderResponse{
		ID:        o.ID.String(),
		UserID:    o.UserID.String(),
		Status:    o.Status,
		Total:     o.Total,
		Items:     items,
		CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GetOrCreateDraft returns the user's single DRAFT order, creating it when
// absent. A concurrent create loses at the (user_id, status) unique index
// and falls back to re-fetching the winner's row.
func (s *orderService) GetOrCreateDraft(ctx context.Context, userID uuid.UUID) (*dto.OrderResponse, error) {
	if existing, err := s.repo.FindDraftByUserID(ctx, userID); err == nil {
		resp := mapOrder(existing)
		return &resp, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	order := &model.Order{UserID: userID, Status: model.OrderDraft, Total: decimal.Zero}
	if err := s.repo.Create(ctx, order); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, ferr := s.repo.FindDraftByUserID(ctx, userID)
			if ferr != nil {
				return nil, ferr
			}
			resp := mapOrder(winner)
			return &resp, nil
		}
		return nil, err
	}

	resp := mapOrder(order)
	return &resp, nil
}

// AddItem appends a line item to the user's DRAFT order, snapshotting the
// product's current price, and recomputes the running total in the same
// transaction. The snapshot is never updated afterwards.
func (s *orderService) AddItem(ctx context.Context, userID uuid.UUID, req dto.AddOrderItemRequest) (*dto.OrderResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	draft, err := s.getDraft(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := &model.OrderItem{
		OrderID:   draft.ID,
		ProductID: product.ID,
		Quantity:  req.Quantity,
		Price:     product.Price, // snapshot — decoupled from later catalog changes
	}

	// The total moves by a relative delta inside the transaction so that
	// concurrent AddItem calls for the same draft never clobber each other.
	delta := product.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateItemTx(tx, item); err != nil {
			return err
		}
		return s.repo.AddToTotalTx(tx, draft.ID, delta)
	})
	if txErr != nil {
		return nil, txErr
	}

	updated, err := s.repo.FindByID(ctx, draft.ID)
	if err != nil {
		return nil, err
	}
	resp := mapOrder(updated)
	return &resp, nil
}

// Pay transitions DRAFT → PAID and enqueues the receipt job. The unique
// (user_id, status) index rejects a second PAID order for the same user.
func (s *orderService) Pay(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.ownedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderDraft {
		return nil, ErrNotDraft
	}
	if len(order.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateStatusTx(tx, order.ID, model.OrderPaid)
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return nil, ErrOrderConflict
		}
		return nil, txErr
	}
	order.Status = model.OrderPaid

	if s.dispatcher != nil {
		payload := worker.ReceiptJobPayload{OrderID: order.ID.String()}
		if err := s.dispatcher.EnqueueReceipt(ctx, payload); err != nil {
			// Payment already committed — the receipt can be re-issued manually.
			log.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to enqueue receipt job")
		}
	}

	resp := mapOrder(order)
	return &resp, nil
}

// Cancel transitions DRAFT → CANCELED.
func (s *orderService) Cancel(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.ownedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderDraft {
		return nil, ErrNotDraft
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateStatusTx(tx, order.ID, model.OrderCanceled)
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return nil, ErrOrderConflict
		}
		return nil, txErr
	}
	order.Status = model.OrderCanceled

	resp := mapOrder(order)
	return &resp, nil
}

func (s *orderService) getDraft(ctx context.Context, userID uuid.UUID) (*model.Order, error) {
	draft, err := s.repo.FindDraftByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No cart yet — start one. A concurrent create may win at the
			// unique index; fall back to the winner's row.
			order := &model.Order{UserID: userID, Status: model.OrderDraft, Total: decimal.Zero}
			if cerr := s.repo.Create(ctx, order); cerr != nil {
				if errors.Is(cerr, gorm.ErrDuplicatedKey) {
					return s.repo.FindDraftByUserID(ctx, userID)
				}
				return nil, cerr
			}
			return order, nil
		}
		return nil, err
	}
	return draft, nil
}

func (s *orderService) ownedOrder(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		// Do not leak other users' order existence.
		return nil, ErrOrderNotFound
	}
	return order, nil
}
