package worker

// receipt_worker.go
// Generates a PDF receipt for a paid order and chains an email job carrying
// the attachment. Runs off QueueReceipt.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JuniorCesarMarques/ecommerce/internal/infra"
	"github.com/JuniorCesarMarques/ecommerce/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	OrderID string `json:"order_id"`
}

// ReceiptWorker renders receipts for paid orders.
type ReceiptWorker struct {
	orders      repository.OrderRepository
	users       repository.UserRepository
	dispatcher  *Dispatcher
	storagePath string
}

func NewReceiptWorker(orders repository.OrderRepository, users repository.UserRepository, dispatcher *Dispatcher, storagePath string) *ReceiptWorker {
	return &ReceiptWorker{orders: orders, users: users, dispatcher: dispatcher, storagePath: storagePath}
}

// Process loads the order, renders the PDF, and enqueues the email.
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}
	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		log.Error().Str("order_id", payload.OrderID).Msg("receipt_worker: malformed order id")
		return
	}

	order, err := w.orders.FindByID(ctx, orderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", payload.OrderID).Msg("receipt_worker: order not found")
		return
	}
	user, err := w.users.FindByID(ctx, order.UserID)
	if err != nil {
		log.Error().Err(err).Str("order_id", payload.OrderID).Msg("receipt_worker: order owner not found")
		return
	}

	pdfPath, err := infra.GenerateReceiptPDF(order, user.Name, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("order_id", payload.OrderID).Msg("receipt_worker: PDF generation failed")
		return
	}

	emailPayload := EmailJobPayload{
		ToEmail: user.Email,
		Subject: "Your order receipt",
		Body:    fmt.Sprintf("Hi %s,\n\nThanks for your purchase. Your receipt for order %s is attached.\n", user.Name, order.ID),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailPayload); err != nil {
		log.Error().Err(err).Str("order_id", payload.OrderID).Msg("receipt_worker: failed to enqueue email")
		return
	}
	log.Info().Str("order_id", payload.OrderID).Str("pdf", pdfPath).Msg("receipt_worker: receipt generated")
}
