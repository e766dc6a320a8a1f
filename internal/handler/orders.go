package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/JuniorCesarMarques/ecommerce/internal/apierror"
	"github.com/JuniorCesarMarques/ecommerce/internal/dto"
	"github.com/JuniorCesarMarques/ecommerce/internal/middleware"
	"github.com/JuniorCesarMarques/ecommerce/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return uuid.Nil, false
	}
	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, false
	}
	return uid, true
}

// GetDraft godoc
// @Summary  Return the caller's DRAFT order, creating one if absent
// @Tags     orders
// @Produce  json
// @Success  200 {object} dto.OrderResponse
// @Security BearerAuth
// @Router   /api/orders/draft [get]
func (h *OrdersHandler) GetDraft(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("authentication required"))
		return
	}
	resp, err := h.svc.GetOrCreateDraft(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load draft order"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) AddItem(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("authentication required"))
		return
	}
	var req dto.AddOrderItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddItem(c.Request.Context(), uid, req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("failed to add item"))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdersHandler) Pay(c *gin.Context) {
	h.transition(c, h.svc.Pay)
}

func (h *OrdersHandler) Cancel(c *gin.Context) {
	h.transition(c, h.svc.Cancel)
}

func (h *OrdersHandler) transition(c *gin.Context, fn func(ctx context.Context, userID, orderID uuid.UUID) (*dto.OrderResponse, error)) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("authentication required"))
		return
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := fn(c.Request.Context(), uid, orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrNotDraft), errors.Is(err, service.ErrEmptyOrder):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		case errors.Is(err, service.ErrOrderConflict):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("failed to update order"))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}
