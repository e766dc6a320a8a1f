package handler

import (
	"net/http"

	"github.com/JuniorCesarMarques/ecommerce/internal/apierror"
	"github.com/JuniorCesarMarques/ecommerce/internal/dto"
	"github.com/JuniorCesarMarques/ecommerce/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoriesHandler struct{ svc service.CategoryService }

func NewCategoriesHandler(svc service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{svc: svc}
}

// List godoc
// @Summary  List categories as {id, name} pairs
// @Tags     categories
// @Produce  json
// @Success  200 {array} dto.CategoryItem
// @Router   /api/categories [get]
func (h *CategoriesHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list categories"))
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CategoriesHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
