package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JuniorCesarMarques/ecommerce/internal/dto"
	"github.com/JuniorCesarMarques/ecommerce/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCategoryService struct {
	items     []dto.CategoryItem
	listErr   error
	createErr error
}

func (s *stubCategoryService) Create(_ context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error) {
	if s.createErr != nil {
		return dto.CategoryResponse{}, s.createErr
	}
	return dto.CategoryResponse{ID: "11111111-1111-1111-1111-111111111111", Name: req.Name, Slug: "slug"}, nil
}

func (s *stubCategoryService) List(_ context.Context) ([]dto.CategoryItem, error) {
	return s.items, s.listErr
}

func categoriesRouter(svc service.CategoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCategoriesHandler(svc)
	r.GET("/api/categories", h.List)
	r.POST("/api/categories", h.Create)
	return r
}

func TestListCategoriesReturnsIDNamePairs(t *testing.T) {
	svc := &stubCategoryService{items: []dto.CategoryItem{
		{ID: "a", Name: "Grãos"},
		{ID: "b", Name: "Bebidas"},
	}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	categoriesRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// The form consumes exactly [{id, name}, ...].
	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	require.Len(t, raw, 2)
	assert.Equal(t, map[string]interface{}{"id": "a", "name": "Grãos"}, raw[0])
}

func TestListCategoriesFailureReturns500(t *testing.T) {
	svc := &stubCategoryService{listErr: errors.New("db down")}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	categoriesRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreateCategoryReturns201(t *testing.T) {
	w := postJSON(categoriesRouter(&stubCategoryService{}), "/api/categories", `{"name": "Grãos"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateCategoryValidationReturns422(t *testing.T) {
	w := postJSON(categoriesRouter(&stubCategoryService{}), "/api/categories", `{"name": ""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
