package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JuniorCesarMarques/ecommerce/internal/dto"
	"github.com/JuniorCesarMarques/ecommerce/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

type stubProductService struct {
	createErr error
	created   []dto.CreateProductRequest
}

func (s *stubProductService) Create(_ context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, req)
	return &dto.ProductResponse{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Price:      req.Price,
		CategoryID: req.CategoryID,
		Barcode:    req.Barcode,
	}, nil
}

func (s *stubProductService) GetByID(_ context.Context, _ uuid.UUID) (*dto.ProductResponse, error) {
	return nil, service.ErrProductNotFound
}

func (s *stubProductService) List(_ context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	return &dto.ProductListResponse{Data: []dto.ProductResponse{}, Page: filter.Page, Limit: filter.Limit}, nil
}

func productsRouter(svc service.ProductService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewProductsHandler(svc)
	r.POST("/api/products", h.Create)
	r.GET("/api/products", h.List)
	r.GET("/api/products/:id", h.GetByID)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validProductBody = `{
	"name": "Feijão Carioca 1kg",
	"type": "kilogram",
	"price": 12.9,
	"categoryId": "0b9fbd9e-4f6a-4f41-9f65-6dd397c0f6f1",
	"barcode": "7891234567890"
}`

func TestCreateProductReturns201(t *testing.T) {
	svc := &stubProductService{}
	w := postJSON(productsRouter(svc), "/api/products", validProductBody)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, svc.created, 1)
	assert.True(t, svc.created[0].Price.Equal(decimalFromString(t, "12.9")))

	var resp dto.ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Feijão Carioca 1kg", resp.Name)
}

func TestCreateProductAcceptsZeroPrice(t *testing.T) {
	svc := &stubProductService{}
	w := postJSON(productsRouter(svc), "/api/products", `{
		"name": "Amostra Grátis",
		"type": "unit",
		"price": 0,
		"categoryId": "0b9fbd9e-4f6a-4f41-9f65-6dd397c0f6f1",
		"barcode": "7891234567891"
	}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, svc.created, 1)
	assert.True(t, svc.created[0].Price.IsZero())
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	svc := &stubProductService{}
	w := postJSON(productsRouter(svc), "/api/products", `{
		"name": "Feijão Carioca 1kg",
		"type": "kilogram",
		"price": -1,
		"categoryId": "0b9fbd9e-4f6a-4f41-9f65-6dd397c0f6f1",
		"barcode": "7891234567890"
	}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, svc.created)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "Price")
}

func TestCreateProductValidationReturns422WithFieldErrors(t *testing.T) {
	svc := &stubProductService{}
	w := postJSON(productsRouter(svc), "/api/products", `{
		"name": "",
		"type": "dozen",
		"price": 1,
		"categoryId": "not-a-uuid",
		"barcode": ""
	}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, svc.created, "invalid input must not reach the service")

	var body struct {
		Detail string            `json:"detail"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "Name")
	assert.Contains(t, body.Fields, "Type")
	assert.Contains(t, body.Fields, "CategoryID")
	assert.Contains(t, body.Fields, "Barcode")
}

func TestCreateProductUnknownCategoryReturns400(t *testing.T) {
	svc := &stubProductService{createErr: service.ErrCategoryNotFound}
	w := postJSON(productsRouter(svc), "/api/products", validProductBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductDuplicateBarcodeReturns409(t *testing.T) {
	svc := &stubProductService{createErr: service.ErrDuplicateBarcode}
	w := postJSON(productsRouter(svc), "/api/products", validProductBody)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetProductInvalidIDReturns400(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/abc", nil)
	productsRouter(&stubProductService{}).ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
