package service

import (
	"context"
	"sync"
	"testing"

	"github.com/JuniorCesarMarques/ecommerce/internal/dto"
	"github.com/JuniorCesarMarques/ecommerce/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory CategoryRepository stub ────────────────────────────────────────

type stubCategoryRepo struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]*model.Category
	bySlug map[string]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{
		byID:   make(map[uuid.UUID]*model.Category),
		bySlug: make(map[string]*model.Category),
	}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.bySlug[c.Slug]; taken {
		return gorm.ErrDuplicatedKey
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cloned := *c
	r.byID[c.ID] = &cloned
	r.bySlug[c.Slug] = &cloned
	return nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Category
	for _, c := range r.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *c
	return &cloned, nil
}

func (r *stubCategoryRepo) FindBySlug(_ context.Context, slug string) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.bySlug[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *c
	return &cloned, nil
}

func seedCategory(t *testing.T, repo *stubCategoryRepo, name, slug string) *model.Category {
	t.Helper()
	c := &model.Category{Name: name, Slug: slug}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func validProductRequest(categoryID string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:       "Feijão Carioca 1kg",
		Type:       "kilogram",
		Price:      decimal.RequireFromString("12.90"),
		CategoryID: categoryID,
		Barcode:    "7891234567890",
	}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCreateProductPersistsValidRequest(t *testing.T) {
	products := newStubProductRepo()
	categories := newStubCategoryRepo()
	svc := NewProductService(products, categories)

	cat := seedCategory(t, categories, "Grãos", "graos")

	resp, err := svc.Create(context.Background(), validProductRequest(cat.ID.String()))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Feijão Carioca 1kg", resp.Name)
	assert.Equal(t, cat.ID.String(), resp.CategoryID)
	assert.True(t, resp.Price.Equal(decimal.RequireFromString("12.9")))

	// The created product's category must reference an existing category row.
	_, err = categories.FindByID(context.Background(), uuid.MustParse(resp.CategoryID))
	assert.NoError(t, err)
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), newStubCategoryRepo())

	_, err := svc.Create(context.Background(), validProductRequest(uuid.NewString()))
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateProductRejectsMalformedCategoryID(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), newStubCategoryRepo())

	_, err := svc.Create(context.Background(), validProductRequest("not-a-uuid"))
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateProductRejectsDuplicateBarcode(t *testing.T) {
	products := newStubProductRepo()
	categories := newStubCategoryRepo()
	svc := NewProductService(products, categories)

	cat := seedCategory(t, categories, "Grãos", "graos")

	_, err := svc.Create(context.Background(), validProductRequest(cat.ID.String()))
	require.NoError(t, err)

	req := validProductRequest(cat.ID.String())
	req.Name = "Feijão Preto 1kg"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateBarcode)
}

func TestGetByIDReturnsNotFound(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), newStubCategoryRepo())

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListComputesTotalPages(t *testing.T) {
	products := newStubProductRepo()
	categories := newStubCategoryRepo()
	svc := NewProductService(products, categories)

	cat := seedCategory(t, categories, "Grãos", "graos")
	for i := 0; i < 5; i++ {
		req := validProductRequest(cat.ID.String())
		req.Barcode = uuid.NewString()
		_, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
	}

	resp, err := svc.List(context.Background(), dto.ProductFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
}
