package service

import (
	"context"
	"errors"
	"time"

	"github.com/JuniorCesarMarques/ecommerce/internal/dto"
	"github.com/JuniorCesarMarques/ecommerce/internal/model"
	"github.com/JuniorCesarMarques/ecommerce/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrCategoryNotFound — the categoryId does not reference an existing category.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrDuplicateBarcode — the barcode is already taken (globally unique).
	ErrDuplicateBarcode = errors.New("a product with that barcode already exists")
	// ErrProductNotFound — lookup by id failed.
	ErrProductNotFound = errors.New("product not found")
)

// ProductService defines the business logic contract for catalog products.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
}

type productService struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
}

func NewProductService(repo repository.ProductRepository, categories repository.CategoryRepository) ProductService {
	return &productService{repo: repo, categories: categories}
}

func mapProduct(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Type:        p.Type,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.CategoryID.String(),
		ImageURL:    p.ImageURL,
		Barcode:     p.Barcode,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create persists a validated product. Category existence is checked here
// (the client cannot), barcode uniqueness is double-checked pre-flight and
// ultimately enforced by the unique constraint — a race between two clients
// resolves at the database.
func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, ErrCategoryNotFound
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if existing, err := s.repo.FindByBarcode(ctx, req.Barcode); err == nil && existing != nil {
		return nil, ErrDuplicateBarcode
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	typ := req.Type
	p := &model.Product{
		Name:        req.Name,
		Type:        &typ,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CategoryID:  categoryID,
		Barcode:     req.Barcode,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateBarcode
		}
		return nil, err
	}

	resp := mapProduct(p)
	return &resp, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	resp := mapProduct(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, mapProduct(&products[i]))
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		totalPages++
	}

	return &dto.ProductListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}
