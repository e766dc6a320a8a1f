package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/JuniorCesarMarques/ecommerce/internal/dto"
	"github.com/JuniorCesarMarques/ecommerce/internal/model"
	"github.com/JuniorCesarMarques/ecommerce/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	categoryCacheKey = "cache:categories"
	categoryCacheTTL = 60 * time.Second
)

// CategoryService defines business operations for product categories.
type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	// List returns the {id, name} mappings the product form consumes on mount.
	List(ctx context.Context) ([]dto.CategoryItem, error)
}

type categoryService struct {
	repo repository.CategoryRepository
	rdb  *redis.Client
}

func NewCategoryService(repo repository.CategoryRepository, rdb *redis.Client) CategoryService {
	return &categoryService{repo: repo, rdb: rdb}
}

// Slugify lowercases the name and collapses every non-alphanumeric run into
// a single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error) {
	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}
	if slug == "" {
		return dto.CategoryResponse{}, errors.New("category name yields an empty slug")
	}

	existing, err := s.repo.FindBySlug(ctx, slug)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CategoryResponse{}, err
	}
	if existing != nil {
		return dto.CategoryResponse{}, errors.New("a category with that slug already exists")
	}

	c := &model.Category{Name: req.Name, Slug: slug}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.CategoryResponse{}, errors.New("a category with that slug already exists")
		}
		return dto.CategoryResponse{}, err
	}

	s.invalidateCache(ctx)

	return dto.CategoryResponse{ID: c.ID.String(), Name: c.Name, Slug: c.Slug}, nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryItem, error) {
	if items, ok := s.cachedList(ctx); ok {
		return items, nil
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryItem, 0, len(list))
	for _, c := range list {
		items = append(items, dto.CategoryItem{ID: c.ID.String(), Name: c.Name})
	}

	s.storeCache(ctx, items)
	return items, nil
}

// ── Redis cache (best-effort; a cold or absent cache never fails a request) ──

func (s *categoryService) cachedList(ctx context.Context) ([]dto.CategoryItem, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, categoryCacheKey).Result()
	if err != nil {
		return nil, false
	}
	var items []dto.CategoryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false
	}
	return items, true
}

func (s *categoryService) storeCache(ctx context.Context, items []dto.CategoryItem) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, categoryCacheKey, data, categoryCacheTTL).Err(); err != nil {
		log.Debug().Err(err).Msg("category cache write skipped")
	}
}

func (s *categoryService) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, categoryCacheKey).Err(); err != nil {
		log.Debug().Err(err).Msg("category cache invalidation skipped")
	}
}
