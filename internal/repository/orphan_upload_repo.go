package repository

import (
	"context"
	"time"

	"github.com/JuniorCesarMarques/ecommerce/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrphanUploadRepository tracks bucket objects pending garbage collection.
type OrphanUploadRepository interface {
	Create(ctx context.Context, o *model.OrphanUpload) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrphanUpload, error)
	Update(ctx context.Context, o *model.OrphanUpload) error
	MarkDeleted(ctx context.Context, id uuid.UUID) error
	// ListPendingRetries returns undeleted orphans whose next_retry_at is due.
	ListPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.OrphanUpload, error)
}

type orphanUploadRepo struct{ db *gorm.DB }

func NewOrphanUploadRepository(db *gorm.DB) OrphanUploadRepository {
	return &orphanUploadRepo{db: db}
}

func (r *orphanUploadRepo) Create(ctx context.Context, o *model.OrphanUpload) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orphanUploadRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OrphanUpload, error) {
	var o model.OrphanUpload
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orphanUploadRepo) Update(ctx context.Context, o *model.OrphanUpload) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *orphanUploadRepo) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.OrphanUpload{}).
		Where("id = ?", id).Update("deleted", true).Error
}

func (r *orphanUploadRepo) ListPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.OrphanUpload, error) {
	var list []model.OrphanUpload
	err := r.db.WithContext(ctx).
		Where("deleted = false AND next_retry_at IS NOT NULL AND next_retry_at <= ?", now).
		Order("next_retry_at asc").Limit(limit).Find(&list).Error
	return list, err
}
