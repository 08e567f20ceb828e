package repository

import (
	"context"
	"time"

	"finchpay/internal/models"

	"gorm.io/gorm"
)

// LedgerEventRepository is the append-only outbox.
type LedgerEventRepository struct {
	db *gorm.DB
}

func NewLedgerEventRepository(db *gorm.DB) *LedgerEventRepository {
	return &LedgerEventRepository{db: db}
}

func (r *LedgerEventRepository) Append(ctx context.Context, e *models.LedgerEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *LedgerEventRepository) ListUnprocessed(ctx context.Context, limit int) ([]models.LedgerEvent, error) {
	var list []models.LedgerEvent
	err := r.db.WithContext(ctx).
		Where("processed_at IS NULL").
		Order("id ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *LedgerEventRepository) MarkProcessed(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.LedgerEvent{}).
		Where("id = ? AND processed_at IS NULL", id).
		Update("processed_at", at).Error
}
