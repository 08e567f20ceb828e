package repository

import (
	"context"

	"finchpay/internal/models"

	"gorm.io/gorm"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, a *models.OperatorAlert) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// ListRecent returns the newest alerts for the ops view.
func (r *AlertRepository) ListRecent(ctx context.Context, limit int) ([]models.OperatorAlert, error) {
	var list []models.OperatorAlert
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&list).Error
	return list, err
}
