package repository

import (
	"context"
	"errors"

	"finchpay/internal/models"

	"gorm.io/gorm"
)

// SettlementAccountRepository is the read-only registry of outbound
// settlement bank accounts.
type SettlementAccountRepository struct {
	db *gorm.DB
}

func NewSettlementAccountRepository(db *gorm.DB) *SettlementAccountRepository {
	return &SettlementAccountRepository{db: db}
}

func (r *SettlementAccountRepository) GetActive(ctx context.Context) (*models.SettlementAccount, error) {
	var a models.SettlementAccount
	err := r.db.WithContext(ctx).Where("active = ?", true).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSettlementAccount
		}
		return nil, err
	}
	return &a, nil
}
