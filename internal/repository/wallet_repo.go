package repository

import (
	"context"
	"errors"

	"finchpay/internal/models"

	"gorm.io/gorm"
)

// WalletRepository is the merchant wallet ledger. Credit and Debit are the
// only balance mutations; both ride an audit WalletTransaction inside one
// database transaction.
type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) GetByOwnerID(ctx context.Context, ownerID uint) (*models.Wallet, error) {
	var w models.Wallet
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return &w, nil
}

// Credit adds amount to the owner's wallet, keyed by the payment transaction
// that funds it. The audit row's unique (reference_id, type) index is the
// dedup boundary: a replayed credit returns ErrDuplicateEvent and leaves the
// balance untouched.
func (r *WalletRepository) Credit(ctx context.Context, ownerID uint, amount int64, referenceID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var w models.Wallet
		if err := tx.Where("owner_id = ?", ownerID).First(&w).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWalletNotFound
			}
			return err
		}

		audit := models.WalletTransaction{
			WalletID:    w.ID,
			Type:        models.WalletTxDeposit,
			Amount:      amount,
			ReferenceID: referenceID,
		}
		if err := tx.Create(&audit).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateEvent
			}
			return err
		}

		return tx.Model(&models.Wallet{}).Where("id = ?", w.ID).
			Updates(map[string]interface{}{
				"balance":         gorm.Expr("balance + ?", amount),
				"total_deposited": gorm.Expr("total_deposited + ?", amount),
			}).Error
	})
}

// Debit removes amount from the owner's wallet under the same audit and
// dedup rules as Credit.
func (r *WalletRepository) Debit(ctx context.Context, ownerID uint, amount int64, referenceID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var w models.Wallet
		if err := tx.Where("owner_id = ?", ownerID).First(&w).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWalletNotFound
			}
			return err
		}
		if w.Balance < amount {
			return ErrInsufficientBalance
		}

		audit := models.WalletTransaction{
			WalletID:    w.ID,
			Type:        models.WalletTxWithdrawal,
			Amount:      amount,
			ReferenceID: referenceID,
		}
		if err := tx.Create(&audit).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateEvent
			}
			return err
		}

		return tx.Model(&models.Wallet{}).Where("id = ?", w.ID).
			Updates(map[string]interface{}{
				"balance":     gorm.Expr("balance - ?", amount),
				"total_spent": gorm.Expr("total_spent + ?", amount),
			}).Error
	})
}
