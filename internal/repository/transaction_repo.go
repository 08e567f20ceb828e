package repository

import (
	"context"
	"errors"
	"time"

	"finchpay/internal/models"

	"gorm.io/gorm"
)

// TransactionRepository is the inbound payment ledger. Terminal transitions
// are guarded by a conditional UPDATE on status = pending, so two handlers
// racing on the same delivery resolve the row exactly once.
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) GetByTxRef(ctx context.Context, txRef string) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	err := r.db.WithContext(ctx).Where("tx_ref = ?", txRef).First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// Resolve moves the transaction for txRef to a terminal status. The returned
// bool is true when the row was already terminal (a replayed delivery); in
// that case nothing is written and the stored row is returned as-is.
func (r *TransactionRepository) Resolve(ctx context.Context, txRef, status string, settledAmount int64, rawPayload string, verifiedAt time.Time) (*models.PaymentTransaction, bool, error) {
	tx, err := r.GetByTxRef(ctx, txRef)
	if err != nil {
		return nil, false, err
	}
	if tx.Terminal() {
		return tx, true, nil
	}

	res := r.db.WithContext(ctx).
		Model(&models.PaymentTransaction{}).
		Where("tx_ref = ? AND status = ?", txRef, models.TxStatusPending).
		Updates(map[string]interface{}{
			"status":         status,
			"settled_amount": settledAmount,
			"raw_payload":    rawPayload,
			"verified_at":    verifiedAt,
		})
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race to a concurrent delivery of the same event.
		tx, err = r.GetByTxRef(ctx, txRef)
		if err != nil {
			return nil, false, err
		}
		return tx, true, nil
	}

	tx.Status = status
	tx.SettledAmount = settledAmount
	tx.RawPayload = rawPayload
	tx.VerifiedAt = &verifiedAt
	return tx, false, nil
}
