package repository

import (
	"context"
	"errors"
	"time"

	"finchpay/internal/models"

	"gorm.io/gorm"
)

// TransferRepository stages and reconciles outbound settlements.
type TransferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

// Queue inserts the transfer if no transfer exists for its
// (source_type, source_id) pair. Returns false when the pair is already
// staged, which is the normal outcome of a replayed charge event.
func (r *TransferRepository) Queue(ctx context.Context, t *models.FundTransfer) (bool, error) {
	err := r.db.WithContext(ctx).Create(t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *TransferRepository) GetByExternalID(ctx context.Context, externalID int64) (*models.FundTransfer, error) {
	var t models.FundTransfer
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransferNotFound
		}
		return nil, err
	}
	return &t, nil
}

// MarkCompleted moves a pending transfer to successful. Returns false when
// the transfer was already terminal, so callers can skip downstream effects
// on replayed callbacks.
func (r *TransferRepository) MarkCompleted(ctx context.Context, externalID int64, settledAt time.Time, rawResponse string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.FundTransfer{}).
		Where("external_id = ? AND status = ?", externalID, models.TransferStatusPending).
		Updates(map[string]interface{}{
			"status":       models.TransferStatusSuccessful,
			"settled_at":   settledAt,
			"raw_response": rawResponse,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkFailed records a failure callback: terminal failed status, the
// gateway's reason, and a storage-side retry_count bump. Counting happens in
// SQL because concurrent failure callbacks for the same transfer are real.
// Completed transfers are left alone.
func (r *TransferRepository) MarkFailed(ctx context.Context, externalID int64, reason string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.FundTransfer{}).
		Where("external_id = ? AND status <> ?", externalID, models.TransferStatusSuccessful).
		Updates(map[string]interface{}{
			"status":        models.TransferStatusFailed,
			"error_message": reason,
			"retry_count":   gorm.Expr("retry_count + ?", 1),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListPending returns the oldest staged transfers, for the ops backlog view
// and the external disbursement worker.
func (r *TransferRepository) ListPending(ctx context.Context, limit int) ([]models.FundTransfer, error) {
	var list []models.FundTransfer
	err := r.db.WithContext(ctx).
		Where("status = ?", models.TransferStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}
