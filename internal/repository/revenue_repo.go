package repository

import (
	"context"
	"errors"

	"finchpay/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevenueRepository is the per-day platform rollup. All increments are a
// single UPSERT with value = value + delta assignments; there is no
// read-then-write anywhere, so concurrent deliveries cannot lose updates.
type RevenueRepository struct {
	db *gorm.DB
}

func NewRevenueRepository(db *gorm.DB) *RevenueRepository {
	return &RevenueRepository{db: db}
}

// AddPayment rolls a settled charge into the row for date, creating it if
// absent. Net revenue takes the platform's yield share plus the gateway fee.
func (r *RevenueRepository) AddPayment(ctx context.Context, date string, gross, fee, yield int64) error {
	row := models.DailyRevenue{
		Date:          date,
		TotalPayments: gross,
		TotalFees:     fee,
		NetRevenue:    yield + fee,
		PaymentCount:  1,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_payments": gorm.Expr("total_payments + ?", gross),
			"total_fees":     gorm.Expr("total_fees + ?", fee),
			"net_revenue":    gorm.Expr("net_revenue + ?", yield+fee),
			"payment_count":  gorm.Expr("payment_count + ?", 1),
		}),
	}).Create(&row).Error
}

// AddWithdrawal rolls a settled outbound transfer into the row for date.
func (r *RevenueRepository) AddWithdrawal(ctx context.Context, date string, amount int64) error {
	row := models.DailyRevenue{
		Date:             date,
		TotalWithdrawals: amount,
		WithdrawalCount:  1,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_withdrawals": gorm.Expr("total_withdrawals + ?", amount),
			"withdrawal_count":  gorm.Expr("withdrawal_count + ?", 1),
		}),
	}).Create(&row).Error
}

func (r *RevenueRepository) GetByDate(ctx context.Context, date string) (*models.DailyRevenue, error) {
	var row models.DailyRevenue
	err := r.db.WithContext(ctx).Where("date = ?", date).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRevenueNotFound
		}
		return nil, err
	}
	return &row, nil
}
