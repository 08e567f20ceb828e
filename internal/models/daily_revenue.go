package models

import (
	"time"
)

// DailyRevenue is the per-calendar-day platform rollup. Rows are only ever
// incremented, via a single UPSERT with value = value + delta assignments,
// so concurrent webhook deliveries cannot lose updates.
type DailyRevenue struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Date             string    `gorm:"size:10;uniqueIndex;not null" json:"date"`
	TotalPayments    int64     `gorm:"not null;default:0" json:"total_payments"`
	TotalFees        int64     `gorm:"not null;default:0" json:"total_fees"`
	NetRevenue       int64     `gorm:"not null;default:0" json:"net_revenue"`
	PaymentCount     int64     `gorm:"not null;default:0" json:"payment_count"`
	TotalWithdrawals int64     `gorm:"not null;default:0" json:"total_withdrawals"`
	WithdrawalCount  int64     `gorm:"not null;default:0" json:"withdrawal_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (DailyRevenue) TableName() string {
	return "daily_revenues"
}
