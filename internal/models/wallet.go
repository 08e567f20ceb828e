package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet is a merchant balance. Balance is never written directly: every
// mutation goes through an audited WalletTransaction and keeps
// balance == total_deposited - total_spent.
type Wallet struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OwnerID        uint           `gorm:"uniqueIndex;not null" json:"owner_id"`
	Balance        int64          `gorm:"not null;default:0" json:"balance"`
	TotalDeposited int64          `gorm:"not null;default:0" json:"total_deposited"`
	TotalSpent     int64          `gorm:"not null;default:0" json:"total_spent"`
	Currency       string         `gorm:"size:3;default:'NGN'" json:"currency"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Wallet) TableName() string {
	return "wallets"
}
