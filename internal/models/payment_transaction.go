package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentTransaction statuses. Successful and failed are terminal.
const (
	TxStatusPending    = "pending"
	TxStatusSuccessful = "successful"
	TxStatusFailed     = "failed"
)

// Payment types. Only wallet funding triggers the revenue split and a
// wallet credit; everything else settles fee-only.
const (
	PaymentTypeWalletFunding = "wallet_funding"
)

// PaymentTransaction is an inbound charge created by an upstream checkout
// flow in pending state. Gateway callbacks drive it to a terminal status
// exactly once; the unique tx_ref is the replay key.
type PaymentTransaction struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	TxRef         string         `gorm:"size:64;uniqueIndex;not null" json:"tx_ref"`
	PaymentType   string         `gorm:"size:30;not null" json:"payment_type"`
	OwnerID       uint           `gorm:"index;not null" json:"owner_id"`
	GrossAmount   int64          `gorm:"not null" json:"gross_amount"`
	SettledAmount int64          `gorm:"not null;default:0" json:"settled_amount"`
	Status        string         `gorm:"size:20;not null;index;default:'pending'" json:"status"`
	VerifiedAt    *time.Time     `json:"verified_at"`
	RawPayload    string         `gorm:"type:text" json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}

// Terminal reports whether the transaction has already been resolved.
func (t *PaymentTransaction) Terminal() bool {
	return t.Status == TxStatusSuccessful || t.Status == TxStatusFailed
}
