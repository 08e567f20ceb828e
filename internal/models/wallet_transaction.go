package models

import (
	"time"
)

// Wallet transaction types.
const (
	WalletTxDeposit    = "deposit"
	WalletTxWithdrawal = "withdrawal"
)

// WalletTransaction is the audit row behind every wallet mutation. The
// composite unique index on (reference_id, type) is the dedup boundary for
// replayed gateway events: a second credit for the same payment hits the
// index and leaves the wallet untouched.
type WalletTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WalletID    uint      `gorm:"not null;index" json:"wallet_id"`
	Type        string    `gorm:"size:30;not null;uniqueIndex:idx_wallet_tx_ref_type,priority:2" json:"type"`
	Amount      int64     `gorm:"not null" json:"amount"`
	ReferenceID uint      `gorm:"not null;uniqueIndex:idx_wallet_tx_ref_type,priority:1" json:"reference_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
