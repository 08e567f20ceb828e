package models

import (
	"time"
)

// SettlementAccount is the registry of outbound bank accounts the platform
// settles its revenue share into. Exactly one account is expected to be
// active at a time; the queue treats "none active" as a per-event
// configuration error.
type SettlementAccount struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	BankName      string    `gorm:"size:100;not null" json:"bank_name"`
	BankCode      string    `gorm:"size:10;not null" json:"bank_code"`
	AccountNumber string    `gorm:"size:20;not null" json:"account_number"`
	AccountName   string    `gorm:"size:100" json:"account_name"`
	Active        bool      `gorm:"not null;default:false;index" json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (SettlementAccount) TableName() string {
	return "settlement_accounts"
}
