package models

import (
	"time"

	"gorm.io/gorm"
)

// FundTransfer statuses. A failed transfer may receive further failure
// callbacks that only bump retry_count in place.
const (
	TransferStatusPending    = "pending"
	TransferStatusSuccessful = "successful"
	TransferStatusFailed     = "failed"
)

// FundTransfer source types.
const (
	TransferSourceRevenueSplit = "revenue_split"
	TransferSourcePayment      = "payment"
)

// FundTransfer is an outbound settlement staged for the disbursement worker.
// The unique index on (source_type, source_id) makes queuing idempotent: a
// replayed charge event cannot stage the platform share twice.
type FundTransfer struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	TransferRef      string         `gorm:"size:64;uniqueIndex;not null" json:"transfer_ref"`
	SourceType       string         `gorm:"size:30;not null;uniqueIndex:idx_fund_transfers_source,priority:1" json:"source_type"`
	SourceID         uint           `gorm:"not null;uniqueIndex:idx_fund_transfers_source,priority:2" json:"source_id"`
	Amount           int64          `gorm:"not null" json:"amount"`
	Fee              int64          `gorm:"not null;default:0" json:"fee"`
	NetAmount        int64          `gorm:"not null" json:"net_amount"`
	RecipientBank    string         `gorm:"size:10" json:"recipient_bank"`
	RecipientAccount string         `gorm:"size:20" json:"recipient_account"`
	Status           string         `gorm:"size:20;not null;index;default:'pending'" json:"status"`
	RetryCount       int            `gorm:"not null;default:0" json:"retry_count"`
	ExternalID       int64          `gorm:"index" json:"external_id"`
	ErrorMessage     string         `gorm:"size:255" json:"error_message"`
	RawResponse      string         `gorm:"type:text" json:"-"`
	SettledAt        *time.Time     `json:"settled_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (FundTransfer) TableName() string {
	return "fund_transfers"
}
