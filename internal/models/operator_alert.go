package models

import (
	"time"
)

// Alert codes raised by the webhook pipeline.
const (
	AlertTransactionNotFound = "transaction_not_found"
	AlertTransferNotFound    = "transfer_not_found"
	AlertLedgerWriteFailure  = "ledger_write_failure"
	AlertConfigurationError  = "configuration_error"
	AlertRevenueRollupFailed = "revenue_rollup_failed"
)

// Alert severities.
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// OperatorAlert is a structured record for manual reconciliation. The core
// only decides that an alert is warranted; delivery is someone else's job.
type OperatorAlert struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:40;not null;index" json:"code"`
	Severity  string    `gorm:"size:10;not null" json:"severity"`
	Message   string    `gorm:"size:255;not null" json:"message"`
	Context   string    `gorm:"type:text" json:"context"`
	CreatedAt time.Time `json:"created_at"`
}

func (OperatorAlert) TableName() string {
	return "operator_alerts"
}
