package models

import (
	"time"
)

// Ledger event types, one per state transition in the webhook pipeline.
const (
	LedgerEventChargeSettled   = "charge_settled"
	LedgerEventChargeFailed    = "charge_failed"
	LedgerEventWalletCredited  = "wallet_credited"
	LedgerEventSplitQueued     = "split_queued"
	LedgerEventTransferSettled = "transfer_settled"
	LedgerEventTransferFailed  = "transfer_failed"
)

// LedgerEvent is the immutable outbox row appended on every state
// transition. A separate worker derives notifications from unprocessed
// rows, so notification delivery never sits on the webhook response path.
type LedgerEvent struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	EventType   string     `gorm:"size:40;not null;index" json:"event_type"`
	EntityType  string     `gorm:"size:30;not null" json:"entity_type"`
	EntityID    uint       `gorm:"not null;index" json:"entity_id"`
	OwnerID     uint       `gorm:"index" json:"owner_id"`
	Payload     string     `gorm:"type:text" json:"payload"`
	ProcessedAt *time.Time `gorm:"index" json:"processed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (LedgerEvent) TableName() string {
	return "ledger_events"
}
