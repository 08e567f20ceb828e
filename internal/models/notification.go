package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is a merchant-facing notification decision derived from the
// ledger event outbox. Delivery (push/email/UI) happens downstream. The
// unique index on the source event makes consumption replay-safe: if the
// worker notified but crashed before stamping the event processed, the
// re-dispatch hits the index instead of duplicating the row.
type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	EventID   uint           `gorm:"not null;uniqueIndex" json:"event_id"`
	OwnerID   uint           `gorm:"not null;index" json:"owner_id"`
	Type      string         `gorm:"size:50;not null;index" json:"type"`
	Title     string         `gorm:"size:255" json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	Data      string         `gorm:"type:text" json:"data"`
	ReadAt    *time.Time     `json:"read_at"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
