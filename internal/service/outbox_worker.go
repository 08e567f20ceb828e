package service

import (
	"context"
	"encoding/json"
	"time"

	"finchpay/internal/logging"
	"finchpay/internal/models"
	"finchpay/internal/repository"
)

const outboxBatchSize = 100

// OutboxWorker drains the ledger event outbox and derives merchant
// notifications from it. Running this off the request path keeps
// notification latency out of the webhook response time and keeps the
// handler's idempotency story simple: handlers only append events.
type OutboxWorker struct {
	events        *repository.LedgerEventRepository
	notifications *NotificationService
	clock         Clock
	logger        *logging.Logger
	interval      time.Duration
}

func NewOutboxWorker(events *repository.LedgerEventRepository, notifications *NotificationService, clock Clock, logger *logging.Logger, interval time.Duration) *OutboxWorker {
	return &OutboxWorker{
		events:        events,
		notifications: notifications,
		clock:         clock,
		logger:        logger,
		interval:      interval,
	}
}

// Run polls until ctx is cancelled.
func (w *OutboxWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Drain(ctx)
		}
	}
}

// Drain processes one batch of unprocessed events. An event is marked
// processed only after its notification decision succeeded, so a failed
// batch is retried on the next tick.
func (w *OutboxWorker) Drain(ctx context.Context) {
	events, err := w.events.ListUnprocessed(ctx, outboxBatchSize)
	if err != nil {
		w.logger.WithError(err).Error("outbox list failed")
		return
	}

	for i := range events {
		e := &events[i]
		if err := w.dispatch(ctx, e); err != nil {
			w.logger.WithError(err).WithField("event_id", e.ID).Warn("outbox dispatch failed, will retry")
			continue
		}
		if err := w.events.MarkProcessed(ctx, e.ID, w.clock.Now()); err != nil {
			w.logger.WithError(err).WithField("event_id", e.ID).Error("outbox mark processed failed")
		}
	}
}

func (w *OutboxWorker) dispatch(ctx context.Context, e *models.LedgerEvent) error {
	switch e.EventType {
	case models.LedgerEventWalletCredited:
		var p struct {
			Amount int64  `json:"amount"`
			TxRef  string `json:"tx_ref"`
		}
		if err := json.Unmarshal([]byte(e.Payload), &p); err != nil {
			// A payload this service wrote and cannot read is a bug; drop it
			// rather than wedging the queue.
			w.logger.WithField("event_id", e.ID).Error("unreadable outbox payload")
			return nil
		}
		return w.notifications.NotifyWalletCredited(ctx, e.ID, e.OwnerID, p.Amount, p.TxRef)
	default:
		// Most transitions are recorded for audit only.
		return nil
	}
}
