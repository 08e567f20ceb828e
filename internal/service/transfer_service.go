package service

import (
	"context"
	"encoding/json"
	"errors"

	"finchpay/internal/logging"
	"finchpay/internal/models"
	"finchpay/internal/repository"

	"github.com/sirupsen/logrus"
)

// TransferService reconciles the gateway's callbacks for outbound
// settlements. Retry scheduling lives elsewhere; this only maintains
// terminal status and the retry counter.
type TransferService struct {
	transfers *repository.TransferRepository
	revenue   *repository.RevenueRepository
	events    *repository.LedgerEventRepository
	alerts    *AlertService
	cache     *RevenueCache
	clock     Clock
	logger    *logging.Logger
}

func NewTransferService(
	transfers *repository.TransferRepository,
	revenue *repository.RevenueRepository,
	events *repository.LedgerEventRepository,
	alerts *AlertService,
	cache *RevenueCache,
	clock Clock,
	logger *logging.Logger,
) *TransferService {
	return &TransferService{
		transfers: transfers,
		revenue:   revenue,
		events:    events,
		alerts:    alerts,
		cache:     cache,
		clock:     clock,
		logger:    logger,
	}
}

// HandleCompleted marks the transfer for externalID settled and rolls its
// amount into the day's withdrawal aggregates. Unknown ids are logged,
// alerted and dropped; replays change nothing.
func (s *TransferService) HandleCompleted(ctx context.Context, externalID int64, rawResponse string) error {
	t, err := s.transfers.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repository.ErrTransferNotFound) {
			s.alerts.Alert(ctx, models.AlertTransferNotFound, models.SeverityWarning,
				"transfer callback references unknown transfer",
				map[string]interface{}{"external_id": externalID})
			return nil
		}
		return err
	}

	now := s.clock.Now()
	updated, err := s.transfers.MarkCompleted(ctx, externalID, now, rawResponse)
	if err != nil {
		s.alerts.Alert(ctx, models.AlertLedgerWriteFailure, models.SeverityCritical,
			"failed to mark transfer completed",
			map[string]interface{}{"external_id": externalID, "error": err.Error()})
		return err
	}
	if !updated {
		s.logger.WithField("external_id", externalID).Debug("transfer already terminal, nothing to do")
		return nil
	}

	date := DateKey(now)
	if err := s.revenue.AddWithdrawal(ctx, date, t.Amount); err != nil {
		s.alerts.Alert(ctx, models.AlertRevenueRollupFailed, models.SeverityCritical,
			"withdrawal rollup increment failed",
			map[string]interface{}{"external_id": externalID, "date": date, "error": err.Error()})
	} else {
		s.mirrorRevenue(ctx, date)
	}

	s.appendEvent(ctx, models.LedgerEventTransferSettled, t, map[string]interface{}{
		"transfer_ref": t.TransferRef,
		"amount":       t.Amount,
	})
	return nil
}

// HandleFailed records a failure callback. The retry counter is bumped in
// SQL, never read-then-written, because the gateway can deliver concurrent
// failure callbacks for the same transfer.
func (s *TransferService) HandleFailed(ctx context.Context, externalID int64, reason string) error {
	t, err := s.transfers.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repository.ErrTransferNotFound) {
			s.alerts.Alert(ctx, models.AlertTransferNotFound, models.SeverityWarning,
				"transfer failure callback references unknown transfer",
				map[string]interface{}{"external_id": externalID})
			return nil
		}
		return err
	}

	updated, err := s.transfers.MarkFailed(ctx, externalID, reason)
	if err != nil {
		s.alerts.Alert(ctx, models.AlertLedgerWriteFailure, models.SeverityCritical,
			"failed to mark transfer failed",
			map[string]interface{}{"external_id": externalID, "error": err.Error()})
		return err
	}
	if !updated {
		s.logger.WithField("external_id", externalID).Debug("transfer already settled, failure callback ignored")
		return nil
	}

	s.appendEvent(ctx, models.LedgerEventTransferFailed, t, map[string]interface{}{
		"transfer_ref": t.TransferRef,
		"amount":       t.Amount,
		"reason":       reason,
	})
	return nil
}

func (s *TransferService) appendEvent(ctx context.Context, eventType string, t *models.FundTransfer, payload map[string]interface{}) {
	b, _ := json.Marshal(payload)
	err := s.events.Append(ctx, &models.LedgerEvent{
		EventType:  eventType,
		EntityType: "fund_transfer",
		EntityID:   t.ID,
		Payload:    string(b),
	})
	if err != nil {
		s.logger.WithFields(logrus.Fields{"event_type": eventType, "transfer_ref": t.TransferRef}).
			WithError(err).Error("failed to append ledger event")
	}
}

func (s *TransferService) mirrorRevenue(ctx context.Context, date string) {
	if s.cache == nil {
		return
	}
	rev, err := s.revenue.GetByDate(ctx, date)
	if err != nil {
		s.logger.WithError(err).Warn("revenue mirror read failed")
		return
	}
	if err := s.cache.Mirror(ctx, rev); err != nil {
		s.logger.WithError(err).Warn("revenue mirror write failed")
	}
}
