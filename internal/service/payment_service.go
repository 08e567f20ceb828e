package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"finchpay/internal/logging"
	"finchpay/internal/models"
	"finchpay/internal/repository"
	"finchpay/pkg/gateway"

	"github.com/sirupsen/logrus"
)

// PaymentService resolves inbound charge events against the transaction
// ledger and, for successful wallet-funding payments, runs the revenue
// split: merchant share to the wallet, platform share to the daily rollup
// and the settlement queue.
//
// Everything downstream of the ledger-critical status transition is
// isolated: a failure there raises an operator alert and the event is still
// acknowledged, because a gateway that retries on any error response would
// otherwise hammer us with redeliveries.
type PaymentService struct {
	transactions *repository.TransactionRepository
	wallets      *repository.WalletRepository
	revenue      *repository.RevenueRepository
	settlement   *SettlementService
	events       *repository.LedgerEventRepository
	alerts       *AlertService
	cache        *RevenueCache
	clock        Clock
	logger       *logging.Logger
}

func NewPaymentService(
	transactions *repository.TransactionRepository,
	wallets *repository.WalletRepository,
	revenue *repository.RevenueRepository,
	settlement *SettlementService,
	events *repository.LedgerEventRepository,
	alerts *AlertService,
	cache *RevenueCache,
	clock Clock,
	logger *logging.Logger,
) *PaymentService {
	return &PaymentService{
		transactions: transactions,
		wallets:      wallets,
		revenue:      revenue,
		settlement:   settlement,
		events:       events,
		alerts:       alerts,
		cache:        cache,
		clock:        clock,
		logger:       logger,
	}
}

// ProcessCharge handles one charge.completed delivery. It is safe to call
// any number of times with the same payload.
func (s *PaymentService) ProcessCharge(ctx context.Context, charge *gateway.ChargeData) error {
	status := models.TxStatusFailed
	if charge.Status == gateway.ChargeStatusSuccessful {
		status = models.TxStatusSuccessful
	}

	now := s.clock.Now()
	tx, replay, err := s.transactions.Resolve(ctx, charge.TxRef, status, charge.Amount, string(charge.Raw), now)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			s.alerts.Alert(ctx, models.AlertTransactionNotFound, models.SeverityWarning,
				"charge event references unknown transaction",
				map[string]interface{}{"tx_ref": charge.TxRef, "gateway_id": charge.ID})
			return nil
		}
		s.alerts.Alert(ctx, models.AlertLedgerWriteFailure, models.SeverityCritical,
			"failed to resolve payment transaction",
			map[string]interface{}{"tx_ref": charge.TxRef, "error": err.Error()})
		return err
	}
	if replay {
		s.logger.WithField("tx_ref", tx.TxRef).Debug("duplicate charge event, nothing to do")
		return nil
	}

	if status != models.TxStatusSuccessful {
		s.appendEvent(ctx, models.LedgerEventChargeFailed, tx, map[string]interface{}{
			"tx_ref": tx.TxRef,
			"amount": tx.GrossAmount,
		})
		return nil
	}

	date := DateKey(now)
	if tx.PaymentType == models.PaymentTypeWalletFunding {
		s.settleWalletFunding(ctx, tx, charge.Fee, date)
	} else {
		s.settleOtherPayment(ctx, tx, charge.Fee, date)
	}

	s.appendEvent(ctx, models.LedgerEventChargeSettled, tx, map[string]interface{}{
		"tx_ref": tx.TxRef,
		"amount": tx.GrossAmount,
		"fee":    charge.Fee,
	})
	return nil
}

// settleWalletFunding credits the merchant with 70% and routes the 30%
// yield share into revenue and the settlement queue. The wallet credit is
// the ledger's dedup boundary; its failure is alerted and reconciled by
// hand, never bounced back to the gateway.
func (s *PaymentService) settleWalletFunding(ctx context.Context, tx *models.PaymentTransaction, fee int64, date string) {
	yield, merchant := SplitAmount(tx.GrossAmount)

	err := s.wallets.Credit(ctx, tx.OwnerID, merchant, tx.ID)
	switch {
	case err == nil:
		s.appendEvent(ctx, models.LedgerEventWalletCredited, tx, map[string]interface{}{
			"tx_ref":   tx.TxRef,
			"amount":   merchant,
			"owner_id": tx.OwnerID,
		})
	case errors.Is(err, repository.ErrDuplicateEvent):
		s.logger.WithField("tx_ref", tx.TxRef).Debug("wallet already credited for transaction")
	default:
		s.alerts.Alert(ctx, models.AlertLedgerWriteFailure, models.SeverityCritical,
			"wallet credit failed, needs manual reconciliation",
			map[string]interface{}{"tx_ref": tx.TxRef, "owner_id": tx.OwnerID, "amount": merchant, "error": err.Error()})
	}

	if err := s.revenue.AddPayment(ctx, date, tx.GrossAmount, fee, yield); err != nil {
		s.alerts.Alert(ctx, models.AlertRevenueRollupFailed, models.SeverityCritical,
			"daily revenue increment failed",
			map[string]interface{}{"tx_ref": tx.TxRef, "date": date, "error": err.Error()})
	} else {
		s.mirrorRevenue(ctx, date)
	}

	s.queueSettlement(ctx, tx, yield, true)
}

// settleOtherPayment records fee-only revenue for non-wallet-funding
// payments and stages their net for settlement.
func (s *PaymentService) settleOtherPayment(ctx context.Context, tx *models.PaymentTransaction, fee int64, date string) {
	if err := s.revenue.AddPayment(ctx, date, tx.GrossAmount, fee, 0); err != nil {
		s.alerts.Alert(ctx, models.AlertRevenueRollupFailed, models.SeverityCritical,
			"daily revenue increment failed",
			map[string]interface{}{"tx_ref": tx.TxRef, "date": date, "error": err.Error()})
	} else {
		s.mirrorRevenue(ctx, date)
	}

	s.queueSettlement(ctx, tx, tx.GrossAmount-fee, false)
}

func (s *PaymentService) queueSettlement(ctx context.Context, tx *models.PaymentTransaction, amount int64, revenueShare bool) {
	var created bool
	var err error
	if revenueShare {
		created, err = s.settlement.QueueRevenueShare(ctx, tx, amount)
	} else {
		created, err = s.settlement.QueuePaymentSettlement(ctx, tx, amount)
	}
	switch {
	case errors.Is(err, repository.ErrNoSettlementAccount):
		s.alerts.Alert(ctx, models.AlertConfigurationError, models.SeverityCritical,
			"no active settlement account, transfer not queued",
			map[string]interface{}{"tx_ref": tx.TxRef, "amount": amount})
	case err != nil:
		s.alerts.Alert(ctx, models.AlertLedgerWriteFailure, models.SeverityCritical,
			"failed to queue settlement transfer",
			map[string]interface{}{"tx_ref": tx.TxRef, "amount": amount, "error": err.Error()})
	case created:
		s.appendEvent(ctx, models.LedgerEventSplitQueued, tx, map[string]interface{}{
			"tx_ref": tx.TxRef,
			"amount": amount,
		})
	}
}

func (s *PaymentService) appendEvent(ctx context.Context, eventType string, tx *models.PaymentTransaction, payload map[string]interface{}) {
	b, _ := json.Marshal(payload)
	err := s.events.Append(ctx, &models.LedgerEvent{
		EventType:  eventType,
		EntityType: "payment_transaction",
		EntityID:   tx.ID,
		OwnerID:    tx.OwnerID,
		Payload:    string(b),
	})
	if err != nil {
		s.logger.WithFields(logrus.Fields{"event_type": eventType, "tx_ref": tx.TxRef}).
			WithError(err).Error("failed to append ledger event")
	}
}

// mirrorRevenue pushes the fresh rollup into the ops cache. Bounded so a
// slow cache cannot eat into the gateway's delivery timeout.
func (s *PaymentService) mirrorRevenue(ctx context.Context, date string) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	rev, err := s.revenue.GetByDate(ctx, date)
	if err != nil {
		s.logger.WithError(err).Warn("revenue mirror read failed")
		return
	}
	if err := s.cache.Mirror(ctx, rev); err != nil {
		s.logger.WithError(err).Warn("revenue mirror write failed")
	}
}
