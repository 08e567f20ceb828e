package service

import (
	"context"

	"finchpay/internal/models"
	"finchpay/internal/repository"

	"github.com/google/uuid"
)

// SettlementService stages outbound transfers for the platform's money. It
// looks up the active settlement account and queues a pending FundTransfer;
// the uniqueness of (source_type, source_id) makes the whole thing
// replay-safe.
type SettlementService struct {
	transfers *repository.TransferRepository
	accounts  *repository.SettlementAccountRepository
}

func NewSettlementService(transfers *repository.TransferRepository, accounts *repository.SettlementAccountRepository) *SettlementService {
	return &SettlementService{transfers: transfers, accounts: accounts}
}

// QueueRevenueShare stages the platform's yield share of a wallet-funding
// payment. Returns repository.ErrNoSettlementAccount when the registry has
// no active account.
func (s *SettlementService) QueueRevenueShare(ctx context.Context, tx *models.PaymentTransaction, amount int64) (bool, error) {
	return s.queue(ctx, models.TransferSourceRevenueSplit, "rs", tx.ID, amount)
}

// QueuePaymentSettlement stages the net of a non-wallet-funding payment.
func (s *SettlementService) QueuePaymentSettlement(ctx context.Context, tx *models.PaymentTransaction, amount int64) (bool, error) {
	return s.queue(ctx, models.TransferSourcePayment, "ps", tx.ID, amount)
}

func (s *SettlementService) queue(ctx context.Context, sourceType, refPrefix string, sourceID uint, amount int64) (bool, error) {
	acct, err := s.accounts.GetActive(ctx)
	if err != nil {
		return false, err
	}

	transfer := &models.FundTransfer{
		TransferRef:      refPrefix + "-" + uuid.NewString(),
		SourceType:       sourceType,
		SourceID:         sourceID,
		Amount:           amount,
		Fee:              0,
		NetAmount:        amount,
		RecipientBank:    acct.BankCode,
		RecipientAccount: acct.AccountNumber,
		Status:           models.TransferStatusPending,
	}
	return s.transfers.Queue(ctx, transfer)
}
