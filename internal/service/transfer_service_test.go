package service_test

import (
	"context"
	"testing"
	"time"

	"finchpay/internal/models"
	"finchpay/internal/repository"
	"finchpay/internal/service"
	"finchpay/internal/testutil"

	"gorm.io/gorm"
)

func newTransferService(t *testing.T, db *gorm.DB) *service.TransferService {
	t.Helper()
	logger := testutil.NewLogger()
	clock := service.FixedClock{T: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	alertSvc := service.NewAlertService(repository.NewAlertRepository(db), logger)
	return service.NewTransferService(
		repository.NewTransferRepository(db),
		repository.NewRevenueRepository(db),
		repository.NewLedgerEventRepository(db),
		alertSvc,
		nil,
		clock,
		logger,
	)
}

func TestHandleCompleted(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTransferService(t, db)
	ctx := context.Background()

	testutil.SeedTransfer(t, db, 777, 3000)

	if err := svc.HandleCompleted(ctx, 777, `{"status":"SUCCESSFUL"}`); err != nil {
		t.Fatalf("handle: %v", err)
	}

	tr, _ := repository.NewTransferRepository(db).GetByExternalID(ctx, 777)
	if tr.Status != models.TransferStatusSuccessful || tr.SettledAt == nil {
		t.Fatalf("transfer not settled: %+v", tr)
	}

	rev, err := repository.NewRevenueRepository(db).GetByDate(ctx, "2025-06-01")
	if err != nil {
		t.Fatalf("revenue: %v", err)
	}
	if rev.TotalWithdrawals != 3000 || rev.WithdrawalCount != 1 {
		t.Fatalf("withdrawal rollup = %d/%d, want 3000/1", rev.TotalWithdrawals, rev.WithdrawalCount)
	}

	// Replay: no double rollup.
	if err := svc.HandleCompleted(ctx, 777, "{}"); err != nil {
		t.Fatalf("replay: %v", err)
	}
	rev, _ = repository.NewRevenueRepository(db).GetByDate(ctx, "2025-06-01")
	if rev.WithdrawalCount != 1 {
		t.Fatalf("replay double-counted withdrawals: %d", rev.WithdrawalCount)
	}
}

func TestHandleCompletedUnknownTransfer(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTransferService(t, db)
	ctx := context.Background()

	if err := svc.HandleCompleted(ctx, 4040, "{}"); err != nil {
		t.Fatalf("unknown transfer should be acknowledged, got %v", err)
	}

	var alerts []models.OperatorAlert
	db.Find(&alerts)
	if len(alerts) != 1 || alerts[0].Code != models.AlertTransferNotFound {
		t.Fatalf("expected transfer_not_found alert, got %+v", alerts)
	}
	var transfers int64
	db.Model(&models.FundTransfer{}).Count(&transfers)
	if transfers != 0 {
		t.Fatalf("row created for unknown transfer")
	}
}

func TestHandleFailed(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTransferService(t, db)
	ctx := context.Background()

	testutil.SeedTransfer(t, db, 778, 3000)

	if err := svc.HandleFailed(ctx, 778, "account resolve failed"); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if err := svc.HandleFailed(ctx, 778, "account resolve failed"); err != nil {
		t.Fatalf("second handle: %v", err)
	}

	tr, _ := repository.NewTransferRepository(db).GetByExternalID(ctx, 778)
	if tr.Status != models.TransferStatusFailed {
		t.Fatalf("status = %s, want failed", tr.Status)
	}
	if tr.RetryCount != 2 {
		t.Fatalf("retry_count = %d, want 2", tr.RetryCount)
	}

	// No withdrawal revenue for failed transfers.
	if _, err := repository.NewRevenueRepository(db).GetByDate(ctx, "2025-06-01"); err == nil {
		t.Fatal("failed transfer produced a revenue row")
	}
}
