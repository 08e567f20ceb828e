// Package testutil provides shared fixtures for package tests: an isolated
// in-memory database per test and silenced loggers.
package testutil

import (
	"fmt"
	"io"
	"sync/atomic"
	"testing"

	"finchpay/internal/database"
	"finchpay/internal/logging"
	"finchpay/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB opens a fresh named in-memory SQLite database with the full schema.
// The pool is pinned to one connection so the shared-cache database lives
// for the whole test and concurrent writers serialize instead of hitting
// SQLITE_BUSY.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:finchpay_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewLogger returns a logger that swallows output.
func NewLogger() *logging.Logger {
	l := logging.NewLogger("test", "", "")
	l.SetOutput(io.Discard)
	return l
}

func SeedWallet(t *testing.T, db *gorm.DB, ownerID uint) *models.Wallet {
	t.Helper()
	w := &models.Wallet{OwnerID: ownerID, Currency: "NGN"}
	if err := db.Create(w).Error; err != nil {
		t.Fatalf("seed wallet: %v", err)
	}
	return w
}

func SeedTransaction(t *testing.T, db *gorm.DB, txRef, paymentType string, ownerID uint, gross int64) *models.PaymentTransaction {
	t.Helper()
	tx := &models.PaymentTransaction{
		TxRef:       txRef,
		PaymentType: paymentType,
		OwnerID:     ownerID,
		GrossAmount: gross,
		Status:      models.TxStatusPending,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
	return tx
}

func SeedSettlementAccount(t *testing.T, db *gorm.DB) *models.SettlementAccount {
	t.Helper()
	a := &models.SettlementAccount{
		BankName:      "First Bank",
		BankCode:      "011",
		AccountNumber: "3001234567",
		AccountName:   "Finchpay Ltd",
		Active:        true,
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("seed settlement account: %v", err)
	}
	return a
}

func SeedTransfer(t *testing.T, db *gorm.DB, externalID int64, amount int64) *models.FundTransfer {
	t.Helper()
	tr := &models.FundTransfer{
		TransferRef:      fmt.Sprintf("rs-test-%d", externalID),
		SourceType:       models.TransferSourceRevenueSplit,
		SourceID:         uint(externalID),
		Amount:           amount,
		NetAmount:        amount,
		RecipientBank:    "011",
		RecipientAccount: "3001234567",
		Status:           models.TransferStatusPending,
		ExternalID:       externalID,
	}
	if err := db.Create(tr).Error; err != nil {
		t.Fatalf("seed transfer: %v", err)
	}
	return tr
}
