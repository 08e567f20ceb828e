package repository_test

import (
	"context"
	"errors"
	"testing"

	"finchpay/internal/models"
	"finchpay/internal/repository"
	"finchpay/internal/testutil"
)

func TestWalletCredit(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewWalletRepository(db)
	ctx := context.Background()

	testutil.SeedWallet(t, db, 7)

	if err := repo.Credit(ctx, 7, 7000, 42); err != nil {
		t.Fatalf("credit: %v", err)
	}

	w, err := repo.GetByOwnerID(ctx, 7)
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if w.Balance != 7000 || w.TotalDeposited != 7000 {
		t.Fatalf("wallet after credit: balance=%d deposited=%d, want 7000/7000", w.Balance, w.TotalDeposited)
	}

	var audits int64
	db.Model(&models.WalletTransaction{}).Count(&audits)
	if audits != 1 {
		t.Fatalf("expected 1 audit row, got %d", audits)
	}
}

func TestWalletCreditReplayIsNoOp(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewWalletRepository(db)
	ctx := context.Background()

	testutil.SeedWallet(t, db, 7)

	if err := repo.Credit(ctx, 7, 7000, 42); err != nil {
		t.Fatalf("first credit: %v", err)
	}
	err := repo.Credit(ctx, 7, 7000, 42)
	if !errors.Is(err, repository.ErrDuplicateEvent) {
		t.Fatalf("replayed credit: got %v, want ErrDuplicateEvent", err)
	}

	w, _ := repo.GetByOwnerID(ctx, 7)
	if w.Balance != 7000 {
		t.Fatalf("balance changed on replay: %d", w.Balance)
	}
}

func TestWalletCreditMissingWallet(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewWalletRepository(db)

	err := repo.Credit(context.Background(), 99, 100, 1)
	if !errors.Is(err, repository.ErrWalletNotFound) {
		t.Fatalf("got %v, want ErrWalletNotFound", err)
	}
}

func TestWalletBalanceInvariant(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewWalletRepository(db)
	ctx := context.Background()

	testutil.SeedWallet(t, db, 7)

	if err := repo.Credit(ctx, 7, 10000, 1); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if err := repo.Debit(ctx, 7, 4000, 2); err != nil {
		t.Fatalf("debit: %v", err)
	}

	w, _ := repo.GetByOwnerID(ctx, 7)
	if w.Balance != w.TotalDeposited-w.TotalSpent {
		t.Fatalf("invariant broken: balance=%d deposited=%d spent=%d", w.Balance, w.TotalDeposited, w.TotalSpent)
	}
	if w.Balance != 6000 {
		t.Fatalf("balance = %d, want 6000", w.Balance)
	}
}

func TestWalletDebitInsufficient(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewWalletRepository(db)
	ctx := context.Background()

	testutil.SeedWallet(t, db, 7)

	err := repo.Debit(ctx, 7, 1, 1)
	if !errors.Is(err, repository.ErrInsufficientBalance) {
		t.Fatalf("got %v, want ErrInsufficientBalance", err)
	}
}
