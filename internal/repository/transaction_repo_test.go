package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"finchpay/internal/models"
	"finchpay/internal/repository"
	"finchpay/internal/testutil"
)

func TestTransactionResolve(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTransactionRepository(db)
	ctx := context.Background()

	testutil.SeedTransaction(t, db, "FNC-1", models.PaymentTypeWalletFunding, 7, 10000)

	now := time.Now()
	tx, replay, err := repo.Resolve(ctx, "FNC-1", models.TxStatusSuccessful, 10000, `{"id":1}`, now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if replay {
		t.Fatal("first resolve flagged as replay")
	}
	if tx.Status != models.TxStatusSuccessful || tx.SettledAmount != 10000 || tx.VerifiedAt == nil {
		t.Fatalf("resolved row wrong: %+v", tx)
	}
}

func TestTransactionResolveReplay(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTransactionRepository(db)
	ctx := context.Background()

	testutil.SeedTransaction(t, db, "FNC-2", models.PaymentTypeWalletFunding, 7, 10000)

	if _, _, err := repo.Resolve(ctx, "FNC-2", models.TxStatusSuccessful, 10000, "{}", time.Now()); err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	// Attempting to flip a terminal row, even to another status, is a no-op.
	tx, replay, err := repo.Resolve(ctx, "FNC-2", models.TxStatusFailed, 0, "{}", time.Now())
	if err != nil {
		t.Fatalf("replay resolve: %v", err)
	}
	if !replay {
		t.Fatal("replay not detected")
	}
	if tx.Status != models.TxStatusSuccessful {
		t.Fatalf("terminal status mutated to %s", tx.Status)
	}
}

func TestTransactionResolveUnknownRef(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTransactionRepository(db)

	_, _, err := repo.Resolve(context.Background(), "NOPE", models.TxStatusSuccessful, 0, "{}", time.Now())
	if !errors.Is(err, repository.ErrTransactionNotFound) {
		t.Fatalf("got %v, want ErrTransactionNotFound", err)
	}
}
