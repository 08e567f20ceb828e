package repository

import "errors"

var (
	ErrTransactionNotFound = errors.New("payment transaction not found")
	ErrTransferNotFound    = errors.New("fund transfer not found")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrDuplicateEvent      = errors.New("duplicate event")
	ErrNoSettlementAccount = errors.New("no active settlement account")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrRevenueNotFound     = errors.New("no revenue recorded for date")
)
