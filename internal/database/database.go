package database

import (
	"time"

	"finchpay/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens the ledger database. TranslateError is on so unique-index
// violations surface as gorm.ErrDuplicatedKey, which the idempotency
// checks rely on.
func NewDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.PaymentTransaction{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.DailyRevenue{},
		&models.FundTransfer{},
		&models.SettlementAccount{},
		&models.LedgerEvent{},
		&models.OperatorAlert{},
		&models.Notification{},
	)
}
