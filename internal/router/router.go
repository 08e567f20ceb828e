package router

import (
	"finchpay/config"
	"finchpay/internal/handler"
	"finchpay/internal/logging"
	"finchpay/internal/middleware"
	"finchpay/internal/repository"
	"finchpay/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers onto a gin engine and
// returns it together with the outbox worker the caller is expected to run.
// cache may be nil when Redis is not configured.
func Setup(cfg *config.Config, db *gorm.DB, cache *service.RevenueCache, logger *logging.Logger) (*gin.Engine, *service.OutboxWorker) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(logger.RequestLogger())
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow())))

	// Repositories
	txRepo := repository.NewTransactionRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	revenueRepo := repository.NewRevenueRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	accountRepo := repository.NewSettlementAccountRepository(db)
	eventRepo := repository.NewLedgerEventRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	clock := service.SystemClock()
	alertSvc := service.NewAlertService(alertRepo, logger)
	notifSvc := service.NewNotificationService(notificationRepo)
	settlementSvc := service.NewSettlementService(transferRepo, accountRepo)
	paymentSvc := service.NewPaymentService(txRepo, walletRepo, revenueRepo, settlementSvc, eventRepo, alertSvc, cache, clock, logger)
	transferSvc := service.NewTransferService(transferRepo, revenueRepo, eventRepo, alertSvc, cache, clock, logger)
	worker := service.NewOutboxWorker(eventRepo, notifSvc, clock, logger, cfg.OutboxPollInterval())

	// Handlers
	webhookHandler := handler.NewWebhookHandler(paymentSvc, transferSvc, cfg.WebhookSecret, logger)
	opsHandler := handler.NewOpsHandler(revenueRepo, transferRepo, alertRepo, notificationRepo, cache)

	r.GET("/health", opsHandler.Health)
	r.POST("/webhook", webhookHandler.Handle)

	ops := r.Group("/ops")
	{
		ops.GET("/revenue/:date", opsHandler.GetDailyRevenue)
		ops.GET("/transfers/pending", opsHandler.ListPendingTransfers)
		ops.GET("/alerts", opsHandler.ListAlerts)
		ops.GET("/notifications/:ownerId", opsHandler.ListNotifications)
	}

	return r, worker
}
