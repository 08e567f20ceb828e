package handler

import (
	"io"
	"net/http"

	"finchpay/internal/logging"
	"finchpay/internal/service"
	"finchpay/pkg/gateway"

	"github.com/gin-gonic/gin"
)

// WebhookHandler is the gateway-facing receiver. It verifies the shared
// secret signature, parses the event envelope and dispatches to exactly one
// handler. Per-event domain failures are alerted inside the services and
// acknowledged here; only unparsable payloads and a missing secret surface
// as non-2xx, since the gateway retries on any error response.
type WebhookHandler struct {
	payments  *service.PaymentService
	transfers *service.TransferService
	secret    string
	logger    *logging.Logger
}

func NewWebhookHandler(payments *service.PaymentService, transfers *service.TransferService, secret string, logger *logging.Logger) *WebhookHandler {
	return &WebhookHandler{
		payments:  payments,
		transfers: transfers,
		secret:    secret,
		logger:    logger,
	}
}

func (h *WebhookHandler) Handle(c *gin.Context) {
	if h.secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook secret not configured"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if !gateway.VerifySignature(body, c.GetHeader("X-Signature"), h.secret) {
		h.logger.WithField("client_ip", c.ClientIP()).Warn("webhook signature mismatch")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	env, err := gateway.ParseEnvelope(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	ctx := c.Request.Context()
	switch env.Event {
	case gateway.EventChargeCompleted:
		charge, err := gateway.DecodeCharge(env)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid charge payload"})
			return
		}
		if err := h.payments.ProcessCharge(ctx, charge); err != nil {
			// Alert is already recorded; acknowledge so the gateway stops
			// redelivering an event we cannot currently apply.
			h.logger.WithError(err).WithField("tx_ref", charge.TxRef).Error("charge processing failed")
		}

	case gateway.EventTransferCompleted:
		transfer, err := gateway.DecodeTransfer(env)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transfer payload"})
			return
		}
		if err := h.transfers.HandleCompleted(ctx, transfer.ID, string(transfer.Raw)); err != nil {
			h.logger.WithError(err).WithField("external_id", transfer.ID).Error("transfer completion failed")
		}

	case gateway.EventTransferFailed:
		transfer, err := gateway.DecodeTransfer(env)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transfer payload"})
			return
		}
		if err := h.transfers.HandleFailed(ctx, transfer.ID, transfer.Message); err != nil {
			h.logger.WithError(err).WithField("external_id", transfer.ID).Error("transfer failure handling failed")
		}

	default:
		// At-least-once delivery includes event types we do not consume.
		h.logger.WithField("event", env.Event).Debug("ignoring unhandled webhook event")
	}

	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}
