package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"finchpay/internal/repository"
	"finchpay/internal/service"

	"github.com/gin-gonic/gin"
)

// OpsHandler serves the operational read endpoints: daily revenue rollups
// and the settlement backlog.
type OpsHandler struct {
	revenue       *repository.RevenueRepository
	transfers     *repository.TransferRepository
	alerts        *repository.AlertRepository
	notifications *repository.NotificationRepository
	cache         *service.RevenueCache
}

func NewOpsHandler(revenue *repository.RevenueRepository, transfers *repository.TransferRepository, alerts *repository.AlertRepository, notifications *repository.NotificationRepository, cache *service.RevenueCache) *OpsHandler {
	return &OpsHandler{
		revenue:       revenue,
		transfers:     transfers,
		alerts:        alerts,
		notifications: notifications,
		cache:         cache,
	}
}

// GetDailyRevenue reads through the Redis mirror when available and falls
// back to the ledger database.
func (h *OpsHandler) GetDailyRevenue(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	ctx := c.Request.Context()
	if h.cache != nil {
		if rev, err := h.cache.Get(ctx, date); err == nil && rev != nil {
			c.JSON(http.StatusOK, rev)
			return
		}
	}

	rev, err := h.revenue.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, repository.ErrRevenueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no revenue recorded for date"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, rev)
}

func (h *OpsHandler) ListPendingTransfers(c *gin.Context) {
	list, err := h.transfers.ListPending(c.Request.Context(), 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transfers": list, "count": len(list)})
}

func (h *OpsHandler) ListAlerts(c *gin.Context) {
	list, err := h.alerts.ListRecent(c.Request.Context(), 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": list, "count": len(list)})
}

// ListNotifications returns the notifications derived for one merchant,
// newest first.
func (h *OpsHandler) ListNotifications(c *gin.Context) {
	ownerID, err := strconv.ParseUint(c.Param("ownerId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ownerId must be numeric"})
		return
	}
	list, err := h.notifications.ListByOwnerID(c.Request.Context(), uint(ownerID), 50, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list, "count": len(list)})
}

func (h *OpsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
