package service

import (
	"context"
	"strconv"
	"time"

	"finchpay/internal/models"

	"github.com/redis/go-redis/v9"
)

// RevenueCache mirrors daily rollups into Redis so ops dashboards can read
// them without hitting the ledger database. It is strictly best-effort: the
// mirror is written after the durable UPSERT and its errors never propagate
// to the webhook path.
type RevenueCache struct {
	client *redis.Client
}

func NewRevenueCache(client *redis.Client) *RevenueCache {
	return &RevenueCache{client: client}
}

func revenueKey(date string) string {
	return "daily_revenue:" + date
}

func (c *RevenueCache) Mirror(ctx context.Context, rev *models.DailyRevenue) error {
	key := revenueKey(rev.Date)
	err := c.client.HSet(ctx, key, map[string]interface{}{
		"date":              rev.Date,
		"total_payments":    rev.TotalPayments,
		"total_fees":        rev.TotalFees,
		"net_revenue":       rev.NetRevenue,
		"payment_count":     rev.PaymentCount,
		"total_withdrawals": rev.TotalWithdrawals,
		"withdrawal_count":  rev.WithdrawalCount,
	}).Err()
	if err != nil {
		return err
	}
	// Rollups are only read while recent; two days covers timezone stragglers.
	return c.client.Expire(ctx, key, 48*time.Hour).Err()
}

// Get returns the mirrored rollup for date, or nil when the mirror has no
// entry (callers fall back to the database).
func (c *RevenueCache) Get(ctx context.Context, date string) (*models.DailyRevenue, error) {
	fields, err := c.client.HGetAll(ctx, revenueKey(date)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}

	rev := &models.DailyRevenue{Date: fields["date"]}
	rev.TotalPayments, _ = strconv.ParseInt(fields["total_payments"], 10, 64)
	rev.TotalFees, _ = strconv.ParseInt(fields["total_fees"], 10, 64)
	rev.NetRevenue, _ = strconv.ParseInt(fields["net_revenue"], 10, 64)
	rev.PaymentCount, _ = strconv.ParseInt(fields["payment_count"], 10, 64)
	rev.TotalWithdrawals, _ = strconv.ParseInt(fields["total_withdrawals"], 10, 64)
	rev.WithdrawalCount, _ = strconv.ParseInt(fields["withdrawal_count"], 10, 64)
	return rev, nil
}
