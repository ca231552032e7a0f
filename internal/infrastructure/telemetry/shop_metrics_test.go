package telemetry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
)

type stubLowStock struct {
	count int64
	err   error
	calls atomic.Int32
}

func (s *stubLowStock) GetLowStockCount(context.Context) (int64, error) {
	s.calls.Add(1)
	return s.count, s.err
}

func TestNewShopMetrics_NilMeter(t *testing.T) {
	_, err := NewShopMetrics(ShopMetricsConfig{})
	assert.ErrorIs(t, err, ErrMeterNil)
}

func TestShopMetrics_Counters(t *testing.T) {
	mp, reader := newTestMeterProvider(t)
	sm, err := NewShopMetrics(ShopMetricsConfig{Meter: mp.Meter("shop"), Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	ctx := context.Background()

	sm.RecordJobCreated(ctx, "samsung", "high")
	sm.RecordJobCreated(ctx, "lg", "normal")
	sm.RecordJobStatusChange(ctx, "pending", "in_progress")
	sm.RecordInvoice(ctx, "cash", decimal.RequireFromString("1815.00"))
	sm.RecordInvoice(ctx, "card", decimal.RequireFromString("10.005"))
	sm.RecordTransaction(ctx, "expense", decimal.NewFromInt(300))

	data := collect(t, reader)
	assert.Equal(t, int64(2), sumInt64(t, data["repairdesk_jobs_created_total"]))
	assert.Equal(t, int64(1), sumInt64(t, data["repairdesk_jobs_created_total"], AttrBrand.String("samsung")))
	assert.Equal(t, int64(1), sumInt64(t, data["repairdesk_job_status_changes_total"], AttrToStatus.String("in_progress")))
	assert.Equal(t, int64(2), sumInt64(t, data["repairdesk_invoices_total"]))
	assert.Equal(t, int64(181500), sumInt64(t, data["repairdesk_invoice_amount_cents_total"], AttrPaymentMethod.String("cash")))
	assert.Equal(t, int64(1001), sumInt64(t, data["repairdesk_invoice_amount_cents_total"], AttrPaymentMethod.String("card")))
	assert.Equal(t, int64(30000), sumInt64(t, data["repairdesk_petty_cash_amount_cents_total"], AttrTransactionType.String("expense")))
}

func TestShopMetrics_PeriodicLowStockCollection(t *testing.T) {
	mp, reader := newTestMeterProvider(t)
	provider := &stubLowStock{count: 4}
	sm, err := NewShopMetrics(ShopMetricsConfig{
		Meter:            mp.Meter("shop"),
		Logger:           zaptest.NewLogger(t),
		CollectInterval:  time.Hour,
		LowStockProvider: provider,
	})
	require.NoError(t, err)

	sm.StartPeriodicCollection(context.Background())
	sm.StartPeriodicCollection(context.Background())
	require.Eventually(t, func() bool { return provider.calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	sm.Stop()
	sm.Stop()

	g, ok := collect(t, reader)["repairdesk_inventory_low_stock_items"].(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, g.DataPoints, 1)
	assert.Equal(t, int64(4), g.DataPoints[0].Value)
	assert.Equal(t, int32(1), provider.calls.Load())
}

func TestShopMetrics_CollectionErrorKeepsGaugeEmpty(t *testing.T) {
	mp, reader := newTestMeterProvider(t)
	provider := &stubLowStock{err: errors.New("db down")}
	sm, err := NewShopMetrics(ShopMetricsConfig{Meter: mp.Meter("shop"), LowStockProvider: provider, CollectInterval: time.Hour})
	require.NoError(t, err)

	sm.StartPeriodicCollection(context.Background())
	require.Eventually(t, func() bool { return provider.calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	sm.Stop()

	_, present := collect(t, reader)["repairdesk_inventory_low_stock_items"]
	assert.False(t, present)
}

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(27500), toCents(decimal.NewFromInt(275)))
	assert.Equal(t, int64(1), toCents(decimal.RequireFromString("0.005")))
	assert.Equal(t, int64(0), toCents(decimal.Zero))
}
