package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when ShopMetrics is built without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// LowStockProvider reports how many stock lines sit at or below their threshold.
type LowStockProvider interface {
	GetLowStockCount(ctx context.Context) (int64, error)
}

// ShopMetricsConfig holds configuration for ShopMetrics.
type ShopMetricsConfig struct {
	Meter            metric.Meter
	Logger           *zap.Logger
	CollectInterval  time.Duration // Default: 5 minutes
	LowStockProvider LowStockProvider
}

// ShopMetrics counts repair jobs, invoices and petty-cash movements and keeps
// a low-stock gauge fresh.
type ShopMetrics struct {
	logger *zap.Logger

	jobsCreated        *Counter
	jobStatusChanges   *Counter
	invoicesTotal      *Counter
	invoiceAmountCents *Counter
	cashTransactions   *Counter
	cashAmountCents    *Counter
	lowStockItems      *Gauge

	lowStock    LowStockProvider
	interval    time.Duration
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once
	wg          sync.WaitGroup
}

// NewShopMetrics registers the shop instruments on cfg.Meter.
func NewShopMetrics(cfg ShopMetricsConfig) (*ShopMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	interval := cfg.CollectInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	sm := &ShopMetrics{
		logger:   logger,
		lowStock: cfg.LowStockProvider,
		interval: interval,
		stopChan: make(chan struct{}),
	}

	counters := []struct {
		dst               **Counter
		name, desc, units string
	}{
		{&sm.jobsCreated, "repairdesk_jobs_created_total", "Repair jobs registered", "{jobs}"},
		{&sm.jobStatusChanges, "repairdesk_job_status_changes_total", "Repair job status transitions", "{transitions}"},
		{&sm.invoicesTotal, "repairdesk_invoices_total", "Invoices issued", "{invoices}"},
		{&sm.invoiceAmountCents, "repairdesk_invoice_amount_cents_total", "Invoiced amount in cents", "{cents}"},
		{&sm.cashTransactions, "repairdesk_petty_cash_transactions_total", "Petty-cash transactions recorded", "{transactions}"},
		{&sm.cashAmountCents, "repairdesk_petty_cash_amount_cents_total", "Petty-cash amount in cents", "{cents}"},
	}
	for _, c := range counters {
		counter, err := NewCounter(cfg.Meter, c.name, c.desc, c.units)
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}

	gauge, err := NewGauge(cfg.Meter, "repairdesk_inventory_low_stock_items", "Stock lines at or below their low-stock threshold", "{items}")
	if err != nil {
		return nil, err
	}
	sm.lowStockItems = gauge

	return sm, nil
}

// RecordJobCreated counts a newly registered job.
func (sm *ShopMetrics) RecordJobCreated(ctx context.Context, brand, priority string) {
	sm.jobsCreated.Inc(ctx, AttrBrand.String(brand), AttrPriority.String(priority))
}

// RecordJobStatusChange counts a status transition.
func (sm *ShopMetrics) RecordJobStatusChange(ctx context.Context, from, to string) {
	sm.jobStatusChanges.Inc(ctx, AttrFromStatus.String(from), AttrToStatus.String(to))
}

// RecordInvoice counts an invoice and adds its total.
func (sm *ShopMetrics) RecordInvoice(ctx context.Context, method string, total decimal.Decimal) {
	attr := AttrPaymentMethod.String(method)
	sm.invoicesTotal.Inc(ctx, attr)
	sm.invoiceAmountCents.Add(ctx, toCents(total), attr)
}

// RecordTransaction counts a petty-cash transaction and adds its amount.
func (sm *ShopMetrics) RecordTransaction(ctx context.Context, txType string, amount decimal.Decimal) {
	attr := AttrTransactionType.String(txType)
	sm.cashTransactions.Inc(ctx, attr)
	sm.cashAmountCents.Add(ctx, toCents(amount), attr)
}

// RecordLowStockCount sets the low-stock gauge.
func (sm *ShopMetrics) RecordLowStockCount(ctx context.Context, count int64) {
	sm.lowStockItems.Record(ctx, count)
}

// StartPeriodicCollection refreshes the low-stock gauge every interval until
// Stop is called or ctx ends. Calling it more than once has no effect.
func (sm *ShopMetrics) StartPeriodicCollection(ctx context.Context) {
	if sm.lowStock == nil {
		sm.logger.Debug("No low-stock provider configured, skipping periodic collection")
		return
	}
	sm.collectOnce.Do(func() {
		sm.wg.Add(1)
		go sm.run(ctx)
	})
}

func (sm *ShopMetrics) run(ctx context.Context) {
	defer sm.wg.Done()

	ticker := time.NewTicker(sm.interval)
	defer ticker.Stop()

	sm.collect(ctx)
	for {
		select {
		case <-sm.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			sm.collect(ctx)
		}
	}
}

func (sm *ShopMetrics) collect(ctx context.Context) {
	count, err := sm.lowStock.GetLowStockCount(ctx)
	if err != nil {
		sm.logger.Warn("Failed to collect low stock count", zap.Error(err))
		return
	}
	sm.RecordLowStockCount(ctx, count)
}

// Stop ends periodic collection. Safe to call multiple times.
func (sm *ShopMetrics) Stop() {
	sm.stopOnce.Do(func() {
		close(sm.stopChan)
		sm.wg.Wait()
	})
}

func toCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
