package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBConfig controls database spans, query metrics and slow-query reporting.
type DBConfig struct {
	TraceEnabled      bool          // Register otelgorm spans
	LogFullSQL        bool          // Include query variables in spans (dev only)
	SlowQueryThresh   time.Duration // Default: 200ms
	DBSystem          string        // Default: "postgresql"
	PoolStatsInterval time.Duration // Default: 15s
}

// DefaultDBConfig returns the secure defaults.
func DefaultDBConfig() DBConfig {
	return DBConfig{
		SlowQueryThresh:   200 * time.Millisecond,
		DBSystem:          "postgresql",
		PoolStatsInterval: 15 * time.Second,
	}
}

// DBInstrumentation is a GORM plugin that annotates spans, records query
// metrics and warns about slow queries. Metrics are optional.
type DBInstrumentation struct {
	config DBConfig
	logger *zap.Logger

	queryTotal         *Counter
	queryDuration      *Histogram
	slowQueryTotal     *Counter
	poolConnections    *Gauge
	poolConnectionsMax *Gauge

	sqlDB    *sql.DB
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewDBInstrumentation builds the plugin. meters may be nil, in which case only
// spans and slow-query logs are produced.
func NewDBInstrumentation(cfg DBConfig, meters *MeterProvider, logger *zap.Logger) (*DBInstrumentation, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	def := DefaultDBConfig()
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = def.SlowQueryThresh
	}
	if cfg.DBSystem == "" {
		cfg.DBSystem = def.DBSystem
	}
	if cfg.PoolStatsInterval <= 0 {
		cfg.PoolStatsInterval = def.PoolStatsInterval
	}

	d := &DBInstrumentation{config: cfg, logger: logger, stopCh: make(chan struct{})}
	if meters == nil || !meters.IsEnabled() {
		return d, nil
	}

	meter := meters.Meter("db.client")
	var err error
	if d.queryTotal, err = NewCounter(meter, "db_query_total", "Database queries by operation", "{query}"); err != nil {
		return nil, err
	}
	if d.slowQueryTotal, err = NewCounter(meter, "db_slow_query_total", "Database queries slower than the threshold", "{query}"); err != nil {
		return nil, err
	}
	if d.queryDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database query latency",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if d.poolConnections, err = NewGauge(meter, "db_pool_connections", "Pool connections by state", "{connection}"); err != nil {
		return nil, err
	}
	if d.poolConnectionsMax, err = NewGauge(meter, "db_pool_connections_max", "Maximum open connections", "{connection}"); err != nil {
		return nil, err
	}
	return d, nil
}

// Name implements gorm.Plugin.
func (d *DBInstrumentation) Name() string {
	return "repairdesk:db_instrumentation"
}

// Initialize implements gorm.Plugin. The after callbacks are ordered ahead of
// otelgorm's so the span is still recording when they annotate it.
func (d *DBInstrumentation) Initialize(db *gorm.DB) error {
	if d.config.TraceEnabled {
		opts := []otelgorm.Option{otelgorm.WithDBName(d.config.DBSystem)}
		if !d.config.LogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return err
		}
	}

	type registerFunc func(name string, fn func(*gorm.DB)) error
	cb := db.Callback()
	hooks := []struct {
		suffix    string
		operation string
		before    registerFunc
		after     registerFunc
	}{
		{"create", "INSERT", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Before("otel:after:create").Register},
		{"query", "SELECT", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Before("otel:after:query").Register},
		{"update", "UPDATE", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Before("otel:after:update").Register},
		{"delete", "DELETE", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Before("otel:after:delete").Register},
		{"row", "", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Before("otel:after:row").Register},
		{"raw", "", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Before("otel:after:raw").Register},
	}
	for _, h := range hooks {
		if err := h.before("repairdesk:before_"+h.suffix, d.before); err != nil {
			return err
		}
		if err := h.after("repairdesk:after_"+h.suffix, d.after(h.operation)); err != nil {
			return err
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		d.sqlDB = sqlDB
	}

	d.logger.Info("Database instrumentation registered",
		zap.Bool("tracing", d.config.TraceEnabled),
		zap.Bool("metrics", d.queryTotal != nil),
		zap.Duration("slow_query_threshold", d.config.SlowQueryThresh),
	)
	return nil
}

type queryStartKey struct{}

func (d *DBInstrumentation) before(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	db.Statement.Context = context.WithValue(ctx, queryStartKey{}, time.Now())
}

func (d *DBInstrumentation) after(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		op := operation
		if op == "" {
			op = detectOperationType(db.Statement.SQL.String())
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}

		var elapsed time.Duration
		if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
			elapsed = time.Since(start)
		}
		slow := elapsed > d.config.SlowQueryThresh

		if span := trace.SpanFromContext(ctx); span.IsRecording() {
			span.SetAttributes(
				attribute.Int64("db.rows_affected", db.Statement.RowsAffected),
				attribute.String("db.sql.table", table),
			)
			if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
				span.SetStatus(codes.Error, db.Error.Error())
				span.RecordError(db.Error)
			}
			if slow {
				span.SetAttributes(
					attribute.Bool("db.slow_query", true),
					attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
				)
			}
		}

		if d.queryTotal != nil {
			d.queryTotal.Inc(ctx, AttrDBOperation.String(op))
			d.queryDuration.RecordDuration(ctx, elapsed, AttrDBOperation.String(op))
			if slow {
				d.slowQueryTotal.Inc(ctx, AttrDBTable.String(table))
			}
		}

		if slow {
			d.logger.Warn("Slow database query",
				zap.String("operation", op),
				zap.String("table", table),
				zap.Duration("elapsed", elapsed),
				zap.Duration("threshold", d.config.SlowQueryThresh),
			)
		}
	}
}

// StartPoolStatsCollection records pool gauges until Stop or ctx ends.
func (d *DBInstrumentation) StartPoolStatsCollection(ctx context.Context) {
	if d.poolConnections == nil || d.sqlDB == nil {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ticker := time.NewTicker(d.config.PoolStatsInterval)
		defer ticker.Stop()

		d.collectPoolStats(ctx)
		for {
			select {
			case <-ticker.C:
				d.collectPoolStats(ctx)
			case <-d.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (d *DBInstrumentation) collectPoolStats(ctx context.Context) {
	stats := d.sqlDB.Stats()
	d.poolConnectionsMax.Record(ctx, int64(stats.MaxOpenConnections))
	d.poolConnections.Record(ctx, int64(stats.Idle), AttrDBState.String("idle"))
	d.poolConnections.Record(ctx, int64(stats.InUse), AttrDBState.String("in_use"))
	d.poolConnections.Record(ctx, int64(stats.OpenConnections), AttrDBState.String("open"))
}

// Stop ends pool stats collection. Safe to call multiple times.
func (d *DBInstrumentation) Stop() {
	d.stopOnce.Do(func() {
		close(d.stopCh)
		d.wg.Wait()
	})
}

func detectOperationType(sql string) string {
	sql = strings.TrimSpace(strings.ToUpper(sql))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, op) {
			return op
		}
	}
	return "OTHER"
}
