package main

import (
	"context"

	"github.com/repairdesk/backend/internal/infrastructure/config"
	"github.com/repairdesk/backend/internal/infrastructure/logger"
	"github.com/repairdesk/backend/internal/infrastructure/migration"
	"github.com/repairdesk/backend/internal/infrastructure/persistence"
	"github.com/repairdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// observability bundles the OpenTelemetry providers and the profiler so
// they can be shut down together.
type observability struct {
	logger   *zap.Logger
	tracer   *telemetry.TracerProvider
	meters   *telemetry.MeterProvider
	logs     *telemetry.LoggerProvider
	profiler *telemetry.Profiler
}

func setupTelemetry(ctx context.Context, cfg *config.Config, log *zap.Logger) *observability {
	tc := cfg.Telemetry
	obs := &observability{logger: log}

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           tc.Enabled,
		CollectorEndpoint: tc.CollectorEndpoint,
		SamplingRatio:     tc.SamplingRatio,
		ServiceName:       tc.ServiceName,
		Insecure:          tc.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	obs.tracer = tp

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           tc.MetricsEnabled,
		CollectorEndpoint: tc.CollectorEndpoint,
		ExportInterval:    tc.MetricsExportInterval,
		ServiceName:       tc.ServiceName,
		Insecure:          tc.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	obs.meters = mp

	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           tc.LogsEnabled,
		CollectorEndpoint: tc.CollectorEndpoint,
		ServiceName:       tc.ServiceName,
		Insecure:          tc.Insecure,
	}, log)
	if err != nil {
		log.Warn("Failed to initialize log exporter, continuing with local logs", zap.Error(err))
	} else {
		obs.logs = lp
		obs.logger = telemetry.BridgeLogger(log, lp, tc.ServiceName, logger.ParseLevel(tc.LogsExportLevel))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         tc.ProfilingEnabled,
		ServerAddress:   tc.ProfilingServerAddress,
		ApplicationName: tc.ServiceName,
		IncludeMemory:   true,
	}, log)
	if err != nil {
		log.Warn("Failed to start profiler", zap.Error(err))
	} else {
		obs.profiler = profiler
	}

	if tc.Enabled && tc.ProfilingEnabled && tc.SpanProfilesEnabled {
		if err := tp.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to link span profiles", zap.Error(err))
		}
	}

	return obs
}

// shutdown flushes exporters in reverse start order.
func (o *observability) shutdown(ctx context.Context) {
	if o.profiler != nil {
		if err := o.profiler.Stop(); err != nil {
			o.logger.Warn("Error stopping profiler", zap.Error(err))
		}
	}
	if o.logs != nil {
		if err := o.logs.Shutdown(ctx); err != nil {
			o.logger.Warn("Error shutting down log exporter", zap.Error(err))
		}
	}
	if err := o.meters.Shutdown(ctx); err != nil {
		o.logger.Warn("Error shutting down meter provider", zap.Error(err))
	}
	if err := o.tracer.Shutdown(ctx); err != nil {
		o.logger.Warn("Error shutting down tracer provider", zap.Error(err))
	}
}

// openDatabase connects to PostgreSQL, attaches query instrumentation and
// brings the schema up to date.
func openDatabase(ctx context.Context, cfg *config.Config, log *zap.Logger, meters *telemetry.MeterProvider) (*persistence.Database, *telemetry.DBInstrumentation) {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	var instr *telemetry.DBInstrumentation
	if cfg.Telemetry.DBTraceEnabled || meters.IsEnabled() {
		instr, err = telemetry.NewDBInstrumentation(telemetry.DBConfig{
			TraceEnabled:    cfg.Telemetry.DBTraceEnabled,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		}, meters, log)
		if err != nil {
			log.Warn("Failed to create database instrumentation", zap.Error(err))
		} else if err := db.Use(instr); err != nil {
			log.Warn("Failed to register database instrumentation", zap.Error(err))
			instr = nil
		} else {
			instr.StartPoolStatsCollection(ctx)
		}
	}

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(ctx); err != nil {
			log.Fatal("Failed to auto-migrate schema", zap.Error(err))
		}
		return db, instr
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to access sql.DB", zap.Error(err))
	}
	m, err := migration.New(sqlDB, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	// No m.Close: the postgres driver would close the shared sql.DB with it.
	if err := m.Up(); err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}
	return db, instr
}
