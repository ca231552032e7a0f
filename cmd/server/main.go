package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/repairdesk/backend/internal/application/identifier"
	inventoryapp "github.com/repairdesk/backend/internal/application/inventory"
	invoiceapp "github.com/repairdesk/backend/internal/application/invoice"
	jobapp "github.com/repairdesk/backend/internal/application/job"
	pettycashapp "github.com/repairdesk/backend/internal/application/pettycash"
	settingsapp "github.com/repairdesk/backend/internal/application/settings"
	"github.com/repairdesk/backend/internal/domain/settings"
	"github.com/repairdesk/backend/internal/infrastructure/cache"
	"github.com/repairdesk/backend/internal/infrastructure/config"
	"github.com/repairdesk/backend/internal/infrastructure/logger"
	"github.com/repairdesk/backend/internal/infrastructure/persistence"
	"github.com/repairdesk/backend/internal/infrastructure/telemetry"
	"github.com/repairdesk/backend/internal/interfaces/http/handler"
	"github.com/repairdesk/backend/internal/interfaces/http/middleware"
	"github.com/repairdesk/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Service:    cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs := setupTelemetry(ctx, cfg, baseLog)
	log := obs.logger
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting repair desk backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	db, dbInstr := openDatabase(ctx, cfg, log, obs.meters)
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	counter, closeCounter, err := cache.NewSequenceCounterFactory(
		cfg.Sequence, cfg.Redis, db.DB,
		cache.WithLogger(log),
		cache.WithDatabaseFallback(true),
	).Create(ctx)
	if err != nil {
		log.Fatal("Failed to create sequence counter", zap.Error(err))
	}

	// Repositories
	jobRepo := persistence.NewGormJobRepository(db.DB)
	itemRepo := persistence.NewGormInventoryItemRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	pettyCashRepo := persistence.NewGormPettyCashRepository(db.DB)
	technicianRepo := persistence.NewGormTechnicianRepository(db.DB)
	referenceRepo := persistence.NewGormReferenceRepository(db.DB)

	ids := identifier.NewAllocator(jobRepo, invoiceRepo,
		identifier.WithCounter(counter),
		identifier.WithLogger(log),
	)

	// Application services
	jobService := jobapp.NewJobService(jobRepo, technicianRepo, ids, log)
	inventoryService := inventoryapp.NewInventoryService(itemRepo, log)
	invoiceService := invoiceapp.NewInvoiceService(invoiceRepo, ids, itemRepo, jobRepo, log)
	pettyCashService := pettycashapp.NewPettyCashService(pettyCashRepo, cfg.PettyCash.OpeningBalance, log)
	technicianService := settingsapp.NewTechnicianService(technicianRepo, log)
	brandService := settingsapp.NewReferenceService(settings.KindBrand, referenceRepo, log)
	problemCategoryService := settingsapp.NewReferenceService(settings.KindProblemCategory, referenceRepo, log)

	var shopMetrics *telemetry.ShopMetrics
	if obs.meters.IsEnabled() {
		shopMetrics, err = telemetry.NewShopMetrics(telemetry.ShopMetricsConfig{
			Meter:            obs.meters.Meter("repairdesk.shop"),
			Logger:           log,
			LowStockProvider: inventoryService,
		})
		if err != nil {
			log.Warn("Failed to initialize shop metrics", zap.Error(err))
		} else {
			jobService.SetBusinessMetrics(shopMetrics)
			invoiceService.SetBusinessMetrics(shopMetrics)
			pettyCashService.SetBusinessMetrics(shopMetrics)
			shopMetrics.StartPeriodicCollection(ctx)
		}
	}

	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to access sql.DB", zap.Error(err))
	}

	engine := router.New(router.EngineConfig{
		Logger:         log,
		HTTP:           cfg.HTTP,
		ServiceName:    cfg.Telemetry.ServiceName,
		Tracing:        cfg.Telemetry.Enabled,
		Meters:         obs.meters,
		Profiling:      cfg.Telemetry.ProfilingEnabled,
		RateLimiter:    limiter,
		RequestTimeout: cfg.HTTP.WriteTimeout,
	}, router.Handlers{
		Jobs:              handler.NewJobHandler(jobService),
		Inventory:         handler.NewInventoryHandler(inventoryService),
		Invoices:          handler.NewInvoiceHandler(invoiceService),
		PettyCash:         handler.NewPettyCashHandler(pettyCashService),
		Technicians:       handler.NewTechnicianHandler(technicianService),
		Brands:            handler.NewReferenceHandler(brandService),
		ProblemCategories: handler.NewReferenceHandler(problemCategoryService),
		System:            handler.NewSystemHandler(sqlDB, version),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if limiter != nil {
		limiter.Stop()
	}
	if shopMetrics != nil {
		shopMetrics.Stop()
	}
	if dbInstr != nil {
		dbInstr.Stop()
	}
	if closeCounter != nil {
		if err := closeCounter(); err != nil {
			log.Warn("Error closing sequence counter", zap.Error(err))
		}
	}
	cancel()
	obs.shutdown(shutdownCtx)

	log.Info("Server exited gracefully")
}
