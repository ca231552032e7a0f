package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	settingsapp "github.com/repairdesk/backend/internal/application/settings"
	"github.com/repairdesk/backend/internal/domain/settings"
	"github.com/repairdesk/backend/internal/infrastructure/config"
	"github.com/repairdesk/backend/internal/infrastructure/logger"
	"github.com/repairdesk/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// seed fills empty settings tables with a starter roster. Tables that
// already hold rows are left untouched.
func main() {
	var (
		logLevel   string
		skipTechs  bool
		skipRefs   bool
		runTimeout time.Duration
	)
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&skipTechs, "skip-technicians", false, "Do not seed technicians")
	flag.BoolVar(&skipRefs, "skip-references", false, "Do not seed brands and problem categories")
	flag.DurationVar(&runTimeout, "timeout", time.Minute, "Overall timeout")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
		Service:    "repairdesk-seed",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database,
		logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel)))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if !skipTechs {
		svc := settingsapp.NewTechnicianService(persistence.NewGormTechnicianRepository(db.DB), log)
		n, err := svc.Seed(ctx, sampleTechnicians)
		if err != nil {
			log.Fatal("Failed to seed technicians", zap.Int("inserted", n), zap.Error(err))
		}
		logSeeded(log, "technicians", n)
	}

	if !skipRefs {
		refs := persistence.NewGormReferenceRepository(db.DB)
		for _, set := range []struct {
			kind settings.ReferenceKind
			name string
			reqs []settingsapp.ReferenceRequest
		}{
			{settings.KindBrand, "brands", sampleBrands},
			{settings.KindProblemCategory, "problem categories", sampleProblemCategories},
		} {
			n, err := settingsapp.NewReferenceService(set.kind, refs, log).Seed(ctx, set.reqs)
			if err != nil {
				log.Fatal("Failed to seed "+set.name, zap.Int("inserted", n), zap.Error(err))
			}
			logSeeded(log, set.name, n)
		}
	}
}

func logSeeded(log *zap.Logger, what string, n int) {
	if n == 0 {
		log.Info("Skipped seeding, table already populated", zap.String("table", what))
		return
	}
	log.Info("Seeded "+what, zap.Int("count", n))
}
