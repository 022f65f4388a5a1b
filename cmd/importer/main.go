package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ramadanwatch/internal/config"
	"ramadanwatch/internal/database"
	"ramadanwatch/internal/importer"
	"ramadanwatch/internal/loader"
	"ramadanwatch/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	log := logger.Named("importer")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	source := loader.NewCSVSource(cfg.DataBasePath, loader.CSVOptions{
		HTTPClient:    &http.Client{Timeout: cfg.RequestTimeout},
		OverridesFile: cfg.NameOverridesFile,
		Retries:       uint64(cfg.FetchRetries),
	})

	im := importer.New(source, importer.NewGormStore(dbManager.DB()), log)
	result, err := im.Run(ctx)
	if err != nil {
		log.Errorw("import failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}

	log.Infow("import completed",
		"products_loaded", result.ProductsLoaded,
		"products_upserted", result.ProductsUpserted,
		"prices_upserted", result.PricesUpserted,
		"skipped", len(result.Skipped),
		"duration", result.Duration.String(),
	)

	for _, row := range result.Skipped {
		log.Warnw("row skipped",
			"product_id", row.ProductID,
			"week_number", row.WeekNumber,
			"reason", row.Reason,
		)
	}

	if len(result.Skipped) > 0 {
		logger.Sync()
		os.Exit(2)
	}
}
