// Package importer copies the CSV price tables into the database so the
// dashboard can be switched to DATA_SOURCE=database.
package importer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ramadanwatch/internal/loader"
	"ramadanwatch/internal/models"
	"ramadanwatch/internal/pricing"
)

// Store persists a product collection.
type Store interface {
	Sync(ctx context.Context, products []pricing.Product) (SyncStats, error)
}

// SyncStats is what a Store wrote.
type SyncStats struct {
	Products int
	Prices   int
}

// SkippedRow is a product or observation that could not be stored. WeekNumber
// is 0 when the whole product was skipped.
type SkippedRow struct {
	ProductID  string
	WeekNumber int
	Reason     string
}

// RunResult contains the outcome of an import run.
type RunResult struct {
	ProductsLoaded   int
	ProductsUpserted int
	PricesUpserted   int
	Skipped          []SkippedRow
	Duration         time.Duration
}

// Importer reads a source and writes it to a store.
type Importer struct {
	source loader.Source
	store  Store
	logger *zap.SugaredLogger
}

// New creates an Importer.
func New(source loader.Source, store Store, logger *zap.SugaredLogger) *Importer {
	return &Importer{source: source, store: store, logger: logger}
}

// Run performs one import: load, drop products and observations the schema
// would reject, then sync the rest in a single store call. A skipped product
// takes its observations with it.
func (im *Importer) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{}

	products, err := im.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", im.source.Name(), err)
	}
	result.ProductsLoaded = len(products)

	clean := make([]pricing.Product, 0, len(products))
	for _, p := range products {
		if reason := productRejectReason(p); reason != "" {
			result.Skipped = append(result.Skipped, SkippedRow{ProductID: p.ID, Reason: reason})
			continue
		}
		kept := make([]pricing.WeeklyPrice, 0, len(p.Prices))
		for _, wp := range p.Prices {
			if reason := rejectReason(wp); reason != "" {
				result.Skipped = append(result.Skipped, SkippedRow{
					ProductID:  p.ID,
					WeekNumber: wp.WeekNumber,
					Reason:     reason,
				})
				continue
			}
			kept = append(kept, wp)
		}
		p.Prices = kept
		clean = append(clean, p)
	}

	im.logger.Infow("syncing products", "source", im.source.Name(), "products", len(clean), "skipped", len(result.Skipped))

	stats, err := im.store.Sync(ctx, clean)
	if err != nil {
		return nil, fmt.Errorf("sync: %w", err)
	}
	result.ProductsUpserted = stats.Products
	result.PricesUpserted = stats.Prices
	result.Duration = time.Since(start)
	return result, nil
}

func productRejectReason(p pricing.Product) string {
	switch {
	case p.ID == "":
		return "missing product code"
	case p.ReferencePrice < 0:
		return "negative reference_price"
	}
	return ""
}

func rejectReason(wp pricing.WeeklyPrice) string {
	switch {
	case wp.WeekNumber < 1 || wp.WeekNumber > models.MaxWeekNumber:
		return fmt.Sprintf("week_number outside 1..%d", models.MaxWeekNumber)
	case wp.Price < 0:
		return "negative price"
	}
	return ""
}
