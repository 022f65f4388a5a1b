// Package loader builds the product collection the dashboard evaluates, from
// CSV files or the database, and falls back to bundled sample data when a
// source cannot be loaded.
package loader

import (
	"context"
	"time"

	"ramadanwatch/internal/logger"
	"ramadanwatch/internal/pricing"
)

// SampleNotice is shown to users while the dashboard runs on sample data.
const SampleNotice = "تعذر تحميل بيانات الأسعار، يتم عرض بيانات تجريبية مؤقتاً"

// Source produces a complete product collection or a *LoadError.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]pricing.Product, error)
}

// Dataset is one immutable load result. It is replaced wholesale on reload.
type Dataset struct {
	Products        []pricing.Product
	UsingSampleData bool
	Notice          string
	Source          string
	LoadedAt        time.Time
	Err             error // load failure that triggered the fallback, if any
}

// Weeks returns the observed week numbers, ascending.
func (d *Dataset) Weeks() []int {
	return pricing.AvailableWeeks(d.Products)
}

// MaxWeek returns the latest observed week, or 1 when nothing was observed.
func (d *Dataset) MaxWeek() int {
	if w := pricing.MaxWeek(d.Products); w > 0 {
		return w
	}
	return 1
}

// FindProduct looks a product up by id. Lookups accept un-normalized codes.
func (d *Dataset) FindProduct(id string) (pricing.Product, bool) {
	for _, p := range d.Products {
		if p.ID == id {
			return p, true
		}
	}
	normalized := NormalizeID(id)
	for _, p := range d.Products {
		if p.ID == normalized {
			return p, true
		}
	}
	return pricing.Product{}, false
}

// LoadWithFallback loads src and, on any failure, returns the sample dataset
// flagged with UsingSampleData and a user-visible notice.
func LoadWithFallback(ctx context.Context, src Source) *Dataset {
	log := logger.Named("loader")

	products, err := src.Load(ctx)
	if err == nil {
		return &Dataset{
			Products: products,
			Source:   src.Name(),
			LoadedAt: time.Now(),
		}
	}

	log.Warnw("data load failed, serving sample data", "source", src.Name(), "error", err)
	return &Dataset{
		Products:        SampleProducts(),
		UsingSampleData: true,
		Notice:          SampleNotice,
		Source:          "sample",
		LoadedAt:        time.Now(),
		Err:             err,
	}
}
