package loader

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"ramadanwatch/internal/csvparse"
	"ramadanwatch/internal/pricing"
)

// NormalizeID trims id and strips leading zeros so "011100103" and "11100103"
// name the same product. An all-zero id becomes "0".
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	stripped := strings.TrimLeft(id, "0")
	if stripped == "" {
		return "0"
	}
	return stripped
}

// SafeNumber coerces a parsed cell to float64. Text is parsed leniently and
// anything unparseable or non-finite becomes fallback. Bad numeric data
// degrades to the fallback instead of failing the load.
func SafeNumber(v csvparse.Value, fallback float64) float64 {
	f := v.Number
	if !v.IsNumber {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil {
			return fallback
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}

// SafeInt is SafeNumber truncated toward zero.
func SafeInt(v csvparse.Value, fallback int) int {
	return int(math.Trunc(SafeNumber(v, float64(fallback))))
}

// MergeStats counts what BuildProducts kept and dropped.
type MergeStats struct {
	Products            int
	Observations        int
	SkippedProducts     int // empty or repeated id
	SkippedObservations int // week below 1 or not a whole number
	Orphans             int // product_id not in the products table
	Duplicates          int // repeated (product_id, week_number); last one wins
}

// BuildProducts merges parsed product and weekly-price records into products
// sorted by display order. names overrides display names by normalized id.
func BuildProducts(productRecs, priceRecs []csvparse.Record, names map[string]string) ([]pricing.Product, MergeStats) {
	var stats MergeStats

	products := make([]pricing.Product, 0, len(productRecs))
	index := make(map[string]int, len(productRecs))

	for _, rec := range productRecs {
		id := NormalizeID(rec.Get("id").String())
		if id == "" {
			stats.SkippedProducts++
			continue
		}
		if _, dup := index[id]; dup {
			stats.SkippedProducts++
			continue
		}

		name := strings.TrimSpace(rec.Get("name").String())
		if override := strings.TrimSpace(names[id]); override != "" {
			name = override
		}

		index[id] = len(products)
		products = append(products, pricing.Product{
			ID:             id,
			Name:           name,
			Icon:           rec.Get("icon").String(),
			Color:          rec.Get("color").String(),
			Weight:         rec.Get("weight").String(),
			ReferencePrice: SafeNumber(rec.Get("reference_price"), 0),
			DisplayOrder:   SafeInt(rec.Get("display_order"), 0),
			Prices:         []pricing.WeeklyPrice{},
		})
	}

	for _, rec := range priceRecs {
		pid := NormalizeID(rec.Get("product_id").String())
		i, ok := index[pid]
		if !ok {
			stats.Orphans++
			continue
		}

		w := SafeNumber(rec.Get("week_number"), 0)
		if w < 1 || w != math.Trunc(w) || w > math.MaxInt32 {
			stats.SkippedObservations++
			continue
		}
		week := int(w)

		wp := pricing.WeeklyPrice{
			ProductID:  pid,
			WeekNumber: week,
			Price:      SafeNumber(rec.Get("price"), 0),
			WeekDate:   strings.TrimSpace(rec.Get("week_date").String()),
		}

		p := &products[i]
		replaced := false
		for j := range p.Prices {
			if p.Prices[j].WeekNumber == week {
				p.Prices[j] = wp
				replaced = true
				stats.Duplicates++
				break
			}
		}
		if !replaced {
			p.Prices = append(p.Prices, wp)
			stats.Observations++
		}
	}

	sortByDisplayOrder(products)
	stats.Products = len(products)
	return products, stats
}

// ParseNameOverrides reads an id,name table into a map keyed by normalized id.
func ParseNameOverrides(recs []csvparse.Record) map[string]string {
	names := make(map[string]string, len(recs))
	for _, rec := range recs {
		id := NormalizeID(rec.Get("id").String())
		name := strings.TrimSpace(rec.Get("name").String())
		if id == "" || name == "" {
			continue
		}
		names[id] = name
	}
	return names
}

func sortByDisplayOrder(products []pricing.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].DisplayOrder < products[j].DisplayOrder
	})
}
