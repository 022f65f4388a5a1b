package pricing

import "sort"

// AvailableWeeks returns the distinct week numbers observed across products, ascending.
func AvailableWeeks(products []Product) []int {
	seen := make(map[int]struct{})
	for _, p := range products {
		for _, wp := range p.Prices {
			seen[wp.WeekNumber] = struct{}{}
		}
	}
	weeks := make([]int, 0, len(seen))
	for w := range seen {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)
	return weeks
}

// MaxWeek returns the highest observed week, or 0 when nothing was observed.
func MaxWeek(products []Product) int {
	max := 0
	for _, p := range products {
		for _, wp := range p.Prices {
			if wp.WeekNumber > max {
				max = wp.WeekNumber
			}
		}
	}
	return max
}

// TickerEntry is one item of the scrolling summary. It uses the latest
// observation at or before the requested week so gaps still show a price.
type TickerEntry struct {
	ProductID    string   `json:"product_id"`
	Name         string   `json:"name"`
	Icon         string   `json:"icon,omitempty"`
	Price        float64  `json:"price"`
	ObservedWeek int      `json:"observed_week"`
	Percent      float64  `json:"percent"`
	Category     Category `json:"category"`
}

// Ticker builds ticker entries for week. Products with no observation at or
// before week are left out.
func Ticker(products []Product, week int) []TickerEntry {
	out := make([]TickerEntry, 0, len(products))
	for _, p := range products {
		wp, ok := LatestObservationUpToWeek(p, week)
		if !ok {
			continue
		}
		percent := PercentVsReference(wp.Price, p.ReferencePrice)
		out = append(out, TickerEntry{
			ProductID:    p.ID,
			Name:         p.Name,
			Icon:         p.Icon,
			Price:        wp.Price,
			ObservedWeek: wp.WeekNumber,
			Percent:      percent,
			Category:     Classify(percent),
		})
	}
	return out
}

// SeriesPoint is a single chart point. Price is 0 for a missing week.
type SeriesPoint struct {
	Week  int     `json:"week"`
	Price float64 `json:"price"`
}

// Series is one product line on the chart.
type Series struct {
	ProductID      string        `json:"product_id"`
	Name           string        `json:"name"`
	Color          string        `json:"color,omitempty"`
	ReferencePrice float64       `json:"reference_price"`
	Points         []SeriesPoint `json:"points"`
}

// ChartSeries returns, per product, the exact price for every week from 1 to week.
func ChartSeries(products []Product, week int) []Series {
	out := make([]Series, 0, len(products))
	for _, p := range products {
		s := Series{
			ProductID:      p.ID,
			Name:           p.Name,
			Color:          p.Color,
			ReferencePrice: p.ReferencePrice,
			Points:         make([]SeriesPoint, 0, week),
		}
		for w := 1; w <= week; w++ {
			s.Points = append(s.Points, SeriesPoint{Week: w, Price: WeekPrice(p, w)})
		}
		out = append(out, s)
	}
	return out
}

// Summary is the KPI strip for one week and category filter.
type Summary struct {
	Week             int             `json:"week"`
	Category         Category        `json:"category"`
	TotalProducts    int             `json:"total_products"`
	FilteredProducts int             `json:"filtered_products"`
	Directions       DirectionCounts `json:"directions"`
	Stable           int             `json:"stable"`
	MaxIncrease      *PriceChange    `json:"max_increase"`
	MaxDecrease      *PriceChange    `json:"max_decrease"`
	AdherencePercent int             `json:"adherence_percent"`
}

// Summarize builds the KPI summary. Counts and extremes are taken over the
// filtered collection; adherence is computed over all products.
func Summarize(products []Product, week int, category Category) Summary {
	filtered := FilterByCategory(products, week, category)
	dc := CountDirections(filtered, week)

	s := Summary{
		Week:             week,
		Category:         category,
		TotalProducts:    len(products),
		FilteredProducts: len(filtered),
		Directions:       dc,
		Stable:           len(filtered) - dc.Increase - dc.Decrease,
		AdherencePercent: AdherencePercent(products, week, AtOrBelowReference),
	}
	if pc, ok := MaxIncrease(filtered, week); ok {
		s.MaxIncrease = &pc
	}
	if pc, ok := MaxDecrease(filtered, week); ok {
		s.MaxDecrease = &pc
	}
	return s
}
