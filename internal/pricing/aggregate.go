package pricing

import "math"

// EvaluateAll evaluates every product at week, preserving input order.
func EvaluateAll(products []Product, week int) []PriceChange {
	out := make([]PriceChange, len(products))
	for i, p := range products {
		out[i] = Evaluate(p, week)
	}
	return out
}

// MaxIncrease returns the change with the highest percent vs reference.
// Ties keep the first product in input order. ok is false for an empty input.
func MaxIncrease(products []Product, week int) (best PriceChange, ok bool) {
	return extremum(products, week, func(candidate, current float64) bool {
		return candidate > current
	})
}

// MaxDecrease returns the change with the lowest percent vs reference.
// Ties keep the first product in input order. ok is false for an empty input.
func MaxDecrease(products []Product, week int) (best PriceChange, ok bool) {
	return extremum(products, week, func(candidate, current float64) bool {
		return candidate < current
	})
}

func extremum(products []Product, week int, better func(candidate, current float64) bool) (PriceChange, bool) {
	if len(products) == 0 {
		return PriceChange{}, false
	}
	best := Evaluate(products[0], week)
	for _, p := range products[1:] {
		pc := Evaluate(p, week)
		if better(pc.Percent, best.Percent) {
			best = pc
		}
	}
	return best, true
}

// FilterByCategory keeps products whose change vs reference at week falls in
// category. CategoryAll returns the input unchanged.
func FilterByCategory(products []Product, week int, category Category) []Product {
	if category == CategoryAll || category == "" {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if Classify(PercentVsReference(WeekPrice(p, week), p.ReferencePrice)) == category {
			out = append(out, p)
		}
	}
	return out
}

// DirectionCounts is the number of rising and falling products. Stable
// products are the remainder and are not counted.
type DirectionCounts struct {
	Increase int `json:"increase"`
	Decrease int `json:"decrease"`
}

// CountDirections counts increases and decreases vs reference at week.
func CountDirections(products []Product, week int) DirectionCounts {
	var dc DirectionCounts
	for _, p := range products {
		switch Classify(PercentVsReference(WeekPrice(p, week), p.ReferencePrice)) {
		case CategoryIncrease:
			dc.Increase++
		case CategoryDecrease:
			dc.Decrease++
		}
	}
	return dc
}

// AdherencePolicy decides whether an observed price complies with its reference.
type AdherencePolicy func(price, reference float64) bool

// AtOrBelowReference is the compliance rule used for the dashboard KPI:
// a price equal to the reference is adherent.
func AtOrBelowReference(price, reference float64) bool {
	return price <= reference
}

// WithinBand accepts prices within pct percent of the reference on either side.
// It models the methodology text and is not the default KPI rule.
func WithinBand(pct float64) AdherencePolicy {
	return func(price, reference float64) bool {
		return math.Abs(percentChange(price, reference)) <= pct
	}
}

// AdherencePercent returns the rounded share (0-100) of products whose week
// price satisfies policy. Products without a positive reference price are
// excluded from both sides of the ratio. A nil policy means AtOrBelowReference.
func AdherencePercent(products []Product, week int, policy AdherencePolicy) int {
	if policy == nil {
		policy = AtOrBelowReference
	}
	judged, adherent := 0, 0
	for _, p := range products {
		if p.ReferencePrice <= 0 {
			continue
		}
		judged++
		if policy(WeekPrice(p, week), p.ReferencePrice) {
			adherent++
		}
	}
	if judged == 0 {
		return 0
	}
	return int(math.Round(float64(adherent) / float64(judged) * 100))
}
