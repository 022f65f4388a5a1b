package pricing

// DefaultThreshold absorbs floating-point noise when classifying a percent change.
const DefaultThreshold = 0.0001

// WeekOverWeek describes movement against the immediately preceding week.
type WeekOverWeek struct {
	PreviousWeek  int     `json:"previous_week"`
	PreviousPrice float64 `json:"previous_price"`
	Percent       float64 `json:"percent"`
	Delta         float64 `json:"delta"`
}

// PriceChange is a product evaluated at one week. Previous is nil for week 1,
// which has no prior week to compare with.
type PriceChange struct {
	Product        Product       `json:"product"`
	Week           int           `json:"week"`
	WeekPrice      float64       `json:"week_price"`
	ReferencePrice float64       `json:"reference_price"`
	Percent        float64       `json:"percent"`
	Delta          float64       `json:"delta"`
	Category       Category      `json:"category"`
	Previous       *WeekOverWeek `json:"previous"`
}

// WeekPrice returns the price observed exactly at week, or 0 when there is no
// observation for that week.
func WeekPrice(p Product, week int) float64 {
	for _, wp := range p.Prices {
		if wp.WeekNumber == week {
			return wp.Price
		}
	}
	return 0
}

// LatestObservationUpToWeek returns the observation with the greatest week
// number that is at or before week.
func LatestObservationUpToWeek(p Product, week int) (WeeklyPrice, bool) {
	var (
		best  WeeklyPrice
		found bool
	)
	for _, wp := range p.Prices {
		if wp.WeekNumber > week {
			continue
		}
		if !found || wp.WeekNumber > best.WeekNumber {
			best = wp
			found = true
		}
	}
	return best, found
}

// LatestPriceUpToWeek returns the price of the latest observation at or before
// week, or 0 when none exists. Unlike WeekPrice it bridges gaps between weeks.
func LatestPriceUpToWeek(p Product, week int) float64 {
	wp, ok := LatestObservationUpToWeek(p, week)
	if !ok {
		return 0
	}
	return wp.Price
}

// PercentVsReference returns the percent difference of weekPrice from
// referencePrice. A non-positive reference yields 0.
func PercentVsReference(weekPrice, referencePrice float64) float64 {
	return percentChange(weekPrice, referencePrice)
}

// PercentVsPreviousWeek compares the week price with the exact price of the
// week before. ok is false at week 1 (or below), where no previous week exists.
func PercentVsPreviousWeek(p Product, week int) (percent float64, ok bool) {
	if week <= 1 {
		return 0, false
	}
	return percentChange(WeekPrice(p, week), WeekPrice(p, week-1)), true
}

// Classify buckets percent using DefaultThreshold.
func Classify(percent float64) Category {
	return ClassifyWithThreshold(percent, DefaultThreshold)
}

// ClassifyWithThreshold buckets percent: strictly above threshold is an
// increase, strictly below -threshold a decrease, anything else stable.
func ClassifyWithThreshold(percent, threshold float64) Category {
	switch {
	case percent > threshold:
		return CategoryIncrease
	case percent < -threshold:
		return CategoryDecrease
	default:
		return CategoryStable
	}
}

// Evaluate computes the full price change of p at week.
func Evaluate(p Product, week int) PriceChange {
	price := WeekPrice(p, week)
	percent := PercentVsReference(price, p.ReferencePrice)

	pc := PriceChange{
		Product:        p,
		Week:           week,
		WeekPrice:      price,
		ReferencePrice: p.ReferencePrice,
		Percent:        percent,
		Delta:          price - p.ReferencePrice,
		Category:       Classify(percent),
	}

	if prevPercent, ok := PercentVsPreviousWeek(p, week); ok {
		prev := WeekPrice(p, week-1)
		pc.Previous = &WeekOverWeek{
			PreviousWeek:  week - 1,
			PreviousPrice: prev,
			Percent:       prevPercent,
			Delta:         price - prev,
		}
	}

	return pc
}

func percentChange(current, base float64) float64 {
	if base <= 0 {
		return 0
	}
	return (current - base) / base * 100
}
