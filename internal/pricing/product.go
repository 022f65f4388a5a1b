// Package pricing evaluates weekly commodity prices against a regulator
// reference price. Every function here is pure: callers pass the product
// collection and the evaluation week explicitly.
package pricing

// WeeklyPrice is one observed price for a product in a given week.
type WeeklyPrice struct {
	ProductID  string  `json:"product_id"`
	WeekNumber int     `json:"week_number"`
	Price      float64 `json:"price"`
	WeekDate   string  `json:"week_date,omitempty"`
}

// Product is a tracked commodity together with its weekly observations.
// A zero ReferencePrice means no benchmark was published.
type Product struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Icon           string        `json:"icon,omitempty"`
	Color          string        `json:"color,omitempty"`
	Weight         string        `json:"weight,omitempty"`
	ReferencePrice float64       `json:"reference_price"`
	DisplayOrder   int           `json:"display_order"`
	Prices         []WeeklyPrice `json:"prices"`
}

// Category classifies a price movement.
type Category string

const (
	CategoryAll      Category = "all"
	CategoryIncrease Category = "increase"
	CategoryDecrease Category = "decrease"
	CategoryStable   Category = "stable"
)

// Valid reports whether c is a known category, including "all".
func (c Category) Valid() bool {
	switch c {
	case CategoryAll, CategoryIncrease, CategoryDecrease, CategoryStable:
		return true
	}
	return false
}

// ParseCategory maps a query value to a Category. An empty string means "all".
func ParseCategory(s string) (Category, bool) {
	if s == "" {
		return CategoryAll, true
	}
	c := Category(s)
	return c, c.Valid()
}
