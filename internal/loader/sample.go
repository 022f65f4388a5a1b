package loader

import "ramadanwatch/internal/pricing"

type sampleProduct struct {
	id, name, icon, color, weight string
	ref                           float64
	weeks                         []float64
}

var sampleTable = []sampleProduct{
	{"1", "أرز", "rice", "#f59e0b", "1 كجم", 7.50, []float64{7.50, 7.75, 7.75, 7.90}},
	{"2", "سكر", "sugar", "#6366f1", "1 كجم", 5.25, []float64{5.25, 5.10, 5.00, 5.00}},
	{"3", "زيت طبخ", "oil", "#eab308", "1.5 لتر", 18.00, []float64{18.50, 18.75, 19.00, 18.90}},
	{"4", "تمر", "dates", "#92400e", "1 كجم", 22.00, []float64{21.00, 21.50, 22.00, 22.00}},
	{"5", "دقيق", "flour", "#d6d3d1", "1 كجم", 4.00, []float64{4.00, 4.00, 4.25, 4.10}},
	{"6", "عدس", "lentils", "#b91c1c", "1 كجم", 9.50, []float64{9.75, 9.50, 9.25, 9.25}},
	{"7", "حليب", "milk", "#60a5fa", "1 لتر", 6.00, []float64{6.00, 6.25, 6.25, 6.50}},
	{"8", "دجاج", "chicken", "#f97316", "1 كجم", 19.00, []float64{19.50, 20.00, 19.75, 19.25}},
}

// SampleProducts returns a fresh copy of the bundled sample dataset: eight
// staples with four weeks of observations each.
func SampleProducts() []pricing.Product {
	products := make([]pricing.Product, 0, len(sampleTable))
	for i, s := range sampleTable {
		p := pricing.Product{
			ID:             s.id,
			Name:           s.name,
			Icon:           s.icon,
			Color:          s.color,
			Weight:         s.weight,
			ReferencePrice: s.ref,
			DisplayOrder:   i + 1,
			Prices:         make([]pricing.WeeklyPrice, 0, len(s.weeks)),
		}
		for w, price := range s.weeks {
			p.Prices = append(p.Prices, pricing.WeeklyPrice{
				ProductID:  s.id,
				WeekNumber: w + 1,
				Price:      price,
			})
		}
		products = append(products, p)
	}
	return products
}
