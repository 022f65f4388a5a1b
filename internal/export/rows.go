// Package export turns evaluated products into spreadsheet rows and writes
// them as XLSX or CSV.
package export

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"ramadanwatch/internal/pricing"
)

// SheetName is the single worksheet of an XLSX export.
const SheetName = "الأسعار"

var headers = []string{
	"المنتج",
	"الأسبوع",
	"سعر الأسبوع",
	"السعر الاسترشادي",
	"نسبة التغير عن السعر الاسترشادي %",
	"الفرق عن السعر الاسترشادي",
	"سعر الأسبوع السابق",
	"نسبة التغير عن الأسبوع السابق %",
	"الفرق عن الأسبوع السابق",
}

// Headers returns a copy of the fixed column headers.
func Headers() []string {
	out := make([]string, len(headers))
	copy(out, headers)
	return out
}

// Row is one exported product, every cell already formatted.
type Row []string

// BuildRows formats products at week. Callers filter beforehand; order is kept.
// At week 1 the previous-week price and delta are "0.00" and the previous-week
// percent is blank.
//
// Prices are rounded to cents first, half away from zero on their shortest
// decimal form (1.005 is 1.01), and the deltas and percents are computed from
// those rounded cents. A row therefore never contradicts itself, and a value
// that rounds to zero prints as "0.00", never "-0.00".
func BuildRows(products []pricing.Product, week int) []Row {
	rows := make([]Row, 0, len(products))
	for _, p := range products {
		pc := pricing.Evaluate(p, week)
		price := cents(pc.WeekPrice)
		ref := cents(pc.ReferencePrice)

		prevPrice, prevPercent, prevDelta := money(decimal.Zero), "", money(decimal.Zero)
		if pc.Previous != nil {
			prev := cents(pc.Previous.PreviousPrice)
			prevPrice = money(prev)
			prevPercent = percent(price, prev)
			prevDelta = money(price.Sub(prev))
		}

		rows = append(rows, Row{
			p.Name,
			strconv.Itoa(week),
			money(price),
			money(ref),
			percent(price, ref),
			money(price.Sub(ref)),
			prevPrice,
			prevPercent,
			prevDelta,
		})
	}
	return rows
}

// FileName is the download name for an export of week with extension ext.
func FileName(week int, ext string) string {
	return fmt.Sprintf("ramadan-prices-week-%d.%s", week, ext)
}

var hundred = decimal.NewFromInt(100)

func cents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// percent is the change from base to current with one decimal; a non-positive
// base yields "0.0".
func percent(current, base decimal.Decimal) string {
	if !base.IsPositive() {
		return "0.0"
	}
	return current.Sub(base).Div(base).Mul(hundred).StringFixed(1)
}
