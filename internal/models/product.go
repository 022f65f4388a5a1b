package models

import (
	"github.com/shopspring/decimal"
)

// Product is a tracked commodity. Code carries the product code from the CSV
// source (leading zeros stripped) so imports can upsert by it. Codes are unique
// only when set; any number of products may have none.
type Product struct {
	Base
	Code           string          `gorm:"not null;default:'';uniqueIndex:idx_products_code,where:code <> ''" json:"code"`
	Name           string          `gorm:"not null" json:"name"`
	Icon           string          `json:"icon"`
	Color          string          `json:"color"`
	ReferencePrice decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"reference_price"`
	DisplayOrder   int             `gorm:"not null;default:0;index" json:"display_order"`
	Weight         string          `json:"weight"`
	Prices         []WeeklyPrice   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"prices,omitempty"`
}
