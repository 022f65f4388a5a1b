package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxWeekNumber bounds week_number in the weekly_prices check constraint.
const MaxWeekNumber = 10

// WeeklyPrice is one observed price. (ProductID, WeekNumber) is unique.
type WeeklyPrice struct {
	Base
	ProductID  string          `gorm:"type:uuid;not null;uniqueIndex:idx_weekly_prices_product_week" json:"product_id"`
	WeekNumber int             `gorm:"not null;uniqueIndex:idx_weekly_prices_product_week" json:"week_number"`
	Price      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	WeekDate   *time.Time      `gorm:"type:date" json:"week_date,omitempty"`
}
