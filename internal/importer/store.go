package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ramadanwatch/internal/models"
	"ramadanwatch/internal/pricing"
)

// GormStore upserts products by code and prices by (product, week).
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store over db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Sync writes every product and its prices in one transaction.
func (s *GormStore) Sync(ctx context.Context, products []pricing.Product) (SyncStats, error) {
	var stats SyncStats

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range products {
			row := models.Product{
				Code:           p.ID,
				Name:           p.Name,
				Icon:           p.Icon,
				Color:          p.Color,
				ReferencePrice: decimal.NewFromFloat(p.ReferencePrice).Round(2),
				DisplayOrder:   p.DisplayOrder,
				Weight:         p.Weight,
			}
			// the predicate is literal so it matches the partial index on code
			err := tx.Clauses(clause.OnConflict{
				Columns:     []clause.Column{{Name: "code"}},
				TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "code <> ''"}}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "icon", "color", "reference_price", "display_order", "weight", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return fmt.Errorf("upsert product %s: %w", p.ID, err)
			}

			// on conflict the generated id was discarded; read back the stored one
			var stored models.Product
			if err := tx.Select("id").Where("code = ?", p.ID).First(&stored).Error; err != nil {
				return fmt.Errorf("reload product %s: %w", p.ID, err)
			}
			stats.Products++

			for _, wp := range p.Prices {
				price := models.WeeklyPrice{
					ProductID:  stored.ID,
					WeekNumber: wp.WeekNumber,
					Price:      decimal.NewFromFloat(wp.Price).Round(2),
					WeekDate:   parseWeekDate(wp.WeekDate),
				}
				err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "product_id"}, {Name: "week_number"}},
					DoUpdates: clause.AssignmentColumns([]string{"price", "week_date", "updated_at"}),
				}).Create(&price).Error
				if err != nil {
					return fmt.Errorf("upsert price %s week %d: %w", p.ID, wp.WeekNumber, err)
				}
				stats.Prices++
			}
		}
		return nil
	})
	if err != nil {
		return SyncStats{}, err
	}
	return stats, nil
}

func parseWeekDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}
	return &t
}
