package loader

import (
	"context"
	"time"

	"gorm.io/gorm"

	"ramadanwatch/internal/logger"
	"ramadanwatch/internal/models"
	"ramadanwatch/internal/pricing"
)

// DBSource reads products and weekly prices from the relational store. It
// produces the same shape as CSVSource.
type DBSource struct {
	db *gorm.DB
}

// NewDBSource creates a database-backed source.
func NewDBSource(db *gorm.DB) *DBSource {
	return &DBSource{db: db}
}

// Name identifies the source in logs and dataset metadata.
func (s *DBSource) Name() string { return "database" }

// Load reads every product with its prices. A product's ID is its code when
// one is stored, otherwise its row UUID.
func (s *DBSource) Load(ctx context.Context) ([]pricing.Product, error) {
	start := time.Now()

	var rows []models.Product
	err := s.db.WithContext(ctx).
		Preload("Prices", func(db *gorm.DB) *gorm.DB {
			return db.Order("week_number ASC")
		}).
		Order("display_order ASC").
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, &LoadError{Source: s.Name(), Op: "query products", Err: err}
	}

	products := make([]pricing.Product, 0, len(rows))
	observations := 0
	for _, row := range rows {
		id := row.ID
		if row.Code != "" {
			id = NormalizeID(row.Code)
		}

		p := pricing.Product{
			ID:             id,
			Name:           row.Name,
			Icon:           row.Icon,
			Color:          row.Color,
			Weight:         row.Weight,
			ReferencePrice: row.ReferencePrice.InexactFloat64(),
			DisplayOrder:   row.DisplayOrder,
			Prices:         make([]pricing.WeeklyPrice, 0, len(row.Prices)),
		}
		for _, wp := range row.Prices {
			var weekDate string
			if wp.WeekDate != nil {
				weekDate = wp.WeekDate.Format(time.DateOnly)
			}
			p.Prices = append(p.Prices, pricing.WeeklyPrice{
				ProductID:  id,
				WeekNumber: wp.WeekNumber,
				Price:      wp.Price.InexactFloat64(),
				WeekDate:   weekDate,
			})
		}
		observations += len(p.Prices)
		products = append(products, p)
	}

	if len(products) == 0 || observations == 0 {
		return nil, &LoadError{Source: s.Name(), Op: "query products", Err: ErrNoRows}
	}

	sortByDisplayOrder(products)
	logger.Named("loader").Infow("database source loaded",
		"products", len(products),
		"observations", observations,
		"duration", time.Since(start),
	)
	return products, nil
}
