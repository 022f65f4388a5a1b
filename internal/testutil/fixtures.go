package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"ramadanwatch/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestProduct inserts a product with a unique code and the given reference price.
func CreateTestProduct(t *testing.T, db *gorm.DB, referencePrice float64) *models.Product {
	t.Helper()
	n := nextID()
	return CreateTestProductWithCode(t, db, fmt.Sprintf("%d", 1000+n), referencePrice, int(n))
}

// CreateTestProductWithCode inserts a product with an explicit code and display order.
func CreateTestProductWithCode(t *testing.T, db *gorm.DB, code string, referencePrice float64, displayOrder int) *models.Product {
	t.Helper()

	product := &models.Product{
		Code:           code,
		Name:           "Product " + code,
		Icon:           "box",
		Color:          "#888888",
		ReferencePrice: decimal.NewFromFloat(referencePrice),
		DisplayOrder:   displayOrder,
		Weight:         "1 kg",
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

// CreateTestWeeklyPrice inserts an observation dated from a fixed season start.
func CreateTestWeeklyPrice(t *testing.T, db *gorm.DB, productID string, week int, price float64) *models.WeeklyPrice {
	t.Helper()

	date := time.Date(2026, time.February, 18, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*(week-1))
	wp := &models.WeeklyPrice{
		ProductID:  productID,
		WeekNumber: week,
		Price:      decimal.NewFromFloat(price),
		WeekDate:   &date,
	}
	if err := db.Create(wp).Error; err != nil {
		t.Fatalf("failed to create test weekly price: %v", err)
	}
	return wp
}
