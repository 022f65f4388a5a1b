package importer

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ramadanwatch/internal/models"
	"ramadanwatch/internal/pricing"
	"ramadanwatch/internal/testutil"
)

// mockSource implements loader.Source for testing.
type mockSource struct {
	loadFn func(ctx context.Context) ([]pricing.Product, error)
}

func (m *mockSource) Name() string { return "mock" }

func (m *mockSource) Load(ctx context.Context) ([]pricing.Product, error) {
	return m.loadFn(ctx)
}

// mockStore implements Store for testing.
type mockStore struct {
	syncFn func(ctx context.Context, products []pricing.Product) (SyncStats, error)
}

func (m *mockStore) Sync(ctx context.Context, products []pricing.Product) (SyncStats, error) {
	return m.syncFn(ctx, products)
}

func sourceOf(products []pricing.Product) *mockSource {
	return &mockSource{loadFn: func(context.Context) ([]pricing.Product, error) {
		return products, nil
	}}
}

func testProducts() []pricing.Product {
	return []pricing.Product{
		{
			ID: "11", Name: "Rice", ReferencePrice: 10, DisplayOrder: 1,
			Prices: []pricing.WeeklyPrice{
				{ProductID: "11", WeekNumber: 1, Price: 11, WeekDate: "2026-02-18"},
				{ProductID: "11", WeekNumber: 2, Price: 12.345},
				{ProductID: "11", WeekNumber: 11, Price: 13},
			},
		},
		{
			ID: "12", Name: "Sugar", ReferencePrice: 5, DisplayOrder: 2,
			Prices: []pricing.WeeklyPrice{
				{ProductID: "12", WeekNumber: 1, Price: -1},
			},
		},
	}
}

func TestRun_SkipsRowsTheSchemaRejects(t *testing.T) {
	var synced []pricing.Product
	store := &mockStore{syncFn: func(_ context.Context, products []pricing.Product) (SyncStats, error) {
		synced = products
		return SyncStats{Products: len(products), Prices: 2}, nil
	}}

	result, err := New(sourceOf(testProducts()), store, zap.NewNop().Sugar()).Run(context.Background())
	testutil.AssertNoError(t, err)

	if result.ProductsLoaded != 2 || result.ProductsUpserted != 2 || result.PricesUpserted != 2 {
		t.Errorf("unexpected result %+v", result)
	}
	if len(result.Skipped) != 2 {
		t.Fatalf("expected 2 skipped rows, got %+v", result.Skipped)
	}
	if result.Skipped[0].WeekNumber != 11 || result.Skipped[1].ProductID != "12" {
		t.Errorf("unexpected skipped rows %+v", result.Skipped)
	}
	if len(synced[0].Prices) != 2 || len(synced[1].Prices) != 0 {
		t.Errorf("store received unfiltered prices: %+v", synced)
	}
}

func TestRun_SkipsProductsTheSchemaRejects(t *testing.T) {
	products := testProducts()
	products = append(products,
		pricing.Product{
			ID: "13", Name: "Oil", ReferencePrice: -5,
			Prices: []pricing.WeeklyPrice{{ProductID: "13", WeekNumber: 1, Price: 20}},
		},
		pricing.Product{ID: "", Name: "Unnamed", ReferencePrice: 1},
	)

	var synced []pricing.Product
	store := &mockStore{syncFn: func(_ context.Context, products []pricing.Product) (SyncStats, error) {
		synced = products
		return SyncStats{Products: len(products)}, nil
	}}

	result, err := New(sourceOf(products), store, zap.NewNop().Sugar()).Run(context.Background())
	testutil.AssertNoError(t, err)

	if result.ProductsLoaded != 4 || len(synced) != 2 {
		t.Fatalf("expected 4 loaded and 2 synced, got %+v with %d synced", result, len(synced))
	}
	for _, p := range synced {
		if p.ID == "13" || p.ID == "" {
			t.Errorf("rejected product %q reached the store", p.ID)
		}
	}

	want := map[string]string{"13": "negative reference_price", "": "missing product code"}
	found := 0
	for _, row := range result.Skipped {
		if reason, ok := want[row.ProductID]; ok && row.WeekNumber == 0 {
			if row.Reason != reason {
				t.Errorf("product %q skipped for %q, want %q", row.ProductID, row.Reason, reason)
			}
			found++
		}
	}
	if found != 2 || len(result.Skipped) != 4 {
		t.Errorf("unexpected skipped rows %+v", result.Skipped)
	}
}

func TestRun_SourceError(t *testing.T) {
	src := &mockSource{loadFn: func(context.Context) ([]pricing.Product, error) {
		return nil, errors.New("boom")
	}}
	store := &mockStore{syncFn: func(context.Context, []pricing.Product) (SyncStats, error) {
		t.Fatal("store must not be called when the load fails")
		return SyncStats{}, nil
	}}

	if _, err := New(src, store, zap.NewNop().Sugar()).Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRun_StoreError(t *testing.T) {
	store := &mockStore{syncFn: func(context.Context, []pricing.Product) (SyncStats, error) {
		return SyncStats{}, errors.New("db down")
	}}
	if _, err := New(sourceOf(testProducts()), store, zap.NewNop().Sugar()).Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestGormStore_Sync(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	im := New(sourceOf(testProducts()), NewGormStore(db), zap.NewNop().Sugar())
	result, err := im.Run(context.Background())
	testutil.AssertNoError(t, err)
	if result.ProductsUpserted != 2 || result.PricesUpserted != 2 {
		t.Fatalf("unexpected result %+v", result)
	}

	var rice models.Product
	if err := db.Preload("Prices").Where("code = ?", "11").First(&rice).Error; err != nil {
		t.Fatalf("product not stored: %v", err)
	}
	if len(rice.Prices) != 2 {
		t.Fatalf("expected 2 prices, got %d", len(rice.Prices))
	}

	t.Run("rerun_updates_in_place", func(t *testing.T) {
		updated := testProducts()
		updated[0].Name = "أرز"
		updated[0].Prices[0].Price = 10.5

		_, err := New(sourceOf(updated), NewGormStore(db), zap.NewNop().Sugar()).Run(context.Background())
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Product{}).Count(&count)
		if count != 2 {
			t.Errorf("expected 2 products after rerun, got %d", count)
		}
		db.Model(&models.WeeklyPrice{}).Count(&count)
		if count != 2 {
			t.Errorf("expected 2 prices after rerun, got %d", count)
		}

		var again models.Product
		if err := db.Preload("Prices", func(tx *gorm.DB) *gorm.DB { return tx.Order("week_number") }).
			Where("code = ?", "11").First(&again).Error; err != nil {
			t.Fatalf("reload: %v", err)
		}
		if again.ID != rice.ID {
			t.Errorf("product id changed on upsert: %s -> %s", rice.ID, again.ID)
		}
		if again.Name != "أرز" {
			t.Errorf("expected updated name, got %q", again.Name)
		}
		if got := again.Prices[0].Price.StringFixed(2); got != "10.50" {
			t.Errorf("expected updated week-1 price 10.50, got %s", got)
		}
		if got := again.Prices[1].Price.StringFixed(2); got != "12.35" {
			t.Errorf("expected rounded week-2 price 12.35, got %s", got)
		}
	})

	t.Run("coexists_with_products_without_code", func(t *testing.T) {
		testutil.CreateTestProductWithCode(t, db, "", 1, 90)
		testutil.CreateTestProductWithCode(t, db, "", 2, 91)

		_, err := New(sourceOf(testProducts()), NewGormStore(db), zap.NewNop().Sugar()).Run(context.Background())
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Product{}).Count(&count)
		if count != 4 {
			t.Errorf("expected 2 coded and 2 code-less products, got %d", count)
		}
	})
}

func TestParseWeekDate(t *testing.T) {
	if parseWeekDate("") != nil || parseWeekDate("next week") != nil {
		t.Error("expected nil for empty or invalid dates")
	}
	d := parseWeekDate("2026-03-04")
	if d == nil || d.Month() != 3 || d.Day() != 4 {
		t.Errorf("unexpected date %v", d)
	}
}
