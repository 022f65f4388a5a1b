package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"go.uber.org/zap"

	"ramadanwatch/internal/config"
	"ramadanwatch/internal/importer"
	"ramadanwatch/internal/loader"
	"ramadanwatch/internal/logger"
	"ramadanwatch/internal/pricing"
	"ramadanwatch/internal/services"
	"ramadanwatch/internal/testutil"
	"ramadanwatch/internal/validator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init("test", "")
	validator.Register()
	os.Exit(m.Run())
}

type staticSource []pricing.Product

func (s staticSource) Name() string { return "static" }

func (s staticSource) Load(context.Context) ([]pricing.Product, error) { return s, nil }

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	products := staticSource{{
		ID: "1", Name: "Rice", ReferencePrice: 10,
		Prices: []pricing.WeeklyPrice{{ProductID: "1", WeekNumber: 1, Price: 11}},
	}}
	svc := services.NewDashboardService(products)
	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	return newRouter(cfg, svc)
}

func serve(r http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	rec := serve(newTestRouter(t, &config.Config{}), http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["using_sample_data"] != false {
		t.Errorf("unexpected body %v", body)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected request id header")
	}
}

func TestRouter_Summary(t *testing.T) {
	rec := serve(newTestRouter(t, &config.Config{}), http.MethodGet, "/api/v1/summary?week=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	directions := body["directions"].(map[string]interface{})
	if directions["increase"] != float64(1) {
		t.Errorf("expected one increase, got %v", directions)
	}
}

func TestRouter_ReloadGuard(t *testing.T) {
	t.Run("disabled without key", func(t *testing.T) {
		rec := serve(newTestRouter(t, &config.Config{}), http.MethodPost, "/api/v1/reload", nil)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})

	t.Run("accepts configured key", func(t *testing.T) {
		r := newTestRouter(t, &config.Config{ReloadAPIKey: "k"})
		rec := serve(r, http.MethodPost, "/api/v1/reload", http.Header{"X-Api-Key": {"k"}})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

// dataDir is the bundled dataset at the repository root.
const dataDir = "../../data"

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v\nbody: %s", err, rec.Body.String())
	}
	return body
}

func TestBundledData_ServedFromCSV(t *testing.T) {
	src := loader.NewCSVSource(dataDir, loader.CSVOptions{OverridesFile: "product_names.csv"})
	svc := services.NewDashboardService(src)
	info, err := svc.Reload(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if info.UsingSampleData || info.ProductCount != 10 || info.MaxWeek != 5 {
		t.Fatalf("unexpected dataset %+v", info)
	}
	r := newRouter(&config.Config{}, svc)

	rec := serve(r, http.MethodGet, "/api/v1/products/001?week=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	product := decode(t, rec)["product"].(map[string]interface{})
	if product["category"] != "increase" {
		t.Errorf("expected increase, got %v", product["category"])
	}
	if name := product["product"].(map[string]interface{})["name"]; name != "أرز مصري (عريض)" {
		t.Errorf("expected overridden name, got %v", name)
	}

	// beans have no week-3 row: the ticker carries week 2 forward
	rec = serve(r, http.MethodGet, "/api/v1/ticker?week=3", nil)
	for _, e := range decode(t, rec)["ticker"].([]interface{}) {
		entry := e.(map[string]interface{})
		if entry["product_id"] == "9" && entry["observed_week"] != float64(2) {
			t.Errorf("expected beans observed at week 2, got %v", entry["observed_week"])
		}
	}

	rec = serve(r, http.MethodGet, "/api/v1/export?week=5&format=csv", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"فول مدمس, معلب"`) {
		t.Errorf("expected quoted product name in csv export")
	}
}

func TestBundledData_ImportedThenServedFromDatabase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	csv := loader.NewCSVSource(dataDir, loader.CSVOptions{OverridesFile: "product_names.csv"})
	result, err := importer.New(csv, importer.NewGormStore(db), zap.NewNop().Sugar()).Run(context.Background())
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.ProductsUpserted != 10 || result.PricesUpserted != 48 || len(result.Skipped) != 0 {
		t.Fatalf("unexpected import result %+v", result)
	}

	svc := services.NewDashboardService(loader.NewDBSource(db))
	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	r := newRouter(&config.Config{}, svc)

	body := decode(t, serve(r, http.MethodGet, "/api/v1/dataset", nil))
	if body["source"] != "database" || body["using_sample_data"] != false || body["max_week"] != float64(5) {
		t.Fatalf("unexpected dataset %v", body)
	}

	fromCSV := decode(t, serve(newTestRouterFor(t, csv), http.MethodGet, "/api/v1/summary?week=4", nil))
	fromDB := decode(t, serve(r, http.MethodGet, "/api/v1/summary?week=4", nil))
	for _, key := range []string{"adherence_percent", "stable", "filtered_products"} {
		if fromCSV[key] != fromDB[key] {
			t.Errorf("%s differs: csv=%v db=%v", key, fromCSV[key], fromDB[key])
		}
	}
}

func newTestRouterFor(t *testing.T, src loader.Source) *gin.Engine {
	t.Helper()
	svc := services.NewDashboardService(src)
	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	return newRouter(&config.Config{}, svc)
}
