package services

import (
	"bytes"
	"context"
	"sync"
	"sync/atomic"
	"time"

	apperrors "ramadanwatch/internal/errors"
	"ramadanwatch/internal/export"
	"ramadanwatch/internal/loader"
	"ramadanwatch/internal/logger"
	"ramadanwatch/internal/pagination"
	"ramadanwatch/internal/pricing"
)

// DashboardService serves views over the current dataset. The dataset is
// swapped atomically on reload, so readers always see one complete load.
type DashboardService struct {
	source   loader.Source
	current  atomic.Pointer[loader.Dataset]
	reloadMu sync.Mutex
}

// NewDashboardService creates a DashboardService. The first read triggers a
// load if Reload has not been called yet.
func NewDashboardService(source loader.Source) *DashboardService {
	return &DashboardService{source: source}
}

func (s *DashboardService) dataset() *loader.Dataset {
	if ds := s.current.Load(); ds != nil {
		return ds
	}
	_, _ = s.Reload(context.Background())
	return s.current.Load()
}

// resolveWeek maps 0 to the latest observed week and rejects negatives.
func resolveWeek(ds *loader.Dataset, week int) (int, error) {
	switch {
	case week < 0:
		return 0, apperrors.ErrInvalidWeek
	case week == 0:
		return ds.MaxWeek(), nil
	default:
		return week, nil
	}
}

func checkCategory(category pricing.Category) (pricing.Category, error) {
	if category == "" {
		return pricing.CategoryAll, nil
	}
	if !category.Valid() {
		return "", apperrors.ErrInvalidCategory
	}
	return category, nil
}

// Info returns metadata about the dataset being served.
func (s *DashboardService) Info() DatasetInfo {
	return infoOf(s.dataset())
}

func infoOf(ds *loader.Dataset) DatasetInfo {
	return DatasetInfo{
		Source:          ds.Source,
		UsingSampleData: ds.UsingSampleData,
		Notice:          ds.Notice,
		LoadedAt:        ds.LoadedAt,
		Weeks:           ds.Weeks(),
		MaxWeek:         ds.MaxWeek(),
		ProductCount:    len(ds.Products),
	}
}

// ListProducts evaluates the products of category at week, in display order.
func (s *DashboardService) ListProducts(week int, category pricing.Category, page pagination.PageRequest) (*pagination.PageResponse[pricing.PriceChange], error) {
	ds := s.dataset()
	week, err := resolveWeek(ds, week)
	if err != nil {
		return nil, err
	}
	category, err = checkCategory(category)
	if err != nil {
		return nil, err
	}

	page.Defaults()
	filtered := pricing.FilterByCategory(ds.Products, week, category)
	resp := pagination.Paginate(pricing.EvaluateAll(filtered, week), page)
	return &resp, nil
}

// GetProduct evaluates a single product at week.
func (s *DashboardService) GetProduct(id string, week int) (*pricing.PriceChange, error) {
	ds := s.dataset()
	week, err := resolveWeek(ds, week)
	if err != nil {
		return nil, err
	}
	p, ok := ds.FindProduct(id)
	if !ok {
		return nil, apperrors.ErrProductNotFound
	}
	pc := pricing.Evaluate(p, week)
	return &pc, nil
}

// Summary returns the KPI summary for week and category.
func (s *DashboardService) Summary(week int, category pricing.Category) (*SummaryView, error) {
	ds := s.dataset()
	week, err := resolveWeek(ds, week)
	if err != nil {
		return nil, err
	}
	category, err = checkCategory(category)
	if err != nil {
		return nil, err
	}
	return &SummaryView{
		Summary:         pricing.Summarize(ds.Products, week, category),
		UsingSampleData: ds.UsingSampleData,
		Notice:          ds.Notice,
	}, nil
}

// Ticker returns ticker entries using the latest observation up to week.
func (s *DashboardService) Ticker(week int) ([]pricing.TickerEntry, error) {
	ds := s.dataset()
	week, err := resolveWeek(ds, week)
	if err != nil {
		return nil, err
	}
	return pricing.Ticker(ds.Products, week), nil
}

// Chart returns one series per product covering weeks 1..week.
func (s *DashboardService) Chart(week int) ([]pricing.Series, error) {
	ds := s.dataset()
	week, err := resolveWeek(ds, week)
	if err != nil {
		return nil, err
	}
	return pricing.ChartSeries(ds.Products, week), nil
}

// Export renders the filtered products at week as a spreadsheet file.
func (s *DashboardService) Export(week int, category pricing.Category, format export.Format) (*ExportFile, error) {
	ds := s.dataset()
	week, err := resolveWeek(ds, week)
	if err != nil {
		return nil, err
	}
	category, err = checkCategory(category)
	if err != nil {
		return nil, err
	}

	rows := export.BuildRows(pricing.FilterByCategory(ds.Products, week, category), week)

	var buf bytes.Buffer
	if err := export.Write(&buf, format, rows); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExportFailed, err)
	}
	return &ExportFile{
		FileName:    export.FileName(week, string(format)),
		ContentType: format.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

// Reload loads the source and swaps the dataset in. A failed load swaps in the
// sample dataset. A load abandoned because ctx ended leaves the current dataset
// in place. Concurrent reloads run one at a time.
func (s *DashboardService) Reload(ctx context.Context) (DatasetInfo, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if err := ctx.Err(); err != nil {
		return DatasetInfo{}, apperrors.Wrap(apperrors.ErrLoadFailed, err)
	}

	start := time.Now()
	ds := loader.LoadWithFallback(ctx, s.source)
	if err := ctx.Err(); err != nil {
		logger.Named("dashboard").Warnw("reload abandoned, keeping current dataset", "error", err)
		return DatasetInfo{}, apperrors.Wrap(apperrors.ErrLoadFailed, err)
	}
	s.current.Store(ds)

	logger.Named("dashboard").Infow("dataset swapped",
		"source", ds.Source,
		"using_sample_data", ds.UsingSampleData,
		"products", len(ds.Products),
		"duration", time.Since(start),
	)
	return infoOf(ds), nil
}

// StartAutoReload reloads every interval until ctx is cancelled. It blocks;
// run it in its own goroutine. A non-positive interval returns immediately.
func (s *DashboardService) StartAutoReload(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	log := logger.Named("dashboard")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Infow("auto reload started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			log.Info("auto reload stopped")
			return
		case <-ticker.C:
			if _, err := s.Reload(ctx); err != nil && ctx.Err() == nil {
				log.Warnw("auto reload failed", "error", err)
			}
		}
	}
}
