package services

import (
	"context"
	"time"

	"ramadanwatch/internal/export"
	"ramadanwatch/internal/pagination"
	"ramadanwatch/internal/pricing"
)

// DatasetInfo describes the dataset currently being served.
type DatasetInfo struct {
	Source          string    `json:"source"`
	UsingSampleData bool      `json:"using_sample_data"`
	Notice          string    `json:"notice,omitempty"`
	LoadedAt        time.Time `json:"loaded_at"`
	Weeks           []int     `json:"weeks"`
	MaxWeek         int       `json:"max_week"`
	ProductCount    int       `json:"product_count"`
}

// SummaryView is the KPI summary plus the sample-data flag so the client
// can show its notice next to the numbers.
type SummaryView struct {
	pricing.Summary
	UsingSampleData bool   `json:"using_sample_data"`
	Notice          string `json:"notice,omitempty"`
}

// ExportFile is a rendered export ready to be sent.
type ExportFile struct {
	FileName    string
	ContentType string
	Body        []byte
}

// DashboardServicer defines the read and reload operations behind the dashboard API.
// A week of 0 means the latest observed week; negative weeks are rejected.
type DashboardServicer interface {
	Info() DatasetInfo
	ListProducts(week int, category pricing.Category, page pagination.PageRequest) (*pagination.PageResponse[pricing.PriceChange], error)
	GetProduct(id string, week int) (*pricing.PriceChange, error)
	Summary(week int, category pricing.Category) (*SummaryView, error)
	Ticker(week int) ([]pricing.TickerEntry, error)
	Chart(week int) ([]pricing.Series, error)
	Export(week int, category pricing.Category, format export.Format) (*ExportFile, error)
	Reload(ctx context.Context) (DatasetInfo, error)
}
