package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"ramadanwatch/internal/csvparse"
	"ramadanwatch/internal/logger"
	"ramadanwatch/internal/pricing"
)

// File names resolved against the base path.
const (
	ProductsFile     = "products.csv"
	WeeklyPricesFile = "weekly_prices.csv"
)

const maxFileSize = 8 << 20

// CSVOptions tunes a CSVSource. Zero values select the defaults.
type CSVOptions struct {
	HTTPClient    *http.Client
	OverridesFile string        // optional id,name table; empty disables overrides
	Retries       uint64        // extra attempts per HTTP fetch
	RetryDelay    time.Duration // pause between attempts
}

// CSVSource loads products.csv and weekly_prices.csv from a base location,
// either an http(s) URL or a local directory.
type CSVSource struct {
	basePath      string
	remote        bool
	httpClient    *http.Client
	overridesFile string
	retries       uint64
	retryDelay    time.Duration
}

// NewCSVSource creates a CSV source rooted at basePath.
func NewCSVSource(basePath string, opts CSVOptions) *CSVSource {
	s := &CSVSource{
		basePath:      basePath,
		remote:        strings.HasPrefix(basePath, "http://") || strings.HasPrefix(basePath, "https://"),
		httpClient:    opts.HTTPClient,
		overridesFile: opts.OverridesFile,
		retries:       opts.Retries,
		retryDelay:    opts.RetryDelay,
	}
	if s.httpClient == nil {
		s.httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if s.retryDelay <= 0 {
		s.retryDelay = 200 * time.Millisecond
	}
	return s
}

// Name identifies the source in logs and dataset metadata.
func (s *CSVSource) Name() string { return "csv:" + s.basePath }

// Load fetches both tables concurrently; if either fails the whole load fails.
func (s *CSVSource) Load(ctx context.Context) ([]pricing.Product, error) {
	log := logger.Named("loader")
	start := time.Now()

	var productsText, pricesText string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := s.fetch(gctx, ProductsFile)
		if err != nil {
			return &LoadError{Source: s.Name(), Op: "fetch " + ProductsFile, Err: err}
		}
		productsText = text
		return nil
	})
	g.Go(func() error {
		text, err := s.fetch(gctx, WeeklyPricesFile)
		if err != nil {
			return &LoadError{Source: s.Name(), Op: "fetch " + WeeklyPricesFile, Err: err}
		}
		pricesText = text
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	productRecs := csvparse.Parse(productsText)
	if len(productRecs) == 0 {
		return nil, &LoadError{Source: s.Name(), Op: "parse " + ProductsFile, Err: ErrNoRows}
	}
	priceRecs := csvparse.Parse(pricesText)
	if len(priceRecs) == 0 {
		return nil, &LoadError{Source: s.Name(), Op: "parse " + WeeklyPricesFile, Err: ErrNoRows}
	}

	products, stats := BuildProducts(productRecs, priceRecs, s.loadNameOverrides(ctx))
	if stats.Products == 0 || stats.Observations == 0 {
		return nil, &LoadError{Source: s.Name(), Op: "merge", Err: ErrNoRows}
	}

	log.Infow("csv source loaded",
		"products", stats.Products,
		"observations", stats.Observations,
		"orphans", stats.Orphans,
		"duplicates", stats.Duplicates,
		"skipped_products", stats.SkippedProducts,
		"skipped_observations", stats.SkippedObservations,
		"duration", time.Since(start),
	)
	return products, nil
}

// loadNameOverrides is best-effort: any failure means no overrides.
func (s *CSVSource) loadNameOverrides(ctx context.Context) map[string]string {
	if s.overridesFile == "" {
		return nil
	}
	text, err := s.fetch(ctx, s.overridesFile)
	if err != nil {
		logger.Named("loader").Warnw("name overrides unavailable", "file", s.overridesFile, "error", err)
		return nil
	}
	return ParseNameOverrides(csvparse.Parse(text))
}

func (s *CSVSource) fetch(ctx context.Context, name string) (string, error) {
	if s.remote {
		u, err := url.JoinPath(s.basePath, name)
		if err != nil {
			return "", fmt.Errorf("build url for %s: %w", name, err)
		}
		return s.fetchHTTP(ctx, u)
	}
	return readFile(filepath.Join(s.basePath, name))
}

func (s *CSVSource) fetchHTTP(ctx context.Context, u string) (string, error) {
	var body []byte
	err := backoff.Retry(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("create request: %w", err))
			}
			resp, err := s.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("get %s: %w", u, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode < 200 || resp.StatusCode > 299 {
				statusErr := &StatusError{URL: u, StatusCode: resp.StatusCode}
				// client errors will not change on retry
				if resp.StatusCode < 500 {
					return backoff.Permanent(statusErr)
				}
				return statusErr
			}

			b, err := io.ReadAll(io.LimitReader(resp.Body, maxFileSize))
			if err != nil {
				return fmt.Errorf("read %s: %w", u, err)
			}
			body = b
			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(s.retryDelay), s.retries),
			ctx,
		),
	)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s not found: %w", path, err)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}
