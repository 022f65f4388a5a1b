package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"ramadanwatch/internal/config"
	"ramadanwatch/internal/database"
	_ "ramadanwatch/internal/docs" // Import swagger docs
	"ramadanwatch/internal/handlers"
	"ramadanwatch/internal/loader"
	"ramadanwatch/internal/logger"
	"ramadanwatch/internal/middleware"
	"ramadanwatch/internal/services"
	"ramadanwatch/internal/validator"
)

const shutdownTimeout = 10 * time.Second

// @title           Ramadan Price Watch API
// @version         1.0
// @description     Weekly staple food prices during Ramadan compared against reference prices.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Shared key for the reload endpoint.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := newSource(cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	dashboardService := services.NewDashboardService(source)
	info, err := dashboardService.Reload(ctx)
	if err != nil {
		return fmt.Errorf("initial load: %w", err)
	}
	if info.UsingSampleData {
		log.Warnw("serving sample data", "source", source.Name())
	}
	go dashboardService.StartAutoReload(ctx, cfg.ReloadInterval)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, dashboardService),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Ramadan price watch API on port %s", cfg.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newSource builds the configured price source. The returned func releases
// whatever the source holds open.
func newSource(cfg *config.Config) (loader.Source, func(), error) {
	switch cfg.DataSource {
	case config.DataSourceDatabase:
		dbManager, err := database.NewManager(database.NewConfig(cfg))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create database manager: %w", err)
		}
		if err := dbManager.RunMigrations(); err != nil {
			_ = dbManager.Close()
			return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		return loader.NewDBSource(dbManager.DB()), func() { _ = dbManager.Close() }, nil
	default:
		src := loader.NewCSVSource(cfg.DataBasePath, loader.CSVOptions{
			HTTPClient:    &http.Client{Timeout: cfg.RequestTimeout},
			OverridesFile: cfg.NameOverridesFile,
			Retries:       uint64(cfg.FetchRetries),
		})
		return src, func() {}, nil
	}
}

func newRouter(cfg *config.Config, dashboardService services.DashboardServicer) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSAllowOrigin))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		info := dashboardService.Info()
		c.JSON(http.StatusOK, gin.H{
			"status":            "ok",
			"using_sample_data": info.UsingSampleData,
			"loaded_at":         info.LoadedAt,
		})
	})

	v1 := router.Group("/api/v1")
	handlers.NewDashboardHandler(dashboardService).
		RegisterRoutes(v1, middleware.ReloadAuth(cfg.ReloadAPIKey))

	return router
}
