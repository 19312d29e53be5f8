// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	router "northwind-orders/internal/api"
	"northwind-orders/internal/api/handler"
	"northwind-orders/internal/config"
	"northwind-orders/internal/metrics"
	"northwind-orders/internal/repository"
	"northwind-orders/internal/repository/sqldb"
	"northwind-orders/internal/util"
	"northwind-orders/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config  *config.AppConfig
	Logger  *slog.Logger
	DB      *sqlx.DB
	Dialect db.Dialect

	// Repositories
	OrderRepository repository.OrderRepository

	// Metrics
	Registry *prometheus.Registry

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{Logger: util.GetLogger()}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, dialect, err := db.Open(ctx, app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Dialect = dialect
	app.Logger.Info("Database connection established.", "dialect", dialect.Name())

	// 4. Initialize Metrics
	app.Registry = prometheus.NewRegistry()
	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(app.DB.DB, app.Config.DB.Driver),
	)
	repoMetrics := metrics.NewRepositoryMetrics(app.Registry)

	// 5. Initialize Repositories
	app.OrderRepository = metrics.NewInstrumentedOrderRepository(
		sqldb.NewOrderRepository(app.DB, app.Dialect),
		repoMetrics,
	)
	app.Logger.Info("Repositories initialized.")

	// 6. Initialize HTTP Handlers and Router
	orderHandler := handler.NewOrderHandler(app.OrderRepository, app.Logger)
	metricsHandler := promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{})
	app.HTTPHandler = router.NewRouter(orderHandler, app.DB, metricsHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
