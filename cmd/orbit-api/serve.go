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
	"github.com/spf13/cobra"

	"github.com/orbitlabs/orbit-backend/internal/config"
	"github.com/orbitlabs/orbit-backend/internal/handlers"
	"github.com/orbitlabs/orbit-backend/internal/logger"
	"github.com/orbitlabs/orbit-backend/internal/middleware"
	"github.com/orbitlabs/orbit-backend/internal/repository"
	"github.com/orbitlabs/orbit-backend/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port   string
	dbPath string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&dbPath, "db", "", "Path to the SQLite database (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override from flags if provided
	if port != "" {
		cfg.Server.Port = port
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}

	logger.SetDefault(logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	}))

	log := logger.Default()
	log.Info("starting orbit api server",
		logger.String("env", cfg.Server.Env),
		logger.String("db", cfg.Storage.Path))

	// Open storage
	store := repository.NewStore(cfg.Storage.Path)
	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	// Initialize repositories
	metricRepo := repository.NewMetricRepository(store.DB())
	logRepo := repository.NewLogRepository(store.DB())
	timeLogRepo := repository.NewTimeLogRepository(store.DB())
	reportRepo := repository.NewReportRepository(store.DB())

	// Initialize services
	metricService := service.NewMetricService(metricRepo, logRepo)
	logService := service.NewLogService(logRepo, metricRepo, timeLogRepo)
	dashboardService := service.NewDashboardService(metricRepo, logRepo, timeLogRepo)
	analyticsService := service.NewAnalyticsService(metricRepo, logRepo)
	reportService := service.NewReportService(metricRepo, logRepo, reportRepo)

	// Initialize handlers
	metricHandler := handlers.NewMetricHandler(metricService)
	logHandler := handlers.NewLogHandler(logService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Metric routes
		v1.GET("/metrics", metricHandler.GetMetrics)
		v1.POST("/metrics", metricHandler.CreateMetric)
		v1.GET("/metrics/:id", metricHandler.GetMetric)
		v1.PUT("/metrics/:id", metricHandler.UpdateMetric)
		v1.DELETE("/metrics/:id", metricHandler.DeleteMetric)

		// Log routes
		v1.GET("/logs", logHandler.GetLogs)
		v1.POST("/logs", logHandler.CreateLog)
		v1.DELETE("/logs/:id", logHandler.DeleteLog)

		// Time log routes
		v1.GET("/timelogs", logHandler.GetTimeLogs)
		v1.POST("/timelogs", logHandler.CreateTimeLog)
		v1.DELETE("/timelogs/:id", logHandler.DeleteTimeLog)

		// Dashboard routes
		v1.GET("/dashboard", dashboardHandler.GetWidgets)
		v1.GET("/dashboard/health", dashboardHandler.GetSystemHealth)

		// Analytics routes
		v1.GET("/analytics/correlations", analyticsHandler.GetCorrelations)
		v1.GET("/analytics/momentum", analyticsHandler.GetMomentum)
		v1.GET("/analytics/averages", analyticsHandler.GetAverages)
		v1.GET("/analytics/comparisons", analyticsHandler.GetComparisons)
		v1.GET("/insights", analyticsHandler.GetInsights)

		// Report routes
		v1.GET("/reports", reportHandler.GetReports)
		v1.POST("/reports", reportHandler.GenerateReport)
		v1.GET("/reports/:id", reportHandler.GetReport)
		v1.DELETE("/reports/:id", reportHandler.DeleteReport)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", logger.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("shutting down", logger.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
