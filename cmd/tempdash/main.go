package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/tempdash/temperature-dashboard/internal/analysis"
	httpapi "github.com/tempdash/temperature-dashboard/internal/api/http"
	"github.com/tempdash/temperature-dashboard/internal/config"
	"github.com/tempdash/temperature-dashboard/internal/monitor"
	"github.com/tempdash/temperature-dashboard/internal/series"
	"github.com/tempdash/temperature-dashboard/internal/store"
	"github.com/tempdash/temperature-dashboard/internal/weather"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound weather API calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory store for the loaded history and computed results.
	memStore := store.NewMemoryStore()

	// Optional startup preload so the dashboard has data before any upload.
	if cfg.DatasetPath != "" {
		f, err := os.Open(cfg.DatasetPath)
		if err != nil {
			log.Fatalf("failed to open dataset %s: %v", cfg.DatasetPath, err)
		}
		ds, err := series.Load(f)
		f.Close()
		if err != nil {
			log.Fatalf("failed to load dataset %s: %v", cfg.DatasetPath, err)
		}
		memStore.SetDataset(ds)
		log.Printf("INFO: preloaded dataset %s: %d records", cfg.DatasetPath, len(ds))
	}

	// Live-reading fetch with the configured strategy (sync or async).
	client := weather.NewClient(httpClient, cfg.OpenWeatherAPIKey)
	fetcher, err := weather.NewFetcher(cfg.FetchMode, client)
	if err != nil {
		log.Fatalf("failed to build fetcher: %v", err)
	}

	// Periodic live checks for configured cities.
	mon := monitor.New(cfg.MonitorCities, cfg.MonitorInterval, fetcher, memStore)
	if err := mon.Start(); err != nil {
		log.Fatalf("failed to start monitor: %v", err)
	}
	defer mon.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "temperature-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "temperature-dashboard",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Store:   memStore,
		Fetcher: fetcher,
		Opts: analysis.Options{
			Window: cfg.Window,
			Chunks: cfg.Chunks,
		},
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
