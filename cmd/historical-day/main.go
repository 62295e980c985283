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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/historical-day/internal/api/http"
	"github.com/i474232898/historical-day/internal/auth"
	"github.com/i474232898/historical-day/internal/calendar"
	"github.com/i474232898/historical-day/internal/commands"
	"github.com/i474232898/historical-day/internal/config"
	"github.com/i474232898/historical-day/internal/onthisday"
	eventproviders "github.com/i474232898/historical-day/internal/onthisday/providers"
	"github.com/i474232898/historical-day/internal/scheduler"
	"github.com/i474232898/historical-day/internal/store"
	"github.com/i474232898/historical-day/internal/weather"
	weatherproviders "github.com/i474232898/historical-day/internal/weather/providers"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		os.Exit(commands.HashPassword(os.Args[2:]))
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	log.Printf("INFO: config: %s", cfg)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory caches with configured retention.
	archiveCache := store.NewMemoryStore[weather.DayArchive](cfg.CacheMaxEntries, cfg.CacheMaxAge)
	eventsCache := store.NewMemoryStore[onthisday.DayEvents](cfg.CacheMaxEntries, cfg.CacheMaxAge)

	// Providers with resilience (backoff + circuit breaker).
	archive := weather.FallbackProvider{
		weatherproviders.NewOpenMeteoArchiveProvider(httpClient, cfg.ArchiveURL, cfg.UserAgent),
	}
	if cfg.WeatherAPIKey != "" {
		archive = append(archive, weatherproviders.NewWeatherAPIHistoryProvider(httpClient, cfg.WeatherAPIHistoryURL, cfg.WeatherAPIKey, cfg.UserAgent))
	}
	feed := eventproviders.NewWikimediaProvider(httpClient, cfg.WikimediaFeedURL, cfg.UserAgent)

	// Free-text places need a Google API key; presets and coordinates work without one.
	var geocoder weather.Geocoder
	if cfg.GeocoderAPIKey != "" {
		geocoder = weatherproviders.NewGoogleGeocoder(cfg.GeocoderAPIKey)
	} else {
		log.Println("INFO: GEOCODER_API_KEY not set, only preset locations and coordinates are accepted")
	}

	weatherService := weather.NewService(archiveCache, archive, geocoder, cfg.Locations)
	eventsService := onthisday.NewService(eventsCache, feed, cfg.WikimediaLang)

	// Scheduler that purges stale cache entries and warms today's events.
	sched := scheduler.New(map[string]scheduler.Purger{
		"archive": archiveCache,
		"events":  eventsCache,
	}, cfg.PurgeInterval, eventsService, cfg.WarmupAt)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	creds, err := auth.LoadCredentials(cfg.AuthFile)
	if err != nil {
		log.Fatalf("failed to load auth file: %v", err)
	}
	if creds == nil {
		log.Printf("INFO: %s not found, admin routes are disabled (create it with `hash-password`)", cfg.AuthFile)
	}

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "historical-day",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.Printf("ERROR: %s %s: %v", c.Method(), c.OriginalURL(), err)
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "historical-day",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Dependencies{
		Weather:   weatherService,
		Events:    eventsService,
		AdminAuth: auth.Middleware(creds),
		Caches: map[string]httpapi.CacheAdmin{
			"archive": archiveCache,
			"events":  eventsCache,
		},
		YearPolicy:      calendar.YearPolicy{Min: cfg.MinYear},
		DefaultHour:     cfg.DefaultHour,
		DefaultTimezone: cfg.DefaultTimezone,
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
