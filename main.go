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

	"stay-scout/config"
	"stay-scout/scraper"
	"stay-scout/scraper/airbnb"
	"stay-scout/scraper/booking"
	"stay-scout/services"
	"stay-scout/storage"
	"stay-scout/utils"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "stay-scout:", err)
		os.Exit(1)
	}
}

func run() error {
	// ================== Bootstrap ====================
	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}

	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	if cfg.BrowsingHistory() {
		return browseHistory(context.Background(), cfg, logger)
	}

	criteria, err := cfg.Criteria(time.Now())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Stay Scout: %s, %s to %s, %d guests, max $%.0f/night",
		criteria.Location, criteria.CheckIn.Format("2006-01-02"), criteria.CheckOut.Format("2006-01-02"),
		criteria.Guests, criteria.MaxPricePerNight)
	logger.Info("Concurrency: %d | Rate delay: %dms | Retries: %d",
		cfg.MaxConcurrency, cfg.RateLimitDelay, cfg.MaxRetries)

	// =============== Metrics =====================
	if cfg.MetricsAddr != "" {
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsHandler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server stopped: %v", err)
			}
		}()
		defer srv.Close()
		logger.Info("Serving metrics on %s/metrics", cfg.MetricsAddr)
	}

	// =================== Optional stores ========================================
	var listingStore storage.ListingStorage
	if cfg.DatabaseURL != "" {
		pgWriter, err := storage.NewPostgresWriter(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return fmt.Errorf("cannot connect to PostgreSQL: %w", err)
		}
		defer pgWriter.Close()
		if err := pgWriter.CreateTable(ctx); err != nil {
			return err
		}
		listingStore = pgWriter
	}

	var history *storage.RedisHistory
	if cfg.RedisAddr != "" {
		history, err = storage.NewRedisHistory(ctx, cfg.RedisAddr, cfg.HistorySize, logger)
		if err != nil {
			return fmt.Errorf("cannot connect to Redis: %w", err)
		}
		defer history.Close()
	}

	// =============== Scraping ===================================
	airbnbSource := airbnb.NewAirbnbScraper(airbnb.Options{
		BaseURL:     cfg.AirbnbURL,
		Headless:    cfg.Headless,
		MaxListings: cfg.ListingsPerSource,
	}, logger)
	defer airbnbSource.Close()

	bookingSource, err := booking.NewBookingScraper(booking.Options{
		BaseURL:     cfg.BookingURL,
		MaxListings: cfg.ListingsPerSource,
	}, logger)
	if err != nil {
		return err
	}

	collector := scraper.NewCollector([]scraper.Source{bookingSource, airbnbSource}, scraper.Options{
		MaxConcurrency:   cfg.MaxConcurrency,
		RateLimitDelayMs: cfg.RateLimitDelay,
		MaxRetries:       cfg.MaxRetries,
		DetailsPerSource: cfg.DetailsPerSource,
	}, logger)

	catalog := services.NewCatalog(services.NewNormalizer(logger), logger)
	rawListings, err := collector.Collect(ctx, criteria, catalog)
	if errors.Is(err, scraper.ErrNoResults) {
		logger.Warn("No listings scraped, check your network connection or the sites' page structure")
	} else if err != nil {
		return err
	}

	// ========= CSV: store raw data ===========================
	csvWriter := storage.NewCSVWriter(cfg.CSVFilePath, logger)
	if len(rawListings) > 0 {
		if err := csvWriter.WriteRawListings(rawListings); err != nil {
			// Non-fatal: the analysis does not depend on it
			logger.Error("Failed to write raw CSV: %v", err)
		}
	}

	// ==== Analysis ============================
	analyzer := services.NewAnalyzer(cfg.BestValueCount, cfg.MaxConcurrency, logger)
	analysis := analyzer.Analyze(catalog.Listings(), criteria)

	if len(analysis.Listings) > 0 {
		if err := storage.NewCSVWriter(cfg.ScoredCSVPath, logger).WriteListings(analysis.Listings); err != nil {
			logger.Error("Failed to write scored CSV: %v", err)
		}
	}
	if err := storage.NewJSONWriter(cfg.JSONFilePath, logger).WriteAnalysis(analysis, criteria); err != nil {
		logger.Error("Failed to write analysis JSON: %v", err)
	}

	// ========= PostgreSQL / Redis ============
	if listingStore != nil {
		if err := listingStore.BatchInsert(ctx, analysis.Listings); err != nil {
			logger.Error("Failed to store listings in PostgreSQL: %v", err)
		}
	}
	if history != nil {
		entry := storage.NewHistoryEntry(analysis, criteria, time.Now())
		if err := history.Save(ctx, entry); err != nil {
			logger.Error("Failed to save search history: %v", err)
		} else {
			logger.Info("Search run saved as %s", entry.ID)
		}
	}

	// ==== Report ============================
	services.PrintAnalysisReport(os.Stdout, analysis, criteria)
	services.PrintBookingAdvice(os.Stdout, services.BookingAdvice(analysis, criteria))

	fmt.Println(" Done! Raw data →", cfg.CSVFilePath)
	fmt.Println(" Scored listings →", cfg.ScoredCSVPath)
	fmt.Println(" Analysis →", cfg.JSONFilePath)
	return nil
}

// browseHistory prints saved runs instead of searching
func browseHistory(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	if cfg.RedisAddr == "" {
		return errors.New("search history needs REDIS_ADDR")
	}
	history, err := storage.NewRedisHistory(ctx, cfg.RedisAddr, cfg.HistorySize, logger)
	if err != nil {
		return fmt.Errorf("cannot connect to Redis: %w", err)
	}
	defer history.Close()

	if cfg.ShowRun != "" {
		entry, err := history.Get(ctx, cfg.ShowRun)
		if err != nil {
			return err
		}
		storage.PrintHistoryEntry(os.Stdout, entry)
		return nil
	}

	entries, err := history.Recent(ctx, cfg.History)
	if err != nil {
		return err
	}
	storage.PrintHistory(os.Stdout, entries)
	return nil
}

func metricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
