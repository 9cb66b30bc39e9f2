package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"stay-scout/models"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const dateLayout = "2006-01-02"

// Config holds all application-level configuration
type Config struct {
	// Search
	Location     string   `mapstructure:"location"`
	CheckIn      string   `mapstructure:"check_in"`
	CheckOut     string   `mapstructure:"check_out"`
	Guests       int      `mapstructure:"guests"`
	MaxPrice     float64  `mapstructure:"max_price"`
	PropertyType string   `mapstructure:"property_type"`
	Amenities    []string `mapstructure:"amenities"`

	// Analysis
	BestValueCount int                 `mapstructure:"best_value_count"`
	NearbyLocales  map[string][]string `mapstructure:"nearby_locales"` // primary locale -> nearby tokens

	// Scraper
	MaxConcurrency    int    `mapstructure:"max_concurrency"`
	RateLimitDelay    int    `mapstructure:"rate_limit_delay_ms"` // milliseconds between requests to one site
	MaxRetries        int    `mapstructure:"max_retries"`
	ListingsPerSource int    `mapstructure:"listings_per_source"`
	DetailsPerSource  int    `mapstructure:"details_per_source"` // cheapest N listings get a detail-page visit
	Headless          bool   `mapstructure:"headless"`
	AirbnbURL         string `mapstructure:"airbnb_url"`
	BookingURL        string `mapstructure:"booking_url"`

	// Output
	CSVFilePath   string `mapstructure:"csv_file_path"`
	ScoredCSVPath string `mapstructure:"scored_csv_path"`
	JSONFilePath  string `mapstructure:"json_file_path"`

	// Infrastructure, empty disables
	DatabaseURL string `mapstructure:"database_url"`
	RedisAddr   string `mapstructure:"redis_addr"`
	HistorySize int    `mapstructure:"history_size"`
	MetricsAddr string `mapstructure:"metrics_addr"`

	// History browsing instead of a search
	History int    `mapstructure:"history"`  // list the N most recent runs
	ShowRun string `mapstructure:"show_run"` // print one saved run

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Flags returns the command-line flags understood by Load
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("stay-scout", pflag.ContinueOnError)
	fs.String("location", "", "destination, e.g. \"Bar, Montenegro\"")
	fs.String("check-in", "", "check-in date (YYYY-MM-DD)")
	fs.String("check-out", "", "check-out date (YYYY-MM-DD)")
	fs.Int("guests", 0, "number of guests")
	fs.Float64("max-price", 0, "maximum price per night")
	fs.String("property-type", "", "entire_place, private_room, shared_room, hotel_room or apartment")
	fs.StringSlice("amenities", nil, "desired amenities (comma separated)")
	fs.Int("best-value-count", 0, "how many listings the best-value cohort keeps")
	fs.Int("listings-per-source", 0, "maximum listings collected per source")
	fs.Int("details-per-source", 0, "detail pages visited per source")
	fs.Bool("headless", true, "run the browser headless")
	fs.String("log-level", "", "debug, info, warn or error")
	fs.Int("history", 0, "list the N most recent saved runs and exit (needs REDIS_ADDR)")
	fs.String("show-run", "", "print a saved run by id and exit (needs REDIS_ADDR)")
	return fs
}

// Load reads configuration from defaults, an optional config.yaml, .env,
// environment variables and finally the given flags (may be nil)
func Load(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.AutomaticEnv()

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			if !f.Changed {
				return
			}
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", bindErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("location", "Bar, Montenegro")
	v.SetDefault("check_in", "")
	v.SetDefault("check_out", "")
	v.SetDefault("guests", 2)
	v.SetDefault("max_price", 40.0)
	v.SetDefault("property_type", string(models.PropertyEntirePlace))
	v.SetDefault("amenities", models.DefaultAmenities)

	v.SetDefault("best_value_count", 5)
	v.SetDefault("nearby_locales", map[string][]string{
		"bar": {"sutomore", "petrovac"},
	})

	v.SetDefault("max_concurrency", 3)
	v.SetDefault("rate_limit_delay_ms", 2000)
	v.SetDefault("max_retries", 3)
	v.SetDefault("listings_per_source", 20)
	v.SetDefault("details_per_source", 5)
	v.SetDefault("headless", true)
	v.SetDefault("airbnb_url", "https://www.airbnb.com")
	v.SetDefault("booking_url", "https://www.booking.com")

	v.SetDefault("csv_file_path", "output/raw_listings.csv")
	v.SetDefault("scored_csv_path", "output/listings.csv")
	v.SetDefault("json_file_path", "output/analysis.json")

	v.SetDefault("database_url", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("history_size", 20)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("history", 0)
	v.SetDefault("show_run", "")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
}

func applyDefaults(cfg *Config) {
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 1
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	if cfg.BestValueCount < 1 {
		cfg.BestValueCount = 5
	}
	if cfg.HistorySize < 1 {
		cfg.HistorySize = 20
	}
	if cfg.History < 0 {
		cfg.History = 0
	}
}

// BrowsingHistory reports whether the run only reads saved history
func (c *Config) BrowsingHistory() bool {
	return c.History > 0 || c.ShowRun != ""
}

// Criteria builds validated search criteria. Missing dates default to a one-week
// stay starting 30 days after now.
func (c *Config) Criteria(now time.Time) (models.SearchCriteria, error) {
	checkIn, err := parseDate(c.CheckIn, now.AddDate(0, 0, 30))
	if err != nil {
		return models.SearchCriteria{}, fmt.Errorf("%w: check-in: %v", models.ErrInvalidCriteria, err)
	}
	checkOut, err := parseDate(c.CheckOut, checkIn.AddDate(0, 0, 7))
	if err != nil {
		return models.SearchCriteria{}, fmt.Errorf("%w: check-out: %v", models.ErrInvalidCriteria, err)
	}

	criteria := models.NewSearchCriteria(c.Location, checkIn, checkOut, c.Guests, c.MaxPrice)
	pt, err := models.ParsePropertyType(c.PropertyType)
	if err != nil {
		return models.SearchCriteria{}, err
	}
	criteria.PropertyType = pt
	if len(c.Amenities) > 0 {
		criteria.Amenities = append([]string(nil), c.Amenities...)
	}
	criteria.NearbyLocales = c.NearbyLocales[criteria.PrimaryLocale()]

	if err := criteria.Validate(); err != nil {
		return models.SearchCriteria{}, err
	}
	return criteria, nil
}

func parseDate(s string, fallback time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		y, m, d := fallback.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(dateLayout, s)
}
