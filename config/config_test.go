package config

import (
	"testing"
	"time"

	"stay-scout/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "Bar, Montenegro", cfg.Location)
	assert.Equal(t, 2, cfg.Guests)
	assert.Equal(t, 40.0, cfg.MaxPrice)
	assert.Equal(t, models.DefaultAmenities, cfg.Amenities)
	assert.Equal(t, 5, cfg.BestValueCount)
	assert.Equal(t, []string{"sutomore", "petrovac"}, cfg.NearbyLocales["bar"])
	assert.Equal(t, 2000, cfg.RateLimitDelay)
	assert.Equal(t, "https://www.airbnb.com", cfg.AirbnbURL)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvironmentAndFlags(t *testing.T) {
	t.Setenv("LOCATION", "Kotor, Montenegro")
	t.Setenv("MAX_RETRIES", "5")
	t.Setenv("RATE_LIMIT_DELAY_MS", "500")
	t.Setenv("GUESTS", "3")

	flags := Flags()
	require.NoError(t, flags.Parse([]string{"--guests=4", "--amenities=pool,wifi", "--max-price=55.5"}))

	cfg, err := Load(flags)
	require.NoError(t, err)

	assert.Equal(t, "Kotor, Montenegro", cfg.Location)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 500, cfg.RateLimitDelay)
	assert.Equal(t, 4, cfg.Guests, "flags override the environment")
	assert.Equal(t, []string{"pool", "wifi"}, cfg.Amenities)
	assert.Equal(t, 55.5, cfg.MaxPrice)
}

func TestLoadClampsInvalidValues(t *testing.T) {
	t.Setenv("MAX_CONCURRENCY", "0")
	t.Setenv("BEST_VALUE_COUNT", "-2")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.MaxConcurrency)
	assert.Equal(t, 5, cfg.BestValueCount)
}

func TestCriteria(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)

	t.Run("default dates", func(t *testing.T) {
		cfg := &Config{Location: "Bar, Montenegro", Guests: 2, MaxPrice: 40,
			NearbyLocales: map[string][]string{"bar": {"sutomore"}}}
		c, err := cfg.Criteria(now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), c.CheckIn)
		assert.Equal(t, time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC), c.CheckOut)
		assert.Equal(t, models.PropertyEntirePlace, c.PropertyType)
		assert.Equal(t, models.DefaultAmenities, c.Amenities)
		assert.Equal(t, []string{"sutomore"}, c.NearbyLocales)
	})

	t.Run("explicit values", func(t *testing.T) {
		cfg := &Config{Location: "Kotor", CheckIn: "2025-08-10", CheckOut: "2025-08-12", Guests: 1,
			MaxPrice: 60, PropertyType: "private room", Amenities: []string{"pool"}}
		c, err := cfg.Criteria(now)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Nights())
		assert.Equal(t, models.PropertyPrivateRoom, c.PropertyType)
		assert.Equal(t, []string{"pool"}, c.Amenities)
		assert.Empty(t, c.NearbyLocales)
	})

	t.Run("invalid", func(t *testing.T) {
		tests := map[string]*Config{
			"bad date":       {Location: "Bar", CheckIn: "01/07/2025", Guests: 2},
			"reversed dates": {Location: "Bar", CheckIn: "2025-08-10", CheckOut: "2025-08-01", Guests: 2},
			"no guests":      {Location: "Bar"},
			"bad type":       {Location: "Bar", Guests: 2, PropertyType: "castle"},
		}
		for name, cfg := range tests {
			_, err := cfg.Criteria(now)
			assert.ErrorIs(t, err, models.ErrInvalidCriteria, name)
		}
	})
}

func TestLoadHistoryFlags(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.False(t, cfg.BrowsingHistory())

	flags := Flags()
	require.NoError(t, flags.Parse([]string{"--history=3"}))
	cfg, err = Load(flags)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.History)
	assert.True(t, cfg.BrowsingHistory())

	flags = Flags()
	require.NoError(t, flags.Parse([]string{"--show-run=0b9c"}))
	cfg, err = Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "0b9c", cfg.ShowRun)
	assert.True(t, cfg.BrowsingHistory())
}
