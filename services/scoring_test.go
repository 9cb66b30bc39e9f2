package services

import (
	"testing"
	"time"

	"stay-scout/models"
	"stay-scout/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCriteria() models.SearchCriteria {
	c := models.NewSearchCriteria("Bar, Montenegro",
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC), 2, 40)
	c.NearbyLocales = []string{"sutomore", "petrovac"}
	return c
}

// workedExample returns the cheaper partial-amenity listing and the pricier full-amenity one
func workedExample() (*models.Listing, *models.Listing) {
	l1 := &models.Listing{
		Source:        models.SourceAirbnb,
		Title:         "L1",
		PricePerNight: 35,
		Location:      "Bar, Montenegro",
		Amenities:     []string{"kitchen", "wifi"},
		Rating:        models.Float(4.5),
		URL:           "https://airbnb.com/rooms/1",
	}
	l2 := &models.Listing{
		Source:        models.SourceAirbnb,
		Title:         "L2",
		PricePerNight: 50,
		Location:      "Bar, Montenegro",
		Amenities:     []string{"kitchen", "wifi", "air_conditioning"},
		Rating:        models.Float(4.0),
		URL:           "https://airbnb.com/rooms/2",
	}
	return l1, l2
}

func TestValueScoreWorkedExample(t *testing.T) {
	c := testCriteria()
	l1, l2 := workedExample()

	assert.InDelta(t, 43.0, ValueScore(l1, c), 0.01)
	assert.InDelta(t, 46.0, ValueScore(l2, c), 0.01)
}

func TestValueScoreComponents(t *testing.T) {
	c := testCriteria()

	t.Run("unknown price scores as full price value", func(t *testing.T) {
		assert.Equal(t, 40.0, ValueScore(&models.Listing{}, c))
	})

	t.Run("price above budget clamps to zero", func(t *testing.T) {
		assert.Equal(t, 0.0, ValueScore(&models.Listing{PricePerNight: 100}, c))
	})

	t.Run("host rating adds up to ten points", func(t *testing.T) {
		l := &models.Listing{PricePerNight: 40, HostRating: models.Float(5)}
		assert.InDelta(t, 10.0, ValueScore(l, c), 1e-9)
	})

	t.Run("amenity aliases match", func(t *testing.T) {
		l := &models.Listing{PricePerNight: 40, Amenities: []string{"Kitchenette", "Free WiFi", "A/C"}}
		assert.InDelta(t, 30.0, ValueScore(l, c), 1e-9)
	})

	t.Run("no requested amenities", func(t *testing.T) {
		noAmenities := c
		noAmenities.Amenities = nil
		l := &models.Listing{PricePerNight: 40, Amenities: []string{"wifi"}}
		assert.Equal(t, 0.0, ValueScore(l, noAmenities))
	})

	t.Run("zero budget", func(t *testing.T) {
		free := c
		free.MaxPricePerNight = 0
		free.Amenities = nil
		assert.Equal(t, 40.0, ValueScore(&models.Listing{}, free))
		assert.Equal(t, 0.0, ValueScore(&models.Listing{PricePerNight: 10}, free))
	})
}

func TestValueScoreIsMonotonicInPrice(t *testing.T) {
	c := testCriteria()
	prev := ValueScore(&models.Listing{PricePerNight: 1}, c)
	for price := 2.0; price <= 60; price++ {
		cur := ValueScore(&models.Listing{PricePerNight: price}, c)
		assert.LessOrEqual(t, cur, prev, "price %.0f", price)
		prev = cur
	}
}

func TestLocationScore(t *testing.T) {
	c := testCriteria()
	tests := []struct {
		location string
		want     float64
	}{
		{"Bar, Montenegro", LocationScorePrimary},
		{"Stari Bar", LocationScorePrimary},
		{"Sutomore, Montenegro", LocationScoreNearby},
		{"PETROVAC", LocationScoreNearby},
		{"Kotor", LocationScoreOther},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, LocationScore(&models.Listing{Location: tt.location}, c))
		})
	}
}

func TestScorerScoreAll(t *testing.T) {
	c := testCriteria()
	l1, l2 := workedExample()
	input := []*models.Listing{l1, l2}

	scored := NewScorer(4, utils.NewTestLogger(t)).ScoreAll(input, c)
	require.Len(t, scored, 2)
	assert.Equal(t, "L1", scored[0].Title)
	assert.Equal(t, "L2", scored[1].Title)

	for _, l := range scored {
		require.NotNil(t, l.ValueScore)
		require.NotNil(t, l.LocationScore)
		require.NotNil(t, l.OverallScore)
		assert.Equal(t, LocationScorePrimary, *l.LocationScore)
		assert.InDelta(t, (*l.ValueScore+*l.LocationScore)/2, *l.OverallScore, 1e-9)
	}
	assert.Nil(t, l1.ValueScore, "input listings must not be modified")
}

func TestScorerIsDeterministic(t *testing.T) {
	c := testCriteria()
	l1, l2 := workedExample()
	s := NewScorer(0, utils.NewNopLogger())
	assert.Equal(t, s.ScoreAll([]*models.Listing{l1, l2}, c), s.ScoreAll([]*models.Listing{l1, l2}, c))
}
