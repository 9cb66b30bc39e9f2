package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestParsePropertyType(t *testing.T) {
	tests := []struct {
		in   string
		want PropertyType
	}{
		{"", PropertyEntirePlace},
		{"Entire place", PropertyEntirePlace},
		{"hotel-room", PropertyHotelRoom},
		{" private_room ", PropertyPrivateRoom},
		{"APARTMENT", PropertyApartment},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePropertyType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParsePropertyType("castle")
	assert.ErrorIs(t, err, ErrInvalidCriteria)
}

func TestSearchCriteriaValidate(t *testing.T) {
	valid := NewSearchCriteria("Bar, Montenegro", date("2025-07-01"), date("2025-07-08"), 2, 40)
	require.NoError(t, valid.Validate())
	assert.Equal(t, DefaultAmenities, valid.Amenities)
	assert.Equal(t, PropertyEntirePlace, valid.PropertyType)

	tests := []struct {
		name   string
		mutate func(c *SearchCriteria)
	}{
		{"missing location", func(c *SearchCriteria) { c.Location = "" }},
		{"check-out before check-in", func(c *SearchCriteria) { c.CheckOut = c.CheckIn.AddDate(0, 0, -1) }},
		{"same-day check-out", func(c *SearchCriteria) { c.CheckOut = c.CheckIn }},
		{"no guests", func(c *SearchCriteria) { c.Guests = 0 }},
		{"negative budget", func(c *SearchCriteria) { c.MaxPricePerNight = -1 }},
		{"unknown property type", func(c *SearchCriteria) { c.PropertyType = "castle" }},
		{"zero check-in", func(c *SearchCriteria) { c.CheckIn = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidCriteria)
		})
	}
}

func TestSearchCriteriaHelpers(t *testing.T) {
	c := NewSearchCriteria("Bar, Montenegro", date("2025-07-01"), date("2025-07-08"), 2, 40)
	assert.Equal(t, 7, c.Nights())
	assert.Equal(t, "bar", c.PrimaryLocale())
	assert.Equal(t, "Bar", c.PrimaryLocaleName())

	c.CheckOut = c.CheckIn
	assert.Equal(t, 1, c.Nights())

	c.Location = "Kotor"
	assert.Equal(t, "kotor", c.PrimaryLocale())
}

func TestNewSearchCriteriaCopiesDefaultAmenities(t *testing.T) {
	c := NewSearchCriteria("Bar", date("2025-07-01"), date("2025-07-08"), 2, 40)
	c.Amenities[0] = "pool"
	assert.Equal(t, "kitchen", DefaultAmenities[0])
}
