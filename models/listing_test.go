package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingStayCost(t *testing.T) {
	l := &Listing{PricePerNight: 30, CleaningFee: Float(25), Taxes: Float(5)}
	assert.Equal(t, 30.0, l.PerStayFees())
	assert.Equal(t, 240.0, l.StayCost(7))
	assert.Equal(t, 60.0, l.StayCost(0))
	assert.True(t, l.HasPrice())
	assert.False(t, (&Listing{}).HasPrice())
}

func TestListingCloneIsDeep(t *testing.T) {
	orig := &Listing{
		Title:      "Sea view studio",
		Rating:     Float(4.5),
		Amenities:  []string{"wifi"},
		ValueScore: Float(50),
	}
	c := orig.Clone()
	*c.Rating = 1
	c.Amenities[0] = "pool"
	*c.ValueScore = 0

	assert.Equal(t, 4.5, *orig.Rating)
	assert.Equal(t, []string{"wifi"}, orig.Amenities)
	assert.Equal(t, 50.0, *orig.ValueScore)

	var nilListing *Listing
	assert.Nil(t, nilListing.Clone())
}

func TestMarketInsightsIsEmpty(t *testing.T) {
	assert.True(t, MarketInsights{}.IsEmpty())
	assert.False(t, MarketInsights{PopularAmenities: []AmenityCount{{Amenity: "wifi", Count: 1}}}.IsEmpty())
}
