package services

import (
	"testing"

	"stay-scout/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingAdvice(t *testing.T) {
	top := scoredListing("Beach studio", 35, 70)
	top.Location = "Bar, Montenegro"
	top.Rating = models.Float(4.5)
	top.CleaningFee = models.Float(20)
	top.InstantBook = true
	over := scoredListing("Villa", 90, 65)
	alt1 := scoredListing("Room one", 30, 60)
	alt2 := scoredListing("Room two", 25, 55)
	alt3 := scoredListing("Room three", 20, 50)
	alt4 := scoredListing("Room four", 15, 45)

	analysis := &models.SearchAnalysis{BestValue: []*models.Listing{top, over, alt1, alt2, alt3, alt4}}
	advice := BookingAdvice(analysis, testCriteria())

	require.GreaterOrEqual(t, len(advice), 11)
	assert.Equal(t, []string{
		"TOP RECOMMENDATION: Beach studio",
		"   Price: $35.00/night ($265.00 for 7 nights)",
		"   Location: Bar, Montenegro",
		"   Rating: 4.50/5",
		"   Book here: https://airbnb.com/rooms/Beach studio",
		"   Instant booking available!",
		"ALTERNATIVE OPTIONS:",
		"   1. Room one - $30.00/night",
		"   2. Room two - $25.00/night",
		"   3. Room three - $20.00/night",
		"BOOKING TIPS:",
	}, advice[:11])
	assert.Equal(t, bookingTips, advice[11:])
}

func TestBookingAdviceNothingWithinBudget(t *testing.T) {
	analysis := &models.SearchAnalysis{BestValue: []*models.Listing{
		scoredListing("Villa", 90, 65),
		scoredListing("Unknown price", 0, 60),
	}}
	advice := BookingAdvice(analysis, testCriteria())
	assert.Equal(t, append([]string{"BOOKING TIPS:"}, bookingTips...), advice)

	assert.Equal(t, append([]string{"BOOKING TIPS:"}, bookingTips...), BookingAdvice(nil, testCriteria()))
}
