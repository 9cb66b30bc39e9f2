package services

import (
	"fmt"

	"stay-scout/models"
)

const maxAlternatives = 3

var bookingTips = []string{
	"   • Book at least 2-3 months in advance for best availability",
	"   • Contact hosts directly for longer stay discounts",
	"   • Check cancellation policies before booking",
	"   • Consider travel insurance for peace of mind",
}

// BookingAdvice picks the best-ranked listing within budget and lists a few alternatives
func BookingAdvice(analysis *models.SearchAnalysis, criteria models.SearchCriteria) []string {
	var within []*models.Listing
	if analysis != nil {
		for _, l := range analysis.BestValue {
			if l.HasPrice() && l.PricePerNight <= criteria.MaxPricePerNight {
				within = append(within, l)
			}
		}
	}

	var advice []string
	if len(within) > 0 {
		top := within[0]
		nights := criteria.Nights()
		advice = append(advice,
			fmt.Sprintf("TOP RECOMMENDATION: %s", top.Title),
			fmt.Sprintf("   Price: $%.2f/night ($%.2f for %d nights)", top.PricePerNight, top.StayCost(nights), nights),
			fmt.Sprintf("   Location: %s", top.Location),
		)
		if top.Rating != nil {
			advice = append(advice, fmt.Sprintf("   Rating: %.2f/5", *top.Rating))
		} else {
			advice = append(advice, "   Rating: N/A")
		}
		advice = append(advice, fmt.Sprintf("   Book here: %s", top.URL))
		if top.InstantBook {
			advice = append(advice, "   Instant booking available!")
		} else {
			advice = append(advice, "   Contact host required")
		}
	}

	if len(within) > 1 {
		advice = append(advice, "ALTERNATIVE OPTIONS:")
		for i, l := range within[1:] {
			if i == maxAlternatives {
				break
			}
			advice = append(advice, fmt.Sprintf("   %d. %s - $%.2f/night", i+1, l.Title, l.PricePerNight))
		}
	}

	advice = append(advice, "BOOKING TIPS:")
	return append(advice, bookingTips...)
}
