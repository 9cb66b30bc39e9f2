package services

import (
	"fmt"
	"strings"

	"stay-scout/models"
	"stay-scout/utils"
)

// Recommendation templates, emitted in this order
const (
	msgNoResults        = "No properties found matching your criteria. Consider expanding your search area or adjusting your budget."
	msgOverBudget       = "Average price ($%.0f) is above your budget. Consider traveling in shoulder season or expanding your search area."
	msgBestValue        = "Best value option: %s at $%.2f/night"
	msgBestValueNoPrice = "Best value option: %s (price on request)"
	msgLocalMatches     = "Found %d properties in %s area - ideal for your location preference"
	msgInstantBook      = "%d properties offer instant booking for immediate confirmation"
)

// Recommender turns aggregates into human-readable guidance
type Recommender struct {
	logger *utils.Logger
}

// NewRecommender creates a new Recommender
func NewRecommender(logger *utils.Logger) *Recommender {
	return &Recommender{logger: logger}
}

// Generate derives recommendations from scored listings and their average known price
func (r *Recommender) Generate(listings []*models.Listing, averagePrice float64, criteria models.SearchCriteria) []string {
	if len(listings) == 0 {
		return []string{msgNoResults}
	}

	var recs []string
	if averagePrice > criteria.MaxPricePerNight {
		recs = append(recs, fmt.Sprintf(msgOverBudget, averagePrice))
	}

	if best := bestValueListing(listings); best != nil {
		if best.HasPrice() {
			recs = append(recs, fmt.Sprintf(msgBestValue, best.Title, best.PricePerNight))
		} else {
			recs = append(recs, fmt.Sprintf(msgBestValueNoPrice, best.Title))
		}
	}

	if locale := criteria.PrimaryLocale(); locale != "" {
		local := 0
		for _, l := range listings {
			if strings.Contains(strings.ToLower(l.Location), locale) {
				local++
			}
		}
		if local > 0 {
			recs = append(recs, fmt.Sprintf(msgLocalMatches, local, criteria.PrimaryLocaleName()))
		}
	}

	instant := 0
	for _, l := range listings {
		if l.InstantBook {
			instant++
		}
	}
	if instant > 0 {
		recs = append(recs, fmt.Sprintf(msgInstantBook, instant))
	}

	r.logger.Debug("Generated %d recommendations", len(recs))
	return recs
}

// bestValueListing is the listing with the highest value score; the first one wins ties
func bestValueListing(listings []*models.Listing) *models.Listing {
	var best *models.Listing
	for _, l := range listings {
		if best == nil || scoreOf(l.ValueScore) > scoreOf(best.ValueScore) {
			best = l
		}
	}
	return best
}
