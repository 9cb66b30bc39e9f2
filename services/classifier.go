package services

import (
	"sort"

	"stay-scout/models"
	"stay-scout/utils"
)

// Cohort thresholds relative to the nightly budget
const (
	BudgetFactor  = 0.8
	PremiumFactor = 1.2

	DefaultBestValueCount = 5
)

// Classifier ranks scored listings and splits them into cohorts
type Classifier struct {
	bestValueCount int
	logger         *utils.Logger
}

// NewClassifier creates a Classifier keeping the top bestValueCount listings as best value
func NewClassifier(bestValueCount int, logger *utils.Logger) *Classifier {
	if bestValueCount <= 0 {
		bestValueCount = DefaultBestValueCount
	}
	return &Classifier{bestValueCount: bestValueCount, logger: logger}
}

// Classify ranks listings and derives the best-value, budget and premium cohorts.
// Cohorts may overlap. Listings with an unknown price are never budget or premium.
func (c *Classifier) Classify(listings []*models.Listing, criteria models.SearchCriteria) models.Cohorts {
	ranked := RankListings(listings)

	n := c.bestValueCount
	if len(ranked) < n {
		n = len(ranked)
	}
	cohorts := models.Cohorts{
		Ranked:    ranked,
		BestValue: ranked[:n:n],
	}

	budgetLimit := criteria.MaxPricePerNight * BudgetFactor
	premiumLimit := criteria.MaxPricePerNight * PremiumFactor
	for _, l := range ranked {
		if !l.HasPrice() {
			continue
		}
		if l.PricePerNight <= budgetLimit {
			cohorts.Budget = append(cohorts.Budget, l)
		}
		if l.PricePerNight >= premiumLimit {
			cohorts.Premium = append(cohorts.Premium, l)
		}
	}

	c.logger.Debug("Classified %d listings: %d best value, %d budget, %d premium",
		len(ranked), len(cohorts.BestValue), len(cohorts.Budget), len(cohorts.Premium))
	return cohorts
}

// RankListings sorts a copy of listings by overall score descending, then known price
// ascending, then source and URL, so equal inputs always rank the same way.
// A zero price means unknown, not free, so it sorts after every known price on a score tie.
func RankListings(listings []*models.Listing) []*models.Listing {
	ranked := make([]*models.Listing, len(listings))
	copy(ranked, listings)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		sa, sb := scoreOf(a.OverallScore), scoreOf(b.OverallScore)
		if sa != sb {
			return sa > sb
		}
		if a.HasPrice() != b.HasPrice() {
			return a.HasPrice()
		}
		if a.PricePerNight != b.PricePerNight {
			return a.PricePerNight < b.PricePerNight
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.URL < b.URL
	})
	return ranked
}

// scoreOf puts unscored listings behind every scored one
func scoreOf(s *float64) float64 {
	if s == nil {
		return -1
	}
	return *s
}
