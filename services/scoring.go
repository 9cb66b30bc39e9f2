package services

import (
	"math"
	"strings"

	"stay-scout/models"
	"stay-scout/utils"

	"golang.org/x/sync/errgroup"
)

// Value score weights. Missing rating or host rating contribute nothing and the
// remaining weights are not renormalized.
const (
	priceWeight      = 0.4
	amenityWeight    = 0.3
	ratingWeight     = 0.2
	hostRatingWeight = 0.1
)

// Location scores
const (
	LocationScorePrimary = 80.0
	LocationScoreNearby  = 60.0
	LocationScoreOther   = 40.0
)

// ValueScore rates price, amenity match, rating and host rating on a 0-100 scale.
// An unknown price (0) gets the full price sub-score.
func ValueScore(l *models.Listing, c models.SearchCriteria) float64 {
	score := priceSubScore(l.PricePerNight, c.MaxPricePerNight) * priceWeight
	score += amenitySubScore(l.Amenities, c.Amenities) * amenityWeight
	if l.Rating != nil {
		score += (*l.Rating / 5.0) * 100 * ratingWeight
	}
	if l.HostRating != nil {
		score += (*l.HostRating / 5.0) * 100 * hostRatingWeight
	}
	return score
}

func priceSubScore(price, maxPrice float64) float64 {
	if maxPrice <= 0 {
		if price == 0 {
			return 100
		}
		return 0
	}
	return math.Max(0, 100-(price/maxPrice)*100)
}

func amenitySubScore(have, want []string) float64 {
	wanted := CanonicalAmenities(want)
	if len(wanted) == 0 {
		return 0
	}
	offered := make(map[string]struct{}, len(have))
	for _, a := range have {
		offered[CanonicalAmenity(a)] = struct{}{}
	}
	matched := 0
	for _, a := range wanted {
		if _, ok := offered[a]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(wanted)) * 100
}

// LocationScore is a coarse containment lookup: the primary locale scores 80,
// a nearby locale 60, anything else 40.
func LocationScore(l *models.Listing, c models.SearchCriteria) float64 {
	loc := strings.ToLower(l.Location)
	if primary := c.PrimaryLocale(); primary != "" && strings.Contains(loc, primary) {
		return LocationScorePrimary
	}
	for _, nearby := range c.NearbyLocales {
		token := strings.ToLower(strings.TrimSpace(nearby))
		if token != "" && strings.Contains(loc, token) {
			return LocationScoreNearby
		}
	}
	return LocationScoreOther
}

// OverallScore averages value and location scores
func OverallScore(value, location float64) float64 {
	return (value + location) / 2
}

// Scorer attaches value, location and overall scores to listings
type Scorer struct {
	workers int
	logger  *utils.Logger
}

// NewScorer creates a Scorer scoring up to workers listings in parallel
func NewScorer(workers int, logger *utils.Logger) *Scorer {
	if workers < 1 {
		workers = 1
	}
	return &Scorer{workers: workers, logger: logger}
}

// Score returns a scored copy of l
func (s *Scorer) Score(l *models.Listing, c models.SearchCriteria) *models.Listing {
	out := l.Clone()
	value := ValueScore(out, c)
	location := LocationScore(out, c)
	overall := OverallScore(value, location)
	out.ValueScore = &value
	out.LocationScore = &location
	out.OverallScore = &overall
	return out
}

// ScoreAll returns scored copies of listings in the same order.
// Each worker reads only its own listing and the shared criteria.
func (s *Scorer) ScoreAll(listings []*models.Listing, c models.SearchCriteria) []*models.Listing {
	scored := make([]*models.Listing, len(listings))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, l := range listings {
		g.Go(func() error {
			scored[i] = s.Score(l, c)
			return nil
		})
	}
	_ = g.Wait()
	s.logger.Debug("Scored %d listings", len(scored))
	return scored
}
