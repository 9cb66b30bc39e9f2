package services

import (
	"math"
	"sort"

	"stay-scout/models"
	"stay-scout/utils"
)

// TopAmenityCount is how many amenities the popularity ranking keeps
const TopAmenityCount = 10

// InsightService computes market statistics over a listing set
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates a new InsightService
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes price distribution, per-source comparison and amenity popularity.
// Listings with an unknown price are left out of the price statistics.
func (s *InsightService) Generate(listings []*models.Listing) models.MarketInsights {
	var insights models.MarketInsights
	if len(listings) == 0 {
		s.logger.Warn("No listings to generate insights from")
		return insights
	}

	insights.PriceDistribution = priceDistribution(knownPrices(listings))
	insights.SourceComparison = sourceComparison(listings)
	insights.PopularAmenities = popularAmenities(listings, TopAmenityCount)
	return insights
}

func knownPrices(listings []*models.Listing) []float64 {
	prices := make([]float64, 0, len(listings))
	for _, l := range listings {
		if l.HasPrice() {
			prices = append(prices, l.PricePerNight)
		}
	}
	return prices
}

// priceSummary returns the mean and (min, max) of known prices, zero when none are known
func priceSummary(listings []*models.Listing) (float64, models.PriceRange) {
	prices := knownPrices(listings)
	if len(prices) == 0 {
		return 0, models.PriceRange{}
	}
	rng := models.PriceRange{Min: prices[0], Max: prices[0]}
	var total float64
	for _, p := range prices {
		total += p
		rng.Min = math.Min(rng.Min, p)
		rng.Max = math.Max(rng.Max, p)
	}
	return total / float64(len(prices)), rng
}

func priceDistribution(prices []float64) *models.PriceDistribution {
	if len(prices) == 0 {
		return nil
	}
	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)

	n := len(sorted)
	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	var sum float64
	for _, p := range sorted {
		sum += p
	}
	mean := sum / float64(n)
	var variance float64
	for _, p := range sorted {
		variance += (p - mean) * (p - mean)
	}

	return &models.PriceDistribution{
		Min:    sorted[0],
		Max:    sorted[n-1],
		Median: median,
		StdDev: math.Sqrt(variance / float64(n)),
	}
}

func sourceComparison(listings []*models.Listing) []models.SourceStats {
	index := make(map[string]int)
	var stats []models.SourceStats
	totals := make([]float64, 0)

	for _, l := range listings {
		i, ok := index[l.Source]
		if !ok {
			i = len(stats)
			index[l.Source] = i
			stats = append(stats, models.SourceStats{Source: l.Source})
			totals = append(totals, 0)
		}
		stats[i].Count++
		if l.HasPrice() {
			stats[i].PricedCount++
			totals[i] += l.PricePerNight
		}
	}
	for i := range stats {
		if stats[i].PricedCount > 0 {
			stats[i].AvgPrice = totals[i] / float64(stats[i].PricedCount)
		}
	}
	return stats
}

// popularAmenities counts each amenity once per listing and keeps the top n,
// ties in first-seen order
func popularAmenities(listings []*models.Listing, n int) []models.AmenityCount {
	index := make(map[string]int)
	var counts []models.AmenityCount
	for _, l := range listings {
		for _, a := range CanonicalAmenities(l.Amenities) {
			i, ok := index[a]
			if !ok {
				i = len(counts)
				index[a] = i
				counts = append(counts, models.AmenityCount{Amenity: a})
			}
			counts[i].Count++
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
