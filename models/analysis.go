package models

// PriceRange is the (min, max) nightly price over listings with a known price
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PriceDistribution summarizes known nightly prices
type PriceDistribution struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// SourceStats compares listing sources
type SourceStats struct {
	Source      string  `json:"source"`
	Count       int     `json:"count"`
	PricedCount int     `json:"priced_count"`
	AvgPrice    float64 `json:"avg_price"`
}

// AmenityCount is how many listings offer an amenity
type AmenityCount struct {
	Amenity string `json:"amenity"`
	Count   int    `json:"count"`
}

// MarketInsights holds cross-listing statistics. The zero value is the empty insight set.
type MarketInsights struct {
	PriceDistribution *PriceDistribution
	SourceComparison  []SourceStats // ordered by first appearance of the source
	PopularAmenities  []AmenityCount
}

// IsEmpty reports whether no statistic could be computed
func (m MarketInsights) IsEmpty() bool {
	return m.PriceDistribution == nil && len(m.SourceComparison) == 0 && len(m.PopularAmenities) == 0
}

// Cohorts are independent, possibly overlapping views over a scored listing set
type Cohorts struct {
	Ranked    []*Listing // every listing, best first
	BestValue []*Listing
	Budget    []*Listing
	Premium   []*Listing
}

// SearchAnalysis is the write-once result of analysing one search run
type SearchAnalysis struct {
	TotalCount      int
	AveragePrice    float64
	PriceRange      PriceRange
	BestValue       []*Listing
	Budget          []*Listing
	Premium         []*Listing
	Recommendations []string
	Insights        MarketInsights

	Listings []*Listing // every scored listing, best first
}
