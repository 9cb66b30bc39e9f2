package storage

import (
	"time"

	"stay-scout/models"
)

// CriteriaDocument is the serialized form of search criteria
type CriteriaDocument struct {
	Location         string   `json:"location"`
	CheckIn          string   `json:"check_in"`
	CheckOut         string   `json:"check_out"`
	Guests           int      `json:"guests"`
	MaxPricePerNight float64  `json:"max_price_per_night"`
	PropertyType     string   `json:"property_type"`
	Amenities        []string `json:"amenities"`
}

// ListingDocument is the serialized form of a canonical listing
type ListingDocument struct {
	Source             string   `json:"source"`
	Title              string   `json:"title"`
	PricePerNight      float64  `json:"price_per_night"`
	TotalPrice         float64  `json:"total_price"`
	Location           string   `json:"location"`
	Rating             *float64 `json:"rating"`
	ReviewCount        *int     `json:"review_count"`
	Amenities          []string `json:"amenities"`
	URL                string   `json:"url"`
	PropertyType       string   `json:"property_type"`
	Description        string   `json:"description,omitempty"`
	Bedrooms           *int     `json:"bedrooms,omitempty"`
	Bathrooms          *int     `json:"bathrooms,omitempty"`
	MaxGuests          *int     `json:"max_guests,omitempty"`
	CleaningFee        *float64 `json:"cleaning_fee,omitempty"`
	ServiceFee         *float64 `json:"service_fee,omitempty"`
	Taxes              *float64 `json:"taxes,omitempty"`
	HostName           string   `json:"host_name,omitempty"`
	HostRating         *float64 `json:"host_rating,omitempty"`
	PropertyFeatures   []string `json:"property_features,omitempty"`
	HouseRules         []string `json:"house_rules,omitempty"`
	InstantBook        bool     `json:"instant_book"`
	CancellationPolicy string   `json:"cancellation_policy,omitempty"`
	ValueScore         *float64 `json:"value_score"`
	LocationScore      *float64 `json:"location_score"`
	OverallScore       *float64 `json:"overall_score"`
}

// InsightsDocument is the serialized form of market insights
type InsightsDocument struct {
	PriceDistribution  *models.PriceDistribution `json:"price_distribution,omitempty"`
	PlatformComparison []models.SourceStats      `json:"platform_comparison,omitempty"`
	PopularAmenities   []models.AmenityCount     `json:"popular_amenities,omitempty"`
}

// AnalysisDocument is the serialized form of a search analysis
type AnalysisDocument struct {
	TotalProperties int               `json:"total_properties"`
	AveragePrice    float64           `json:"average_price"`
	PriceRange      [2]float64        `json:"price_range"`
	Recommendations []string          `json:"recommendations"`
	MarketInsights  InsightsDocument  `json:"market_insights"`
	BestValue       []ListingDocument `json:"best_value_properties"`
	Budget          []ListingDocument `json:"budget_options"`
	Premium         []ListingDocument `json:"premium_options"`
}

// HistoryEntry is one stored search run
type HistoryEntry struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Criteria  CriteriaDocument `json:"criteria"`
	Analysis  AnalysisDocument `json:"analysis"`
}

// NewCriteriaDocument converts criteria for serialization
func NewCriteriaDocument(c models.SearchCriteria) CriteriaDocument {
	return CriteriaDocument{
		Location:         c.Location,
		CheckIn:          c.CheckIn.Format("2006-01-02"),
		CheckOut:         c.CheckOut.Format("2006-01-02"),
		Guests:           c.Guests,
		MaxPricePerNight: c.MaxPricePerNight,
		PropertyType:     string(c.PropertyType),
		Amenities:        c.Amenities,
	}
}

// NewListingDocument converts a listing for serialization
func NewListingDocument(l *models.Listing) ListingDocument {
	return ListingDocument{
		Source:             l.Source,
		Title:              l.Title,
		PricePerNight:      l.PricePerNight,
		TotalPrice:         l.TotalPrice,
		Location:           l.Location,
		Rating:             l.Rating,
		ReviewCount:        l.ReviewCount,
		Amenities:          l.Amenities,
		URL:                l.URL,
		PropertyType:       string(l.PropertyType),
		Description:        l.Description,
		Bedrooms:           l.Bedrooms,
		Bathrooms:          l.Bathrooms,
		MaxGuests:          l.MaxGuests,
		CleaningFee:        l.CleaningFee,
		ServiceFee:         l.ServiceFee,
		Taxes:              l.Taxes,
		HostName:           l.HostName,
		HostRating:         l.HostRating,
		PropertyFeatures:   l.PropertyFeatures,
		HouseRules:         l.HouseRules,
		InstantBook:        l.InstantBook,
		CancellationPolicy: l.CancellationPolicy,
		ValueScore:         l.ValueScore,
		LocationScore:      l.LocationScore,
		OverallScore:       l.OverallScore,
	}
}

// NewAnalysisDocument converts an analysis for serialization
func NewAnalysisDocument(a *models.SearchAnalysis) AnalysisDocument {
	return AnalysisDocument{
		TotalProperties: a.TotalCount,
		AveragePrice:    a.AveragePrice,
		PriceRange:      [2]float64{a.PriceRange.Min, a.PriceRange.Max},
		Recommendations: a.Recommendations,
		MarketInsights: InsightsDocument{
			PriceDistribution:  a.Insights.PriceDistribution,
			PlatformComparison: a.Insights.SourceComparison,
			PopularAmenities:   a.Insights.PopularAmenities,
		},
		BestValue: listingDocuments(a.BestValue),
		Budget:    listingDocuments(a.Budget),
		Premium:   listingDocuments(a.Premium),
	}
}

func listingDocuments(listings []*models.Listing) []ListingDocument {
	docs := make([]ListingDocument, 0, len(listings))
	for _, l := range listings {
		docs = append(docs, NewListingDocument(l))
	}
	return docs
}
