package models

import "time"

// Source identifiers for the supported listing sites
const (
	SourceAirbnb  = "Airbnb"
	SourceBooking = "Booking.com"
)

// RawListing is the attribute bag a source scraper produces for one discovered property.
// Every field is optional; the normalizer decides whether the bag is complete.
type RawListing struct {
	Source       string
	Title        string
	RawPrice     string // e.g. "€1,234 per night"
	Location     string
	RawRating    string  // e.g. "4.82 (120)" or "Scored 8.7"
	RatingScale  float64 // max of the source's rating scale, 0 means 5
	URL          string
	PropertyType PropertyType
	ScrapedAt    time.Time

	// Details may already be known at search time; usually they arrive later via ExtendedAttributes.
	Details *ExtendedAttributes
}

// ExtendedAttributes holds the detail-page fields fetched after the search results.
// Nil pointers, empty strings and empty slices mean "not present".
type ExtendedAttributes struct {
	Description  string
	Bedrooms     *int
	Bathrooms    *int
	MaxGuests    *int
	SquareMeters *float64

	CleaningFee     *float64
	ServiceFee      *float64
	Taxes           *float64
	SecurityDeposit *float64
	WeeklyDiscount  *float64
	MonthlyDiscount *float64

	MinimumStay *int
	MaximumStay *int

	Rating      *float64
	ReviewCount *int

	HostName         string
	HostRating       *float64
	HostResponseTime string
	HostResponseRate *float64

	Amenities          []string
	PropertyFeatures   []string
	HouseRules         []string
	InstantBook        *bool
	CancellationPolicy string
}

// Listing is the canonical, source-agnostic property record. URL is its identity.
// PricePerNight of 0 means the price is unknown, never that the stay is free.
type Listing struct {
	Source        string
	Title         string
	PricePerNight float64
	TotalPrice    float64
	Location      string
	Rating        *float64
	ReviewCount   *int
	Amenities     []string
	URL           string
	PropertyType  PropertyType
	Description   string

	Bedrooms     *int
	Bathrooms    *int
	MaxGuests    *int
	SquareMeters *float64

	CleaningFee     *float64
	ServiceFee      *float64
	Taxes           *float64
	SecurityDeposit *float64
	WeeklyDiscount  *float64
	MonthlyDiscount *float64
	MinimumStay     *int
	MaximumStay     *int

	HostName           string
	HostRating         *float64
	HostResponseTime   string
	HostResponseRate   *float64
	PropertyFeatures   []string
	HouseRules         []string
	InstantBook        bool
	CancellationPolicy string

	ValueScore    *float64
	LocationScore *float64
	OverallScore  *float64

	ScrapedAt time.Time
}

// HasPrice reports whether the nightly price is known
func (l *Listing) HasPrice() bool {
	return l.PricePerNight > 0
}

// PerStayFees sums the known one-off fees (cleaning, service, taxes)
func (l *Listing) PerStayFees() float64 {
	var sum float64
	for _, fee := range []*float64{l.CleaningFee, l.ServiceFee, l.Taxes} {
		if fee != nil {
			sum += *fee
		}
	}
	return sum
}

// StayCost is the nightly price for the given number of nights plus the known one-off fees
func (l *Listing) StayCost(nights int) float64 {
	if nights < 1 {
		nights = 1
	}
	return l.PricePerNight*float64(nights) + l.PerStayFees()
}

// Clone returns a deep copy so callers can derive new records without sharing pointers
func (l *Listing) Clone() *Listing {
	if l == nil {
		return nil
	}
	c := *l
	c.Rating = cloneFloat(l.Rating)
	c.ReviewCount = cloneInt(l.ReviewCount)
	c.Amenities = cloneStrings(l.Amenities)
	c.Bedrooms = cloneInt(l.Bedrooms)
	c.Bathrooms = cloneInt(l.Bathrooms)
	c.MaxGuests = cloneInt(l.MaxGuests)
	c.SquareMeters = cloneFloat(l.SquareMeters)
	c.CleaningFee = cloneFloat(l.CleaningFee)
	c.ServiceFee = cloneFloat(l.ServiceFee)
	c.Taxes = cloneFloat(l.Taxes)
	c.SecurityDeposit = cloneFloat(l.SecurityDeposit)
	c.WeeklyDiscount = cloneFloat(l.WeeklyDiscount)
	c.MonthlyDiscount = cloneFloat(l.MonthlyDiscount)
	c.MinimumStay = cloneInt(l.MinimumStay)
	c.MaximumStay = cloneInt(l.MaximumStay)
	c.HostRating = cloneFloat(l.HostRating)
	c.HostResponseRate = cloneFloat(l.HostResponseRate)
	c.PropertyFeatures = cloneStrings(l.PropertyFeatures)
	c.HouseRules = cloneStrings(l.HouseRules)
	c.ValueScore = cloneFloat(l.ValueScore)
	c.LocationScore = cloneFloat(l.LocationScore)
	c.OverallScore = cloneFloat(l.OverallScore)
	return &c
}

// Float returns a pointer to v
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v
func Int(v int) *int { return &v }

// Bool returns a pointer to v
func Bool(v bool) *bool { return &v }

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
