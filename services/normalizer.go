package services

import (
	"strings"

	"stay-scout/metrics"
	"stay-scout/models"
	"stay-scout/utils"
)

// Drop reasons reported when a raw record cannot become a listing
const (
	DropMissingTitle    = "missing_title"
	DropMissingPrice    = "missing_price"
	DropMissingLocation = "missing_location"
)

// Normalizer turns raw per-source attribute bags into canonical listings
type Normalizer struct {
	logger *utils.Logger
}

// NewNormalizer creates a new Normalizer
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize builds a canonical listing from a basic search-result record.
// It returns false when title, price text or location is missing; the caller skips that item.
func (n *Normalizer) Normalize(raw *models.RawListing) (*models.Listing, bool) {
	if raw == nil {
		return nil, false
	}
	source := strings.TrimSpace(raw.Source)

	title := cleanText(raw.Title)
	priceText := strings.TrimSpace(raw.RawPrice)
	location := cleanLocation(raw.Location)

	reason := ""
	switch {
	case title == "":
		reason = DropMissingTitle
	case priceText == "":
		reason = DropMissingPrice
	case location == "":
		reason = DropMissingLocation
	}
	if reason != "" {
		n.logger.Debug("Dropping %s record %q: %s", source, raw.URL, reason)
		metrics.ListingsDropped.WithLabelValues(source, reason).Inc()
		return nil, false
	}

	price := ParsePrice(priceText)
	listing := &models.Listing{
		Source:        source,
		Title:         title,
		PricePerNight: price,
		TotalPrice:    price,
		Location:      location,
		Rating:        ParseRating(raw.RawRating, raw.RatingScale),
		ReviewCount:   ParseReviewCount(raw.RawRating),
		URL:           utils.CanonicalURL(raw.URL),
		PropertyType:  raw.PropertyType,
		ScrapedAt:     raw.ScrapedAt,
	}
	metrics.ListingsNormalized.WithLabelValues(source).Inc()

	if raw.Details != nil {
		listing = n.Merge(listing, raw.Details)
	}
	return listing, true
}

// Merge returns a new listing combining existing with the fields present in extra.
// Absent fields in extra never clear a field of existing, and merging the same extra twice
// gives the same result as merging it once.
func (n *Normalizer) Merge(existing *models.Listing, extra *models.ExtendedAttributes) *models.Listing {
	out := existing.Clone()
	if out == nil || extra == nil {
		return out
	}

	if d := cleanText(extra.Description); d != "" && !strings.EqualFold(d, out.Title) {
		out.Description = d
	}
	setInt(&out.Bedrooms, extra.Bedrooms)
	setInt(&out.Bathrooms, extra.Bathrooms)
	setInt(&out.MaxGuests, extra.MaxGuests)
	setFloat(&out.SquareMeters, extra.SquareMeters)

	setFloat(&out.CleaningFee, extra.CleaningFee)
	setFloat(&out.ServiceFee, extra.ServiceFee)
	setFloat(&out.Taxes, extra.Taxes)
	setFloat(&out.SecurityDeposit, extra.SecurityDeposit)
	setFloat(&out.WeeklyDiscount, extra.WeeklyDiscount)
	setFloat(&out.MonthlyDiscount, extra.MonthlyDiscount)
	setInt(&out.MinimumStay, extra.MinimumStay)
	setInt(&out.MaximumStay, extra.MaximumStay)

	if validRating(extra.Rating) {
		setFloat(&out.Rating, extra.Rating)
	}
	if extra.ReviewCount != nil && *extra.ReviewCount >= 0 {
		setInt(&out.ReviewCount, extra.ReviewCount)
	}

	if h := cleanText(extra.HostName); h != "" {
		out.HostName = h
	}
	if validRating(extra.HostRating) {
		setFloat(&out.HostRating, extra.HostRating)
	}
	if r := cleanText(extra.HostResponseTime); r != "" {
		out.HostResponseTime = r
	}
	setFloat(&out.HostResponseRate, extra.HostResponseRate)

	if len(extra.Amenities) > 0 {
		out.Amenities = unionAmenities(out.Amenities, extra.Amenities)
	}
	if len(extra.PropertyFeatures) > 0 {
		out.PropertyFeatures = append([]string(nil), extra.PropertyFeatures...)
	}
	if len(extra.HouseRules) > 0 {
		out.HouseRules = append([]string(nil), extra.HouseRules...)
	}
	if extra.InstantBook != nil {
		out.InstantBook = *extra.InstantBook
	}
	if p := cleanText(extra.CancellationPolicy); p != "" {
		out.CancellationPolicy = p
	}

	// recomputed from the fields, so repeated merges do not accumulate fees
	out.TotalPrice = out.PricePerNight + out.PerStayFees()
	return out
}

// Fill completes existing with basic fields that only a later search-result record carries.
// Fields already present on existing are kept.
func (n *Normalizer) Fill(existing, incoming *models.Listing) *models.Listing {
	out := existing.Clone()
	if out == nil || incoming == nil {
		return out
	}
	if !out.HasPrice() && incoming.HasPrice() {
		out.PricePerNight = incoming.PricePerNight
		out.TotalPrice = out.PricePerNight + out.PerStayFees()
	}
	if out.Location == "" {
		out.Location = incoming.Location
	}
	if out.Rating == nil {
		out.Rating = incoming.Clone().Rating
	}
	if out.ReviewCount == nil {
		out.ReviewCount = incoming.Clone().ReviewCount
	}
	if out.PropertyType == "" {
		out.PropertyType = incoming.PropertyType
	}
	if out.URL == "" {
		out.URL = incoming.URL
	}
	return out
}

func validRating(r *float64) bool {
	return r != nil && *r >= 0 && *r <= 5
}

func setFloat(dst **float64, src *float64) {
	if src == nil {
		return
	}
	v := *src
	*dst = &v
}

func setInt(dst **int, src *int) {
	if src == nil {
		return
	}
	v := *src
	*dst = &v
}
