package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"stay-scout/models"
	"stay-scout/services"
)

var numberRegex = regexp.MustCompile(`\d+(?:\.\d+)?`)

// DetailPage is the text a source pulls off a listing's detail page before mapping
type DetailPage struct {
	Description string
	Facts       []string // short lines like "2 bedrooms", "Sleeps 4" or "Cleaning fee $25"

	Rating      string
	RatingScale float64

	HostName         string
	HostRating       string
	HostResponseTime string

	Amenities          []string
	PropertyFeatures   []string
	HouseRules         []string
	CancellationPolicy string
}

// Attributes maps the page onto extended attributes
func (p DetailPage) Attributes() *models.ExtendedAttributes {
	attrs := ParseDetailLines(p.Facts)
	attrs.Description = strings.TrimSpace(p.Description)
	attrs.Rating = services.ParseRating(p.Rating, p.RatingScale)
	attrs.ReviewCount = services.ParseReviewCount(p.Rating)
	attrs.HostName = strings.TrimSpace(p.HostName)
	attrs.HostRating = services.ParseRating(p.HostRating, 5)
	attrs.HostResponseTime = strings.TrimSpace(p.HostResponseTime)
	attrs.Amenities = nonEmpty(p.Amenities)
	attrs.PropertyFeatures = nonEmpty(p.PropertyFeatures)
	attrs.HouseRules = nonEmpty(p.HouseRules)
	attrs.CancellationPolicy = strings.TrimSpace(p.CancellationPolicy)
	return attrs
}

// ParseDetailLines reads room counts, size, fees, stay limits and booking flags
// out of free-text fact lines. Lines it does not recognize are ignored.
func ParseDetailLines(lines []string) *models.ExtendedAttributes {
	attrs := &models.ExtendedAttributes{}
	for _, line := range lines {
		text := strings.ToLower(strings.TrimSpace(line))
		if text == "" {
			continue
		}
		switch {
		case strings.Contains(text, "cleaning"):
			attrs.CleaningFee = fee(text)
		case strings.Contains(text, "service fee"):
			attrs.ServiceFee = fee(text)
		case strings.Contains(text, "tax"):
			attrs.Taxes = fee(text)
		case strings.Contains(text, "deposit"):
			attrs.SecurityDeposit = fee(text)
		case strings.Contains(text, "weekly"):
			attrs.WeeklyDiscount = number(text)
		case strings.Contains(text, "monthly"):
			attrs.MonthlyDiscount = number(text)
		case strings.Contains(text, "response rate"):
			attrs.HostResponseRate = number(text)
		case strings.Contains(text, "instant book"):
			attrs.InstantBook = models.Bool(!strings.Contains(text, "not "))
		case strings.Contains(text, "minimum") || strings.Contains(text, "min stay"):
			attrs.MinimumStay = count(text)
		case strings.Contains(text, "maximum") || strings.Contains(text, "max stay"):
			attrs.MaximumStay = count(text)
		case strings.Contains(text, "bedroom"):
			attrs.Bedrooms = count(text)
		case strings.Contains(text, "bath"):
			attrs.Bathrooms = count(text)
		case strings.Contains(text, "guest") || strings.Contains(text, "sleeps"):
			attrs.MaxGuests = count(text)
		case strings.Contains(text, "m²") || strings.Contains(text, "m2") || strings.Contains(text, "sq m"):
			attrs.SquareMeters = number(text)
		}
	}
	return attrs
}

func fee(text string) *float64 {
	if v := services.ParsePrice(text); v > 0 {
		return &v
	}
	return nil
}

func number(text string) *float64 {
	match := numberRegex.FindString(strings.ReplaceAll(text, ",", ""))
	if match == "" {
		return nil
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}
	return &v
}

// count truncates "1.5 baths" to 1
func count(text string) *int {
	v := number(text)
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
