package services

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	priceRegex       = regexp.MustCompile(`\d+(?:\.\d+)?`)
	leadingNumRegex  = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)`)
	reviewCountRegex = regexp.MustCompile(`(?i)\(\s*([\d,]+)\s*\)|([\d,]+)\s+reviews?`)
	locationPrefix   = regexp.MustCompile(`(?i)^(?:entire\s+\w+|private room|shared room|hotel room|room|condo|apartment|home|villa|cottage|cabin|loft)\s+in\s+`)
)

// ParsePrice returns the first decimal number in text like "€1,234.50 per night".
// Thousands separators are stripped first; "." is the only decimal separator.
// Text without a number yields 0, which callers must read as "unknown".
func ParsePrice(raw string) float64 {
	if raw == "" {
		return 0
	}
	cleaned := strings.ReplaceAll(raw, ",", "")
	match := priceRegex.FindString(cleaned)
	if match == "" {
		return 0
	}
	val, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return val
}

// ParseRating reads the leading numeral of text like "4.82 (120)" and rescales it
// from the source's scale to 0-5. Missing or out-of-range ratings return nil, never 0.
func ParseRating(raw string, scale float64) *float64 {
	m := leadingNumRegex.FindStringSubmatch(raw)
	if len(m) < 2 {
		return nil
	}
	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	if scale > 0 && scale != 5 {
		val = val / scale * 5
	}
	if val < 0 || val > 5 {
		return nil
	}
	return &val
}

// ParseReviewCount extracts "120" from "4.82 (120)" or "120 reviews"
func ParseReviewCount(raw string) *int {
	m := reviewCountRegex.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	digits := m[1]
	if digits == "" {
		digits = m[2]
	}
	n, err := strconv.Atoi(strings.ReplaceAll(digits, ",", ""))
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// cleanText trims and collapses internal whitespace
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cleanLocation normalizes location strings, dropping "Condo in " style prefixes
func cleanLocation(loc string) string {
	loc = cleanText(loc)
	return locationPrefix.ReplaceAllString(loc, "")
}
