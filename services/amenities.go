package services

import "strings"

var amenityAliases = map[string]string{
	"wi_fi":             "wifi",
	"free_wifi":         "wifi",
	"wireless_internet": "wifi",
	"internet":          "wifi",
	"ac":                "air_conditioning",
	"a/c":               "air_conditioning",
	"air_conditioner":   "air_conditioning",
	"airconditioning":   "air_conditioning",
	"kitchenette":       "kitchen",
	"full_kitchen":      "kitchen",
	"free_parking":      "parking",
}

// CanonicalAmenity maps "Wi-Fi", "Free WiFi" or "Air conditioning" onto one token
func CanonicalAmenity(a string) string {
	key := strings.ToLower(cleanText(a))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if alias, ok := amenityAliases[key]; ok {
		return alias
	}
	return key
}

// CanonicalAmenities canonicalizes and de-duplicates, keeping first-seen order
func CanonicalAmenities(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, a := range in {
		c := CanonicalAmenity(a)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// unionAmenities appends the canonical amenities of extra not already in base
func unionAmenities(base, extra []string) []string {
	return CanonicalAmenities(append(append([]string(nil), base...), extra...))
}
