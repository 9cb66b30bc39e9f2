package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalAmenity(t *testing.T) {
	tests := map[string]string{
		"Wi-Fi":            "wifi",
		"Free WiFi":        "wifi",
		"wifi":             "wifi",
		"Air conditioning": "air_conditioning",
		"AC":               "air_conditioning",
		"Kitchenette":      "kitchen",
		"Pool":             "pool",
	}
	for in, want := range tests {
		assert.Equal(t, want, CanonicalAmenity(in), in)
	}
}

func TestCanonicalAmenities(t *testing.T) {
	got := CanonicalAmenities([]string{"Wi-Fi", "Kitchen", "wifi", "", "A/C"})
	assert.Equal(t, []string{"wifi", "kitchen", "air_conditioning"}, got)
	assert.Nil(t, CanonicalAmenities(nil))
}

func TestUnionAmenities(t *testing.T) {
	got := unionAmenities([]string{"kitchen"}, []string{"Kitchen", "Free WiFi"})
	assert.Equal(t, []string{"kitchen", "wifi"}, got)
}
