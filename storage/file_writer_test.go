package storage

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stay-scout/models"
	"stay-scout/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVWriterRawListings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "raw.csv")
	w := NewCSVWriter(path, utils.NewTestLogger(t))

	raws := []*models.RawListing{{
		Source:       models.SourceBooking,
		Title:        "Hotel Sun, Bar",
		RawPrice:     "€ 1,048",
		Location:     "Bar",
		RawRating:    "8.6 (1,204)",
		URL:          "https://booking.com/hotel/me/sun.html",
		PropertyType: models.PropertyHotelRoom,
		ScrapedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}}
	require.NoError(t, w.WriteRawListings(raws))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "source", rows[0][0])
	assert.Equal(t, []string{
		"Booking.com", "Hotel Sun, Bar", "€ 1,048", "Bar", "8.6 (1,204)",
		"https://booking.com/hotel/me/sun.html", "hotel_room", "2025-06-01T12:00:00Z",
	}, rows[1])
}

func TestCSVWriterScoredListings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.csv")
	w := NewCSVWriter(path, utils.NewNopLogger())

	analysis, _ := testAnalysis()
	require.NoError(t, w.WriteListings(analysis.Listings))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 16)
	assert.Equal(t, "35.00", rows[1][2])
	assert.Equal(t, "", rows[1][5], "missing rating stays empty")
	assert.Equal(t, "61.50", rows[1][15])
}

func TestJSONWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "analysis.json")
	w := NewJSONWriter(path, utils.NewTestLogger(t))

	analysis, criteria := testAnalysis()
	require.NoError(t, w.WriteAnalysis(analysis, criteria))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Criteria CriteriaDocument `json:"criteria"`
		Summary  AnalysisDocument `json:"analysis_summary"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 40.0, doc.Criteria.MaxPricePerNight)
	assert.Equal(t, "entire_place", doc.Criteria.PropertyType)
	assert.Equal(t, 1, doc.Summary.TotalProperties)
	assert.Equal(t, [2]float64{35, 35}, doc.Summary.PriceRange)
	require.Len(t, doc.Summary.BestValue, 1)
	assert.Equal(t, "https://airbnb.com/rooms/1", doc.Summary.BestValue[0].URL)
	assert.Nil(t, doc.Summary.BestValue[0].Rating)
	assert.Empty(t, doc.Summary.Premium)
	require.NotNil(t, doc.Summary.MarketInsights.PriceDistribution)
	assert.Equal(t, 35.0, doc.Summary.MarketInsights.PriceDistribution.Median)
}

func TestJSONWriterInsightKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.json")
	analysis, criteria := testAnalysis()
	analysis.Insights.SourceComparison = []models.SourceStats{{Source: models.SourceAirbnb, Count: 1, PricedCount: 1, AvgPrice: 35}}
	analysis.Insights.PopularAmenities = []models.AmenityCount{{Amenity: "wifi", Count: 1}}
	require.NoError(t, NewJSONWriter(path, utils.NewNopLogger()).WriteAnalysis(analysis, criteria))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Summary struct {
			MarketInsights map[string]json.RawMessage `json:"market_insights"`
		} `json:"analysis_summary"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	insights := doc.Summary.MarketInsights
	assert.JSONEq(t, `{"min":35,"max":35,"median":35,"std_dev":0}`, string(insights["price_distribution"]))
	assert.JSONEq(t, `[{"source":"Airbnb","count":1,"priced_count":1,"avg_price":35}]`,
		string(insights["platform_comparison"]))
	assert.JSONEq(t, `[{"amenity":"wifi","count":1}]`, string(insights["popular_amenities"]))
}
