package storage

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"stay-scout/models"
	"stay-scout/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAnalysis() (*models.SearchAnalysis, models.SearchCriteria) {
	criteria := models.NewSearchCriteria("Bar, Montenegro",
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC), 2, 40)
	best := &models.Listing{
		Source:        models.SourceAirbnb,
		Title:         "Studio",
		PricePerNight: 35,
		TotalPrice:    35,
		Location:      "Bar, Montenegro",
		URL:           "https://airbnb.com/rooms/1",
		OverallScore:  models.Float(61.5),
	}
	analysis := &models.SearchAnalysis{
		TotalCount:      1,
		AveragePrice:    35,
		PriceRange:      models.PriceRange{Min: 35, Max: 35},
		BestValue:       []*models.Listing{best},
		Budget:          []*models.Listing{},
		Recommendations: []string{"Best value option: Studio at $35.00/night"},
		Insights: models.MarketInsights{
			PriceDistribution: &models.PriceDistribution{Min: 35, Max: 35, Median: 35},
		},
		Listings: []*models.Listing{best},
	}
	return analysis, criteria
}

func newTestHistory(t *testing.T, size int) *RedisHistory {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisHistoryFromClient(client, size, utils.NewTestLogger(t))
}

func TestRedisHistorySaveAndGet(t *testing.T) {
	ctx := context.Background()
	h := newTestHistory(t, 5)
	analysis, criteria := testAnalysis()

	entry := NewHistoryEntry(analysis, criteria, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	_, err := uuid.Parse(entry.ID)
	require.NoError(t, err)
	require.NoError(t, h.Save(ctx, entry))

	got, err := h.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.True(t, entry.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, "Bar, Montenegro", got.Criteria.Location)
	assert.Equal(t, "2025-07-01", got.Criteria.CheckIn)
	assert.Equal(t, 1, got.Analysis.TotalProperties)
	require.Len(t, got.Analysis.BestValue, 1)
	assert.Equal(t, "Studio", got.Analysis.BestValue[0].Title)
	assert.Equal(t, 61.5, *got.Analysis.BestValue[0].OverallScore)
}

func TestRedisHistoryGetMissing(t *testing.T) {
	h := newTestHistory(t, 5)
	_, err := h.Get(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrHistoryNotFound)
}

func TestRedisHistoryKeepsMostRecent(t *testing.T) {
	ctx := context.Background()
	h := newTestHistory(t, 2)
	analysis, criteria := testAnalysis()

	var ids []string
	for i := 0; i < 3; i++ {
		entry := NewHistoryEntry(analysis, criteria, time.Now())
		require.NoError(t, h.Save(ctx, entry))
		ids = append(ids, entry.ID)
	}

	recent, err := h.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[2], recent[0].ID)
	assert.Equal(t, ids[1], recent[1].ID)

	_, err = h.Get(ctx, ids[0])
	assert.ErrorIs(t, err, ErrHistoryNotFound)

	one, err := h.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, ids[2], one[0].ID)

	none, err := h.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRedisHistoryAssignsMissingID(t *testing.T) {
	h := newTestHistory(t, 5)
	entry := &HistoryEntry{CreatedAt: time.Now()}
	require.NoError(t, h.Save(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
}

func TestNewRedisHistory(t *testing.T) {
	mr := miniredis.RunT(t)
	h, err := NewRedisHistory(context.Background(), mr.Addr(), 3, utils.NewNopLogger())
	require.NoError(t, err)
	assert.NoError(t, h.Close())

	mr.Close()
	_, err = NewRedisHistory(context.Background(), mr.Addr(), 3, utils.NewNopLogger())
	assert.Error(t, err)
}

func TestPrintHistory(t *testing.T) {
	ctx := context.Background()
	h := newTestHistory(t, 5)
	analysis, criteria := testAnalysis()

	older := NewHistoryEntry(analysis, criteria, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	newer := NewHistoryEntry(analysis, criteria, time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC))
	require.NoError(t, h.Save(ctx, older))
	require.NoError(t, h.Save(ctx, newer))

	recent, err := h.Recent(ctx, 10)
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintHistory(&buf, recent)
	out := buf.String()
	assert.Contains(t, out, older.ID)
	assert.Contains(t, out, "2025-06-02 09:30")
	assert.Contains(t, out, "$35.00")
	assert.Less(t, strings.Index(out, newer.ID), strings.Index(out, older.ID), "newest first")

	buf.Reset()
	PrintHistory(&buf, nil)
	assert.Contains(t, buf.String(), "No saved search runs")
}

func TestPrintHistoryEntry(t *testing.T) {
	ctx := context.Background()
	h := newTestHistory(t, 5)
	analysis, criteria := testAnalysis()
	entry := NewHistoryEntry(analysis, criteria, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, h.Save(ctx, entry))

	got, err := h.Get(ctx, entry.ID)
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintHistoryEntry(&buf, got)
	out := buf.String()
	assert.Contains(t, out, "Bar, Montenegro, 2025-07-01 → 2025-07-08, 2 guests")
	assert.Contains(t, out, "1. Studio  $35.00  score 61.5")
	assert.Contains(t, out, "Best value option: Studio at $35.00/night")
}
