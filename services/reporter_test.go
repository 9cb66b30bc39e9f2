package services

import (
	"bytes"
	"testing"

	"stay-scout/models"
	"stay-scout/utils"

	"github.com/stretchr/testify/assert"
)

func TestPrintAnalysisReport(t *testing.T) {
	l1, l2 := workedExample()
	criteria := testCriteria()
	analysis := NewAnalyzer(5, 1, utils.NewNopLogger()).Analyze([]*models.Listing{l1, l2}, criteria)

	var buf bytes.Buffer
	PrintAnalysisReport(&buf, analysis, criteria)
	out := buf.String()

	assert.Contains(t, out, "ACCOMMODATION SEARCH ANALYSIS")
	assert.Contains(t, out, "Bar, Montenegro")
	assert.Contains(t, out, "2025-07-01 → 2025-07-08 (7 nights)")
	assert.Contains(t, out, "Total Listings Found    : 2")
	assert.Contains(t, out, "$35.00 - $50.00")
	assert.Contains(t, out, "BEST VALUE (2)")
	assert.Contains(t, out, "PREMIUM OPTIONS (1)")
	assert.NotContains(t, out, "BUDGET OPTIONS")
	assert.Contains(t, out, "Best value option: L2 at $50.00/night")
}

func TestPrintBookingAdvice(t *testing.T) {
	var buf bytes.Buffer
	PrintBookingAdvice(&buf, []string{"BOOKING TIPS:"})
	assert.Contains(t, buf.String(), "BOOKING ASSISTANT")
	assert.Contains(t, buf.String(), "BOOKING TIPS:")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdef...", truncate("abcdefghijklmnop", 9))
}
