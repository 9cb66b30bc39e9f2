package services

import (
	"fmt"
	"io"
	"strings"

	"stay-scout/models"
)

const reportWidth = 60

// PrintAnalysisReport formats the analysis for a terminal
func PrintAnalysisReport(w io.Writer, analysis *models.SearchAnalysis, criteria models.SearchCriteria) {
	border := strings.Repeat("═", reportWidth)
	thin := strings.Repeat("─", reportWidth)

	fmt.Fprintf(w, "\n╔%s╗\n", border)
	fmt.Fprintf(w, "║%s║\n", center("ACCOMMODATION SEARCH ANALYSIS", reportWidth))
	fmt.Fprintf(w, "╚%s╝\n", border)

	fmt.Fprintf(w, "\n SEARCH\n%s\n", thin)
	fmt.Fprintf(w, "  Location                : %s\n", criteria.Location)
	fmt.Fprintf(w, "  Dates                   : %s → %s (%d nights)\n",
		criteria.CheckIn.Format("2006-01-02"), criteria.CheckOut.Format("2006-01-02"), criteria.Nights())
	fmt.Fprintf(w, "  Guests                  : %d\n", criteria.Guests)
	fmt.Fprintf(w, "  Budget/Night            : $%.2f\n", criteria.MaxPricePerNight)

	fmt.Fprintf(w, "\n OVERVIEW\n%s\n", thin)
	fmt.Fprintf(w, "  Total Listings Found    : %d\n", analysis.TotalCount)
	fmt.Fprintf(w, "  Average Price/Night     : $%.2f\n", analysis.AveragePrice)
	fmt.Fprintf(w, "  Price Range             : $%.2f - $%.2f\n", analysis.PriceRange.Min, analysis.PriceRange.Max)

	printListingSection(w, "BEST VALUE", analysis.BestValue, thin)
	printListingSection(w, "BUDGET OPTIONS", analysis.Budget, thin)
	printListingSection(w, "PREMIUM OPTIONS", analysis.Premium, thin)

	insights := analysis.Insights
	if d := insights.PriceDistribution; d != nil {
		fmt.Fprintf(w, "\n PRICE DISTRIBUTION\n%s\n", thin)
		fmt.Fprintf(w, "  Min / Median / Max      : $%.2f / $%.2f / $%.2f\n", d.Min, d.Median, d.Max)
		fmt.Fprintf(w, "  Std Deviation           : $%.2f\n", d.StdDev)
	}
	if len(insights.SourceComparison) > 0 {
		fmt.Fprintf(w, "\n SOURCES\n%s\n", thin)
		for _, s := range insights.SourceComparison {
			fmt.Fprintf(w, "  %-25s %3d listings  avg $%.2f\n", s.Source+":", s.Count, s.AvgPrice)
		}
	}
	if len(insights.PopularAmenities) > 0 {
		fmt.Fprintf(w, "\n POPULAR AMENITIES\n%s\n", thin)
		for _, a := range insights.PopularAmenities {
			fmt.Fprintf(w, "  %-25s %3d  %s\n", a.Amenity+":", a.Count, strings.Repeat("▓", a.Count))
		}
	}

	if len(analysis.Recommendations) > 0 {
		fmt.Fprintf(w, "\n RECOMMENDATIONS\n%s\n", thin)
		for _, r := range analysis.Recommendations {
			fmt.Fprintf(w, "  • %s\n", r)
		}
	}

	fmt.Fprintf(w, "\n%s\n\n", border)
}

// PrintBookingAdvice prints the booking assistant output
func PrintBookingAdvice(w io.Writer, advice []string) {
	border := strings.Repeat("=", reportWidth)
	fmt.Fprintln(w, border)
	fmt.Fprintln(w, "BOOKING ASSISTANT")
	fmt.Fprintln(w, border)
	for _, line := range advice {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, border)
}

func printListingSection(w io.Writer, title string, listings []*models.Listing, thin string) {
	if len(listings) == 0 {
		return
	}
	fmt.Fprintf(w, "\n %s (%d)\n%s\n", title, len(listings), thin)
	for i, l := range listings {
		score := 0.0
		if l.OverallScore != nil {
			score = *l.OverallScore
		}
		fmt.Fprintf(w, "  %d. %-35s $%7.2f  %5.1f  %s\n", i+1, truncate(l.Title, 35), l.PricePerNight, score, l.Source)
	}
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
