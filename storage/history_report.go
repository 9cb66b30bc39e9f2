package storage

import (
	"fmt"
	"io"
	"strings"
)

// PrintHistory lists stored runs, newest first
func PrintHistory(w io.Writer, entries []*HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No saved search runs")
		return
	}
	fmt.Fprintf(w, "\n %-36s  %-16s  %-24s  %5s  %8s\n", "RUN", "SAVED", "LOCATION", "FOUND", "AVG")
	fmt.Fprintf(w, " %s\n", strings.Repeat("─", 97))
	for _, e := range entries {
		fmt.Fprintf(w, " %-36s  %-16s  %-24s  %5d  %8s\n",
			e.ID, e.CreatedAt.Format("2006-01-02 15:04"), e.Criteria.Location,
			e.Analysis.TotalProperties, fmt.Sprintf("$%.2f", e.Analysis.AveragePrice))
	}
}

// PrintHistoryEntry shows the criteria, best-value listings and recommendations of one run
func PrintHistoryEntry(w io.Writer, e *HistoryEntry) {
	c := e.Criteria
	fmt.Fprintf(w, "\n Run %s (%s)\n", e.ID, e.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "  %s, %s → %s, %d guests, max $%.2f/night\n",
		c.Location, c.CheckIn, c.CheckOut, c.Guests, c.MaxPricePerNight)
	fmt.Fprintf(w, "  %d listings, average $%.2f, range $%.2f - $%.2f\n",
		e.Analysis.TotalProperties, e.Analysis.AveragePrice, e.Analysis.PriceRange[0], e.Analysis.PriceRange[1])

	for i, l := range e.Analysis.BestValue {
		score := "N/A"
		if l.OverallScore != nil {
			score = fmt.Sprintf("%.1f", *l.OverallScore)
		}
		fmt.Fprintf(w, "  %d. %s  $%.2f  score %s\n     %s\n", i+1, l.Title, l.PricePerNight, score, l.URL)
	}
	for _, r := range e.Analysis.Recommendations {
		fmt.Fprintf(w, "  • %s\n", r)
	}
}
