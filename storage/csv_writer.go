package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"stay-scout/models"
	"stay-scout/utils"
)

// CSVWriter writes raw and scored listings to CSV files
type CSVWriter struct {
	filePath string
	logger   *utils.Logger
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(filePath string, logger *utils.Logger) *CSVWriter {
	return &CSVWriter{filePath: filePath, logger: logger}
}

// WriteRawListings writes a slice of RawListings to the CSV file
func (w *CSVWriter) WriteRawListings(listings []*models.RawListing) error {
	header := []string{
		"source", "title", "raw_price", "location",
		"raw_rating", "url", "property_type", "scraped_at",
	}
	rows := make([][]string, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, []string{
			l.Source,
			l.Title,
			l.RawPrice,
			l.Location,
			l.RawRating,
			l.URL,
			string(l.PropertyType),
			l.ScrapedAt.Format(time.RFC3339),
		})
	}
	if err := w.write(header, rows); err != nil {
		return err
	}
	w.logger.Info("Raw listings written to: %s (%d rows)", w.filePath, len(listings))
	return nil
}

// WriteListings writes canonical listings with their scores to the CSV file
func (w *CSVWriter) WriteListings(listings []*models.Listing) error {
	header := []string{
		"source", "title", "price_per_night", "total_price", "location", "rating",
		"review_count", "amenities", "url", "property_type", "host_name", "instant_book",
		"cancellation_policy", "value_score", "location_score", "overall_score",
	}
	rows := make([][]string, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, []string{
			l.Source,
			l.Title,
			formatFloat(&l.PricePerNight),
			formatFloat(&l.TotalPrice),
			l.Location,
			formatFloat(l.Rating),
			formatInt(l.ReviewCount),
			strings.Join(l.Amenities, ", "),
			l.URL,
			string(l.PropertyType),
			l.HostName,
			strconv.FormatBool(l.InstantBook),
			l.CancellationPolicy,
			formatFloat(l.ValueScore),
			formatFloat(l.LocationScore),
			formatFloat(l.OverallScore),
		})
	}
	if err := w.write(header, rows); err != nil {
		return err
	}
	w.logger.Info("Listings written to: %s (%d rows)", w.filePath, len(listings))
	return nil
}

func (w *CSVWriter) write(header []string, rows [][]string) error {
	// Ensure output directory exists
	if err := os.MkdirAll(filepath.Dir(w.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(w.filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			w.logger.Error("Failed to write CSV row for '%s': %v", row[1], err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
