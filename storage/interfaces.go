package storage

import (
	"context"

	"stay-scout/models"
)

// RawStorage defines the interface for storing raw scraped data
type RawStorage interface {
	WriteRawListings(listings []*models.RawListing) error
}

// ListingStorage defines the interface for storing canonical, scored listings
type ListingStorage interface {
	BatchInsert(ctx context.Context, listings []*models.Listing) error
	Close()
}

// AnalysisStorage stores a finished analysis snapshot
type AnalysisStorage interface {
	WriteAnalysis(analysis *models.SearchAnalysis, criteria models.SearchCriteria) error
}

// HistoryStore keeps past search runs
type HistoryStore interface {
	Save(ctx context.Context, entry *HistoryEntry) error
	Get(ctx context.Context, id string) (*HistoryEntry, error)
	Recent(ctx context.Context, n int) ([]*HistoryEntry, error)
}

var (
	_ RawStorage      = (*CSVWriter)(nil)
	_ ListingStorage  = (*PostgresWriter)(nil)
	_ AnalysisStorage = (*JSONWriter)(nil)
	_ HistoryStore    = (*RedisHistory)(nil)
)
