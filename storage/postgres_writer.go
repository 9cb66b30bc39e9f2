package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"stay-scout/models"
	"stay-scout/utils"

	"github.com/lib/pq"
)

// PostgresWriter stores scored listings in PostgreSQL
type PostgresWriter struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresWriter opens the connection and pings the DB
func NewPostgresWriter(ctx context.Context, connStr string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.Info("Connected to PostgreSQL successfully")
	return NewPostgresWriterFromDB(db, logger), nil
}

// NewPostgresWriterFromDB wraps an already opened database
func NewPostgresWriterFromDB(db *sql.DB, logger *utils.Logger) *PostgresWriter {
	return &PostgresWriter{db: db, logger: logger}
}

const createListingsTable = `
CREATE TABLE IF NOT EXISTS listings (
	id              SERIAL PRIMARY KEY,
	source          VARCHAR(50)   NOT NULL,
	title           TEXT          NOT NULL,
	price_per_night NUMERIC(10,2) DEFAULT 0,
	total_price     NUMERIC(10,2) DEFAULT 0,
	location        TEXT,
	rating          NUMERIC(4,2),
	review_count    INTEGER,
	amenities       TEXT[],
	url             TEXT UNIQUE,
	property_type   VARCHAR(30),
	instant_book    BOOLEAN       DEFAULT FALSE,
	value_score     NUMERIC(6,2),
	location_score  NUMERIC(6,2),
	overall_score   NUMERIC(6,2),
	scraped_at      TIMESTAMP     NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_listings_price   ON listings (price_per_night);
CREATE INDEX IF NOT EXISTS idx_listings_source  ON listings (source);
CREATE INDEX IF NOT EXISTS idx_listings_overall ON listings (overall_score);
`

const upsertListing = `
INSERT INTO listings (source, title, price_per_night, total_price, location, rating, review_count,
	amenities, url, property_type, instant_book, value_score, location_score, overall_score, scraped_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
ON CONFLICT (url) DO UPDATE SET
	price_per_night = EXCLUDED.price_per_night,
	total_price     = EXCLUDED.total_price,
	rating          = EXCLUDED.rating,
	review_count    = EXCLUDED.review_count,
	amenities       = EXCLUDED.amenities,
	instant_book    = EXCLUDED.instant_book,
	value_score     = EXCLUDED.value_score,
	location_score  = EXCLUDED.location_score,
	overall_score   = EXCLUDED.overall_score,
	scraped_at      = EXCLUDED.scraped_at
`

// CreateTable creates the listings table and its indexes if they don't exist
func (w *PostgresWriter) CreateTable(ctx context.Context) error {
	if _, err := w.db.ExecContext(ctx, createListingsTable); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	w.logger.Info("Table 'listings' is ready")
	return nil
}

// BatchInsert upserts listings by URL in a single transaction. Listings without a URL
// have no stable identity across runs and are skipped.
func (w *PostgresWriter) BatchInsert(ctx context.Context, listings []*models.Listing) (err error) {
	if len(listings) == 0 {
		return nil
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, upsertListing)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, l := range listings {
		if strings.TrimSpace(l.URL) == "" {
			w.logger.Debug("Skipping insert for '%s': no URL", l.Title)
			continue
		}
		if _, err = stmt.ExecContext(ctx,
			l.Source,
			l.Title,
			l.PricePerNight,
			l.TotalPrice,
			l.Location,
			nullFloat(l.Rating),
			nullInt(l.ReviewCount),
			pq.Array(l.Amenities),
			l.URL,
			string(l.PropertyType),
			l.InstantBook,
			nullFloat(l.ValueScore),
			nullFloat(l.LocationScore),
			nullFloat(l.OverallScore),
			l.ScrapedAt,
		); err != nil {
			return fmt.Errorf("failed to upsert '%s': %w", l.URL, err)
		}
		inserted++
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	w.logger.Info("Upserted %d/%d listings into PostgreSQL", inserted, len(listings))
	return nil
}

// Close closes the database connection
func (w *PostgresWriter) Close() {
	if w.db != nil {
		_ = w.db.Close()
	}
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}
