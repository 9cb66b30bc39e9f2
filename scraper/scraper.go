package scraper

import (
	"context"
	"errors"

	"stay-scout/models"
)

// ErrNoResults is returned when no source produced a single raw listing
var ErrNoResults = errors.New("no listings collected from any source")

// Source is one listing site
type Source interface {
	// Name is the source label stored on every raw listing
	Name() string
	// Search returns the basic records of the search results page(s) for the criteria
	Search(ctx context.Context, criteria models.SearchCriteria) ([]*models.RawListing, error)
	// Details fetches the detail page of one listing
	Details(ctx context.Context, url string) (*models.ExtendedAttributes, error)
}
