package services

import (
	"strings"
	"sync"

	"stay-scout/metrics"
	"stay-scout/models"
	"stay-scout/utils"
)

// Catalog holds the canonical listings of one search run, keyed by URL.
// Basic records and detail attributes may arrive in any order; both orders
// produce the same merged listing. Safe for concurrent use.
type Catalog struct {
	normalizer *Normalizer
	logger     *utils.Logger

	mu       sync.Mutex
	order    []string
	listings map[string]*models.Listing
	pending  map[string][]*models.ExtendedAttributes
}

// NewCatalog creates an empty catalog
func NewCatalog(normalizer *Normalizer, logger *utils.Logger) *Catalog {
	return &Catalog{
		normalizer: normalizer,
		logger:     logger,
		listings:   make(map[string]*models.Listing),
		pending:    make(map[string][]*models.ExtendedAttributes),
	}
}

// Add normalizes a basic record into the catalog. A second record for a known URL only
// fills basic fields the stored listing lacks; its details are merged as Extend would.
// Returns false when no listing could be produced.
func (c *Catalog) Add(raw *models.RawListing) bool {
	listing, ok := c.normalizer.Normalize(raw)
	if !ok {
		return false
	}
	key := listingKey(listing.URL, listing.Title, listing.Location)

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, found := c.listings[key]; found {
		merged := c.normalizer.Fill(existing, listing)
		if raw.Details != nil {
			merged = c.normalizer.Merge(merged, raw.Details)
			metrics.DetailsMerged.WithLabelValues(merged.Source).Inc()
		}
		c.listings[key] = merged
		c.logger.Debug("Merged duplicate record for %s", key)
		return true
	}

	for _, extra := range c.pending[key] {
		listing = c.normalizer.Merge(listing, extra)
		metrics.DetailsMerged.WithLabelValues(listing.Source).Inc()
	}
	delete(c.pending, key)

	c.listings[key] = listing
	c.order = append(c.order, key)
	return true
}

// Extend merges detail attributes into the listing with the given URL. When the basic
// record has not arrived yet the attributes are held and applied on Add.
// Returns true when the merge happened immediately.
func (c *Catalog) Extend(rawURL string, extra *models.ExtendedAttributes) bool {
	if extra == nil {
		return false
	}
	key := utils.CanonicalURL(rawURL)
	if key == "" {
		c.logger.Warn("Ignoring detail attributes without URL")
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	existing, found := c.listings[key]
	if !found {
		c.pending[key] = append(c.pending[key], extra)
		return false
	}
	c.listings[key] = c.normalizer.Merge(existing, extra)
	metrics.DetailsMerged.WithLabelValues(existing.Source).Inc()
	return true
}

// Get returns a copy of the listing stored under the URL
func (c *Catalog) Get(rawURL string) (*models.Listing, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.listings[utils.CanonicalURL(rawURL)]
	return l.Clone(), ok
}

// Listings returns copies of all listings in first-seen order
func (c *Catalog) Listings() []*models.Listing {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*models.Listing, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.listings[key].Clone())
	}
	return out
}

// Len returns the number of canonical listings
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// Pending returns how many URLs have detail attributes waiting for their basic record
func (c *Catalog) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// listingKey is the URL, or title|location for sources that expose no link
func listingKey(url, title, location string) string {
	if url != "" {
		return url
	}
	return strings.ToLower(title) + "|" + strings.ToLower(location)
}
