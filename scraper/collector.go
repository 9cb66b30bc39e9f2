package scraper

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"stay-scout/metrics"
	"stay-scout/models"
	"stay-scout/services"
	"stay-scout/utils"

	"golang.org/x/sync/errgroup"
)

// Options tunes how the collector drives its sources
type Options struct {
	MaxConcurrency   int // sources searched at once
	RateLimitDelayMs int // minimum gap between requests to one source
	MaxRetries       int
	DetailsPerSource int // cheapest N listings of each source get a detail fetch
}

// Collector runs every source for a search and feeds the catalog
type Collector struct {
	sources []Source
	opts    Options
	logger  *utils.Logger
}

// NewCollector creates a Collector over the given sources
func NewCollector(sources []Source, opts Options, logger *utils.Logger) *Collector {
	if opts.MaxConcurrency < 1 {
		opts.MaxConcurrency = 1
	}
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	return &Collector{sources: sources, opts: opts, logger: logger}
}

// Collect searches all sources in parallel, adds every basic record to the catalog,
// then fetches details for the cheapest listings of each source and extends the catalog.
// A failing source is logged and skipped. The raw records are returned in source order.
func (c *Collector) Collect(ctx context.Context, criteria models.SearchCriteria, catalog *services.Catalog) ([]*models.RawListing, error) {
	results := make([][]*models.RawListing, len(c.sources))
	tracker := utils.NewURLTracker()

	var g errgroup.Group
	g.SetLimit(c.opts.MaxConcurrency)
	for i, src := range c.sources {
		g.Go(func() error {
			results[i] = c.collectSource(ctx, src, criteria, catalog, tracker)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("collection aborted: %w", err)
	}

	var all []*models.RawListing
	for _, raws := range results {
		all = append(all, raws...)
	}
	if len(all) == 0 {
		return nil, ErrNoResults
	}
	c.logger.Info("Collected %d raw records, %d canonical listings", len(all), catalog.Len())
	return all, nil
}

func (c *Collector) collectSource(ctx context.Context, src Source, criteria models.SearchCriteria,
	catalog *services.Catalog, tracker *utils.URLTracker) []*models.RawListing {
	name := src.Name()
	limiter := utils.NewRateLimiter(c.opts.RateLimitDelayMs)

	var raws []*models.RawListing
	err := utils.RetryWithBackoff(ctx, c.opts.MaxRetries, func(ctx context.Context) error {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		found, err := src.Search(ctx, criteria)
		if err != nil {
			return err
		}
		raws = found
		return nil
	}, c.logger)
	if err != nil {
		metrics.ScrapeErrors.WithLabelValues(name, "search").Inc()
		c.logger.Error("%s search failed: %v", name, err)
		return nil
	}
	c.logger.Info("%s: %d search results", name, len(raws))

	now := time.Now()
	for _, raw := range raws {
		if raw.Source == "" {
			raw.Source = name
		}
		if raw.ScrapedAt.IsZero() {
			raw.ScrapedAt = now
		}
		catalog.Add(raw)
	}

	for _, url := range detailTargets(raws, c.opts.DetailsPerSource, tracker) {
		if ctx.Err() != nil {
			break
		}
		var extra *models.ExtendedAttributes
		err := utils.RetryWithBackoff(ctx, c.opts.MaxRetries, func(ctx context.Context) error {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			attrs, err := src.Details(ctx, url)
			if err != nil {
				return err
			}
			extra = attrs
			return nil
		}, c.logger)
		if err != nil {
			metrics.ScrapeErrors.WithLabelValues(name, "details").Inc()
			c.logger.Warn("%s details failed for %s: %v", name, url, err)
			continue
		}
		catalog.Extend(url, extra)
	}
	return raws
}

// detailTargets picks the URLs of the n cheapest records. Records without a
// known price sort last; URLs already claimed by another source are skipped.
func detailTargets(raws []*models.RawListing, n int, tracker *utils.URLTracker) []string {
	if n <= 0 {
		return nil
	}
	type candidate struct {
		url   string
		price float64
	}
	var candidates []candidate
	for _, raw := range raws {
		if strings.TrimSpace(raw.URL) == "" {
			continue
		}
		candidates = append(candidates, candidate{url: raw.URL, price: services.ParsePrice(raw.RawPrice)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		pi, pj := candidates[i].price, candidates[j].price
		if (pi > 0) != (pj > 0) {
			return pi > 0
		}
		return pi < pj
	})

	var urls []string
	for _, cand := range candidates {
		if len(urls) >= n {
			break
		}
		if !tracker.Add(cand.url) {
			continue
		}
		urls = append(urls, cand.url)
	}
	return urls
}

