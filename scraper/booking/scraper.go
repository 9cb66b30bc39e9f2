package booking

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"stay-scout/models"
	"stay-scout/scraper"
	"stay-scout/utils"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// Booking.com scores reviews out of 10
const ratingScale = 10.0

var scoreRegex = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// Options configures the Booking.com source
type Options struct {
	BaseURL     string
	MaxListings int
	Timeout     time.Duration
}

// BookingScraper reads Booking.com search results and property pages as static HTML
type BookingScraper struct {
	opts      Options
	collector *colly.Collector
	logger    *utils.Logger
}

// NewBookingScraper creates a new BookingScraper
func NewBookingScraper(opts Options, logger *utils.Logger) (*BookingScraper, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://www.booking.com"
	}
	if opts.MaxListings < 1 {
		opts.MaxListings = 20
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	c := colly.NewCollector(colly.AllowURLRevisit())
	c.SetRequestTimeout(opts.Timeout)
	if err := c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 1}); err != nil {
		return nil, fmt.Errorf("failed to set limit rule: %w", err)
	}
	extensions.RandomUserAgent(c)
	extensions.Referer(c)

	return &BookingScraper{
		opts:      opts,
		collector: c,
		logger:    logger.With("source", models.SourceBooking),
	}, nil
}

var _ scraper.Source = (*BookingScraper)(nil)

// Name implements scraper.Source
func (s *BookingScraper) Name() string {
	return models.SourceBooking
}

// SearchURL builds the search results URL for the criteria, cheapest first
func SearchURL(baseURL string, c models.SearchCriteria) string {
	guests := c.Guests
	if guests < 1 {
		guests = 1
	}
	q := url.Values{}
	q.Set("ss", c.Location)
	q.Set("checkin", c.CheckIn.Format("2006-01-02"))
	q.Set("checkout", c.CheckOut.Format("2006-01-02"))
	q.Set("group_adults", strconv.Itoa(guests))
	q.Set("no_rooms", "1")
	q.Set("group_children", "0")
	q.Set("order", "price")
	return strings.TrimSuffix(baseURL, "/") + "/searchresults.html?" + q.Encode()
}

type card struct {
	Title   string
	Price   string
	Address string
	Review  string
	URL     string
	Unit    string
}

// Search implements scraper.Source
func (s *BookingScraper) Search(ctx context.Context, criteria models.SearchCriteria) ([]*models.RawListing, error) {
	collector := s.collector.Clone()
	collector.Context = ctx

	var (
		mu      sync.Mutex
		cards   []card
		pageErr error
	)

	collector.OnHTML(`[data-testid="property-card"]`, func(e *colly.HTMLElement) {
		mu.Lock()
		defer mu.Unlock()
		if len(cards) >= s.opts.MaxListings {
			return
		}
		link := e.ChildAttr(`a[data-testid="title-link"]`, "href")
		if link == "" {
			link = e.ChildAttr("a", "href")
		}
		cards = append(cards, card{
			Title:   e.ChildText(`[data-testid="title"]`),
			Price:   e.ChildText(`[data-testid="price-and-discounted-price"]`),
			Address: e.ChildText(`[data-testid="address"]`),
			Review:  e.ChildText(`[data-testid="review-score"]`),
			URL:     e.Request.AbsoluteURL(link),
			Unit:    e.ChildText(`[data-testid="recommended-units"] h4`),
		})
	})

	collector.OnError(func(r *colly.Response, err error) {
		pageErr = fmt.Errorf("request to %s failed with status %d: %w", r.Request.URL, r.StatusCode, err)
	})

	searchURL := SearchURL(s.opts.BaseURL, criteria)
	s.logger.Info("Searching %s", searchURL)
	if err := collector.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("failed to visit search page: %w", err)
	}
	collector.Wait()

	if pageErr != nil {
		return nil, pageErr
	}
	if len(cards) == 0 {
		return nil, scraper.ErrNoResults
	}
	return toRawListings(cards, criteria, time.Now()), nil
}

func toRawListings(cards []card, criteria models.SearchCriteria, now time.Time) []*models.RawListing {
	listings := make([]*models.RawListing, 0, len(cards))
	for _, c := range cards {
		listings = append(listings, &models.RawListing{
			Source:       models.SourceBooking,
			Title:        c.Title,
			RawPrice:     c.Price,
			Location:     c.Address,
			RawRating:    reviewText(c.Review),
			RatingScale:  ratingScale,
			URL:          c.URL,
			PropertyType: propertyTypeOf(c.Unit, criteria.PropertyType),
			ScrapedAt:    now,
		})
	}
	return listings
}

// reviewText turns "Scored 8.7 8.7 Excellent 1,234 reviews" into "8.7 (1,234)"
func reviewText(raw string) string {
	raw = strings.TrimSpace(raw)
	score := scoreRegex.FindString(raw)
	if score == "" {
		return ""
	}
	score = strings.Replace(score, ",", ".", 1)
	if i := strings.Index(strings.ToLower(raw), "review"); i > 0 {
		fields := strings.Fields(raw[:i])
		if len(fields) > 0 {
			return fmt.Sprintf("%s (%s)", score, fields[len(fields)-1])
		}
	}
	return score
}

func propertyTypeOf(unit string, requested models.PropertyType) models.PropertyType {
	u := strings.ToLower(unit)
	switch {
	case strings.Contains(u, "apartment"), strings.Contains(u, "studio"):
		return models.PropertyApartment
	case strings.Contains(u, "shared"), strings.Contains(u, "dormitory"):
		return models.PropertySharedRoom
	case strings.Contains(u, "room"):
		return models.PropertyHotelRoom
	case strings.Contains(u, "villa"), strings.Contains(u, "house"), strings.Contains(u, "holiday home"):
		return models.PropertyEntirePlace
	}
	if requested == "" {
		return models.PropertyApartment
	}
	return requested
}

// Details implements scraper.Source by reading the property page
func (s *BookingScraper) Details(ctx context.Context, propertyURL string) (*models.ExtendedAttributes, error) {
	collector := s.collector.Clone()
	collector.Context = ctx

	var (
		page     scraper.DetailPage
		found    bool
		fetchErr error
	)

	collector.OnHTML("body", func(e *colly.HTMLElement) {
		found = true
		page = scraper.DetailPage{
			Description:        e.ChildText(`[data-testid="property-description"]`),
			Facts:              e.ChildTexts(`[data-testid="property-highlights"] li, [data-testid="price-breakdown"] div`),
			Rating:             reviewText(e.ChildText(`[data-testid="review-score-component"]`)),
			RatingScale:        ratingScale,
			HostName:           e.ChildText(`[data-testid="host-name"]`),
			HostRating:         e.ChildText(`[data-testid="host-rating"]`),
			HostResponseTime:   e.ChildText(`[data-testid="response-time"]`),
			Amenities:          e.ChildTexts(`[data-testid="property-most-popular-facilities-wrapper"] li`),
			PropertyFeatures:   e.ChildTexts(`[data-testid="property-section--content"] li`),
			HouseRules:         e.ChildTexts(`[data-testid="HouseRules-wrapper"] li`),
			CancellationPolicy: e.ChildText(`[data-testid="cancellation-policy"]`),
		}
		if e.DOM.Find(`[data-testid="instant-confirmation"]`).Length() > 0 {
			page.Facts = append(page.Facts, "Instant booking")
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("request to %s failed with status %d: %w", r.Request.URL, r.StatusCode, err)
	})

	if err := collector.Visit(propertyURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", propertyURL, err)
	}
	collector.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	if !found {
		return nil, fmt.Errorf("no property page content at %s", propertyURL)
	}
	return page.Attributes(), nil
}
