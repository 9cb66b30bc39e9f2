package airbnb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"stay-scout/models"
	"stay-scout/scraper"
	"stay-scout/utils"

	"github.com/chromedp/chromedp"
)

// Options configures the Airbnb source
type Options struct {
	BaseURL     string
	Headless    bool
	MaxListings int
	MaxPages    int
}

// AirbnbScraper drives a headless Chrome through Airbnb search and listing pages.
// One browser, one tab: calls are serialized.
type AirbnbScraper struct {
	opts   Options
	logger *utils.Logger

	mu        sync.Mutex
	browser   context.Context
	closeFunc context.CancelFunc
}

// NewAirbnbScraper creates a new AirbnbScraper. The browser starts on first use.
func NewAirbnbScraper(opts Options, logger *utils.Logger) *AirbnbScraper {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://www.airbnb.com"
	}
	if opts.MaxListings < 1 {
		opts.MaxListings = 20
	}
	if opts.MaxPages < 1 {
		opts.MaxPages = 3
	}
	return &AirbnbScraper{opts: opts, logger: logger.With("source", models.SourceAirbnb)}
}

var _ scraper.Source = (*AirbnbScraper)(nil)

// Name implements scraper.Source
func (s *AirbnbScraper) Name() string {
	return models.SourceAirbnb
}

// newBrowser creates a fresh chromedp browser context
func (s *AirbnbScraper) newBrowser() (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("log-level", "3"), // suppress Chrome logs
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		chromedp.WindowSize(1280, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}
	return ctx, cancel
}

// run executes actions on the shared tab, bounded by ctx
func (s *AirbnbScraper) run(ctx context.Context, actions ...chromedp.Action) error {
	if s.browser == nil {
		s.browser, s.closeFunc = s.newBrowser()
		// the first Run allocates the browser and ties it to the context it is given
		if err := chromedp.Run(s.browser); err != nil {
			s.closeFunc()
			s.browser, s.closeFunc = nil, nil
			return fmt.Errorf("failed to start browser: %w", err)
		}
	}
	tabCtx, cancel := context.WithCancel(s.browser)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(tabCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// Close shuts the browser down
func (s *AirbnbScraper) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closeFunc != nil {
		s.closeFunc()
		s.browser, s.closeFunc = nil, nil
	}
}

// SearchURL builds the search results URL for the criteria
func SearchURL(baseURL string, c models.SearchCriteria) string {
	q := url.Values{}
	q.Set("checkin", c.CheckIn.Format("2006-01-02"))
	q.Set("checkout", c.CheckOut.Format("2006-01-02"))
	q.Set("adults", strconv.Itoa(c.Guests))
	if c.MaxPricePerNight > 0 {
		q.Set("price_max", strconv.Itoa(int(c.MaxPricePerNight)))
	}
	switch c.PropertyType {
	case models.PropertyEntirePlace, models.PropertyApartment:
		q.Set("room_types[]", "Entire home/apt")
	case models.PropertyPrivateRoom:
		q.Set("room_types[]", "Private room")
	case models.PropertySharedRoom:
		q.Set("room_types[]", "Shared room")
	case models.PropertyHotelRoom:
		q.Set("room_types[]", "Hotel room")
	}
	return fmt.Sprintf("%s/s/%s/homes?%s", strings.TrimSuffix(baseURL, "/"), url.PathEscape(c.Location), q.Encode())
}

// Search implements scraper.Source, paginating until MaxListings cards are collected
func (s *AirbnbScraper) Search(ctx context.Context, criteria models.SearchCriteria) ([]*models.RawListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pageURL := SearchURL(s.opts.BaseURL, criteria)
	var listings []*models.RawListing
	for page := 1; page <= s.opts.MaxPages && pageURL != ""; page++ {
		s.logger.Info("Search page %d (have %d/%d)...", page, len(listings), s.opts.MaxListings)

		cards, next, err := s.scrapePage(ctx, pageURL)
		if err != nil {
			if len(listings) > 0 {
				s.logger.Warn("Page %d error, keeping %d listings: %v", page, len(listings), err)
				break
			}
			return nil, err
		}
		if len(cards) == 0 {
			s.logger.Warn("No listings found on page %d", page)
			break
		}
		listings = append(listings, toRawListings(cards, criteria, time.Now())...)
		if len(listings) >= s.opts.MaxListings {
			listings = listings[:s.opts.MaxListings]
			break
		}
		pageURL = next
	}

	if len(listings) == 0 {
		return nil, scraper.ErrNoResults
	}
	return listings, nil
}

type cardData struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Rating   string `json:"rating"`
	URL      string `json:"url"`
	Location string `json:"location"`
	Subtitle string `json:"subtitle"`
}

// scrapePage navigates to a search results page and extracts listing cards
func (s *AirbnbScraper) scrapePage(ctx context.Context, pageURL string) ([]cardData, string, error) {
	var cards []cardData
	var next string

	err := s.run(ctx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(4*time.Second), // wait for JS render
		chromedp.Evaluate(cardsJS, &cards),
		chromedp.Evaluate(nextPageJS, &next),
	)
	if err != nil {
		return nil, "", fmt.Errorf("search page failed: %w", err)
	}
	return cards, next, nil
}

func toRawListings(cards []cardData, criteria models.SearchCriteria, now time.Time) []*models.RawListing {
	listings := make([]*models.RawListing, 0, len(cards))
	for _, c := range cards {
		listings = append(listings, &models.RawListing{
			Source:       models.SourceAirbnb,
			Title:        c.Title,
			RawPrice:     c.Price,
			Location:     c.Location, // empty is dropped by the normalizer
			RawRating:    c.Rating,
			RatingScale:  5,
			URL:          c.URL,
			PropertyType: propertyTypeOf(c.Subtitle, criteria.PropertyType),
			ScrapedAt:    now,
		})
	}
	return listings
}

// propertyTypeOf reads the card subtitle ("Private room in Bar"), falling back to the requested type
func propertyTypeOf(subtitle string, requested models.PropertyType) models.PropertyType {
	s := strings.ToLower(subtitle)
	switch {
	case strings.HasPrefix(s, "private room"):
		return models.PropertyPrivateRoom
	case strings.HasPrefix(s, "shared room"):
		return models.PropertySharedRoom
	case strings.HasPrefix(s, "hotel room"), strings.HasPrefix(s, "room in hotel"):
		return models.PropertyHotelRoom
	case strings.HasPrefix(s, "apartment"), strings.HasPrefix(s, "condo"):
		return models.PropertyApartment
	case strings.HasPrefix(s, "entire"), strings.HasPrefix(s, "home"), strings.HasPrefix(s, "villa"):
		return models.PropertyEntirePlace
	}
	if requested == "" {
		return models.PropertyEntirePlace
	}
	return requested
}

type detailPayload struct {
	Description  string   `json:"description"`
	Facts        []string `json:"facts"`
	Rating       string   `json:"rating"`
	HostName     string   `json:"hostName"`
	HostRating   string   `json:"hostRating"`
	ResponseTime string   `json:"responseTime"`
	Amenities    []string `json:"amenities"`
	Highlights   []string `json:"highlights"`
	Rules        []string `json:"rules"`
	Cancellation string   `json:"cancellation"`
}

func (p detailPayload) page() scraper.DetailPage {
	return scraper.DetailPage{
		Description:        p.Description,
		Facts:              p.Facts,
		Rating:             p.Rating,
		RatingScale:        5,
		HostName:           strings.TrimPrefix(strings.TrimSpace(p.HostName), "Hosted by "),
		HostRating:         p.HostRating,
		HostResponseTime:   p.ResponseTime,
		Amenities:          p.Amenities,
		PropertyFeatures:   p.Highlights,
		HouseRules:         p.Rules,
		CancellationPolicy: p.Cancellation,
	}
}

// Details implements scraper.Source by reading the listing page
func (s *AirbnbScraper) Details(ctx context.Context, listingURL string) (*models.ExtendedAttributes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("Fetching details: %s", listingURL)
	var payload detailPayload
	err := s.run(ctx,
		chromedp.Navigate(listingURL),
		chromedp.Sleep(3*time.Second),
		chromedp.Evaluate(detailJS, &payload),
	)
	if err != nil {
		return nil, fmt.Errorf("detail page failed: %w", err)
	}
	return payload.page().Attributes(), nil
}

const cardsJS = `
(function() {
	var cards = [];

	// Approach A: data-testid="card-container"
	var containers = document.querySelectorAll('[data-testid="card-container"]');

	// Approach B: itemprop listing items
	if (containers.length === 0) {
		containers = document.querySelectorAll('[itemprop="itemListElement"]');
	}

	containers.forEach(function(card) {
		var titleEl = card.querySelector('[data-testid="listing-card-name"]') ||
		              card.querySelector('[data-testid="listing-card-title"]') ||
		              card.querySelector('[itemprop="name"]');
		var title = titleEl ? titleEl.innerText.trim() : '';

		var subtitleEl = card.querySelector('[data-testid="listing-card-title"]');
		var subtitle = subtitleEl ? subtitleEl.innerText.trim() : '';

		var price = '';
		var priceEl = card.querySelector('[data-testid="price-availability-row"] span') ||
		              card.querySelector('[aria-label*="per night"]');
		if (priceEl) price = priceEl.innerText.trim();
		if (!price) {
			var spans = card.querySelectorAll('span');
			for (var i = 0; i < spans.length; i++) {
				var t = spans[i].innerText.trim();
				if (/^[$€£]/.test(t) && t.length < 40) { price = t; break; }
			}
		}

		// "4.85 (120)"
		var rating = '';
		var ratingEl = card.querySelector('[aria-label*="out of 5"]');
		if (ratingEl) rating = ratingEl.innerText.trim();

		var linkEl = card.querySelector('a[href*="/rooms/"]');
		var url = linkEl ? linkEl.href : '';

		var location = '';
		if (subtitle.includes(' in ')) {
			location = subtitle.split(' in ').slice(1).join(' in ');
		}

		if (title || url) {
			cards.push({title: title, price: price, rating: rating, url: url, location: location, subtitle: subtitle});
		}
	});

	return cards;
})()
`

const nextPageJS = `
(function() {
	var btn = document.querySelector('a[aria-label="Next"]') ||
	          document.querySelector('[data-testid="pagination-next-btn"]');
	return btn ? btn.href : '';
})()
`

const detailJS = `
(function() {
	function text(sel) {
		var el = document.querySelector(sel);
		return el ? el.innerText.trim() : '';
	}
	function texts(sel) {
		return Array.from(document.querySelectorAll(sel)).map(function(el) { return el.innerText.trim(); });
	}
	var facts = texts('[data-section-id="OVERVIEW_DEFAULT_V2"] li')
		.concat(texts('[data-testid="price-item"]'))
		.concat(texts('[data-section-id="BOOK_IT_SIDEBAR"] [data-testid*="fee"]'));
	return {
		description:  text('[data-section-id="DESCRIPTION_DEFAULT"] span'),
		facts:        facts,
		rating:       text('[data-testid="pdp-reviews-highlight-banner-host-rating"]') || text('[data-section-id="GUEST_FAVORITE_BANNER"]'),
		hostName:     text('[data-section-id="HOST_OVERVIEW_DEFAULT"] h2') || text('[data-section-id="MEET_YOUR_HOST"] h2'),
		hostRating:   text('[data-section-id="MEET_YOUR_HOST"] [data-testid="Rating-stat-heading"]'),
		responseTime: text('[data-section-id="MEET_YOUR_HOST"] [data-testid="response-time"]'),
		amenities:    texts('[data-section-id="AMENITIES_DEFAULT"] [id^="pdp_v3_"] div:first-child'),
		highlights:   texts('[data-section-id="HIGHLIGHTS_DEFAULT"] h3'),
		rules:        texts('[data-section-id="POLICIES_DEFAULT"] [data-testid="house-rules"] li'),
		cancellation: text('[data-section-id="POLICIES_DEFAULT"] [data-testid="cancellation-policy"]')
	};
})()
`
