package utils

import (
	"net/url"
	"strings"
	"sync"
)

// URLTracker tracks visited listing URLs so a page is not scraped twice
type URLTracker struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewURLTracker creates a new tracker
func NewURLTracker() *URLTracker {
	return &URLTracker{seen: make(map[string]struct{})}
}

// Add returns true if the URL is new (not seen before), false if duplicate
func (t *URLTracker) Add(rawURL string) bool {
	key := CanonicalURL(rawURL)
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.seen[key]; exists {
		return false
	}
	t.seen[key] = struct{}{}
	return true
}

// Count returns the number of tracked URLs
func (t *URLTracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}

// CanonicalURL strips the query string and fragment so tracking parameters
// (check-in dates, search ids) do not split one property into several
func CanonicalURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.Host = strings.ToLower(u.Host)
	return strings.TrimSuffix(u.String(), "/")
}
