package scraper

import (
	"time"

	"stay-scout/models"
)

func testCriteria() models.SearchCriteria {
	return models.NewSearchCriteria("Bar, Montenegro",
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC), 2, 40)
}
