package stepstone

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultBaseURL is the StepStone site origin; the search path lives under /jobs.
const DefaultBaseURL = "https://www.stepstone.de"

const searchPath = "/jobs"

// validDateFilters are the recency windows (in days) StepStone accepts.
var validDateFilters = []int{1, 3, 7, 14, 30}

// ValidDateFilter reports whether days is an accepted recency window.
// Zero means "no date filter" and is always valid.
func ValidDateFilter(days int) bool {
	if days == 0 {
		return true
	}
	for _, d := range validDateFilters {
		if d == days {
			return true
		}
	}
	return false
}

// SearchQuery holds the parameters of one search-results page.
type SearchQuery struct {
	Keywords   string // free-text search terms
	Location   string // city or region name
	Radius     int    // search radius in km, 0 = omit
	Page       int    // page number, 1-based
	DateFilter int    // days since posting (1/3/7/14/30), 0 = omit
}

// BuildSearchURL constructs the search URL for the given query. Keywords
// and location become percent-encoded path segments (location prefixed
// with "in-"); radius, page (only beyond the first), and the date filter
// become query parameters. The result is deterministic for equal inputs.
func BuildSearchURL(baseURL string, q SearchQuery) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(baseURL, "/"))
	b.WriteString(searchPath)

	if q.Keywords != "" {
		b.WriteString("/")
		b.WriteString(url.QueryEscape(q.Keywords))
	}
	if q.Location != "" {
		b.WriteString("/in-")
		b.WriteString(url.QueryEscape(q.Location))
	}

	params := url.Values{}
	if q.Radius > 0 {
		params.Set("radius", strconv.Itoa(q.Radius))
	}
	if q.Page > 1 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.DateFilter > 0 {
		params.Set("age", strconv.Itoa(q.DateFilter))
	}

	if len(params) > 0 {
		b.WriteString("?")
		b.WriteString(params.Encode())
	}

	return b.String()
}
