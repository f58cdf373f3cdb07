package stepstone

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"leadscout/internal/keywords"
	"leadscout/internal/model"
	"leadscout/internal/ratelimit"
)

// maxSearchPages caps how many result pages a single search may fetch.
const maxSearchPages = 3

// browserHeaders mimic a regular browser; StepStone blocks obvious bots.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "de-DE,de;q=0.9,en-US;q=0.8,en;q=0.7",
}

// Client retrieves and normalizes StepStone job listings. Pages are
// fetched strictly sequentially; the shared host limiter enforces the
// polite delay between requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.HostLimiter
	tagger     *keywords.Tagger
	logger     *slog.Logger
}

// NewClient creates a StepStone client. baseURL defaults to the public
// site when empty.
func NewClient(baseURL string, httpClient *http.Client, limiter *ratelimit.HostLimiter, tagger *keywords.Tagger, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		limiter:    limiter,
		tagger:     tagger,
		logger:     logger,
	}
}

// SearchParams drives one multi-page search.
type SearchParams struct {
	SearchQuery
	MaxPages    int    // clamped to 1..3
	TitleFilter string // case-insensitive substring filter on titles
}

// Search retrieves up to MaxPages of results, stopping early on the first
// page without recognizable cards. Records are deduplicated by URL,
// first-seen order preserved. A fetch failure aborts the traversal and
// returns everything gathered so far together with the error; a page that
// merely fails to parse is treated as the end of the results.
func (c *Client) Search(ctx context.Context, p SearchParams) ([]model.JobRecord, error) {
	maxPages := p.MaxPages
	if maxPages < 1 {
		maxPages = 1
	}
	if maxPages > maxSearchPages {
		maxPages = maxSearchPages
	}

	var gathered []model.JobRecord
	for page := 1; page <= maxPages; page++ {
		q := p.SearchQuery
		q.Page = page
		pageURL := BuildSearchURL(c.baseURL, q)

		doc, err := c.fetchPage(ctx, pageURL)
		if err != nil {
			c.logger.Error("page fetch failed, returning partial results",
				"page", page, "url", pageURL, "error", err)
			return dedupeByURL(gathered), err
		}

		jobs := parseSearchResults(doc, c.baseURL, c.tagger)
		if len(jobs) == 0 {
			// No cards on this page: end of results, not an error.
			c.logger.Debug("empty page, stopping", "page", page)
			break
		}

		if p.TitleFilter != "" {
			jobs = filterByTitle(jobs, p.TitleFilter)
		}
		gathered = append(gathered, jobs...)

		c.logger.Debug("page parsed", "page", page, "jobs", len(jobs))
	}

	return dedupeByURL(gathered), nil
}

// fetchPage waits for the polite delay, issues the GET, and parses the
// body. Non-2xx responses and transport failures become FetchErrors.
func (c *Client) fetchPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx, pageURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &model.FetchError{URL: pageURL, Err: err}
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &model.FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.FetchError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &model.FetchError{URL: pageURL, Err: fmt.Errorf("parse body: %w", err)}
	}
	return doc, nil
}

// FetchJobDetail retrieves a single posting page and extracts the full
// description and company website.
func (c *Client) FetchJobDetail(ctx context.Context, jobURL string) (*model.JobDetail, error) {
	doc, err := c.fetchPage(ctx, jobURL)
	if err != nil {
		return nil, err
	}
	return parseJobDetail(doc, c.tagger), nil
}

// filterByTitle keeps jobs whose title contains the filter, case-insensitively.
func filterByTitle(jobs []model.JobRecord, filter string) []model.JobRecord {
	lower := strings.ToLower(filter)
	out := jobs[:0:0]
	for _, j := range jobs {
		if strings.Contains(strings.ToLower(j.Title), lower) {
			out = append(out, j)
		}
	}
	return out
}

// dedupeByURL removes records sharing a source URL, keeping the first.
func dedupeByURL(jobs []model.JobRecord) []model.JobRecord {
	if len(jobs) == 0 {
		return jobs
	}
	seen := make(map[string]bool, len(jobs))
	out := make([]model.JobRecord, 0, len(jobs))
	for _, j := range jobs {
		if seen[j.URL] {
			continue
		}
		seen[j.URL] = true
		out = append(out, j)
	}
	return out
}
