package stepstone

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"leadscout/internal/keywords"
	"leadscout/internal/model"
)

// maxPreviewLen bounds the stored snippet text.
const maxPreviewLen = 500

// cardSelectors is the prioritized cascade of structural selectors for job
// cards. StepStone has shipped several markup variants for the same
// logical page; the first selector that yields any match wins. The last
// entry falls back to bare posting links.
var cardSelectors = []string{
	`article[data-testid="job-item"]`,
	`article.job-element`,
	`[data-at="job-item"]`,
	`a[href*="/stellenangebote--"]`,
}

const (
	titleSelector    = `h2, h3, [data-at="job-item-title"], .job-element-title`
	companySelector  = `[data-at="job-item-company-name"], .job-element-company, [data-testid="company-name"]`
	locationSelector = `[data-at="job-item-location"], .job-element-location, [data-testid="job-item-location"]`
	linkSelector     = `a[href*="/stellenangebote"]`
	snippetSelector  = `[data-at="job-item-snippet"], .job-element-snippet, [data-testid="job-item-snippet"]`
	dateSelector     = `[data-at="job-item-date"], .job-element-date, time`
)

// findJobCards applies the selector cascade and returns the matches of the
// first selector that hits, or nil when the page has no recognizable cards.
func findJobCards(doc *goquery.Document) *goquery.Selection {
	for _, sel := range cardSelectors {
		if cards := doc.Find(sel); cards.Length() > 0 {
			return cards
		}
	}
	return nil
}

// parseSearchResults extracts all job records from one search-results
// document. A card that cannot be normalized is skipped; it never aborts
// the page.
func parseSearchResults(doc *goquery.Document, baseURL string, tagger *keywords.Tagger) []model.JobRecord {
	cards := findJobCards(doc)
	if cards == nil {
		return nil
	}

	var jobs []model.JobRecord
	cards.Each(func(_ int, card *goquery.Selection) {
		if job, ok := extractJob(card, baseURL, tagger); ok {
			jobs = append(jobs, job)
		}
	})
	return jobs
}

// extractJob normalizes a single card into a JobRecord. Title and URL are
// mandatory; a card missing either is discarded (ok = false). Every other
// field is independently optional.
func extractJob(card *goquery.Selection, baseURL string, tagger *keywords.Tagger) (model.JobRecord, bool) {
	job := model.JobRecord{Source: "StepStone"}

	if title := cleanText(card.Find(titleSelector).First().Text()); title != "" {
		job.Title = title
	} else if goquery.NodeName(card) == "a" {
		// Link-based fallback cards carry the title as their own text.
		job.Title = cleanText(card.Text())
	}
	if job.Title == "" {
		return model.JobRecord{}, false
	}

	job.Company = cleanText(card.Find(companySelector).First().Text())
	job.Location = cleanText(card.Find(locationSelector).First().Text())

	link := card.Find(linkSelector).First()
	if link.Length() == 0 && goquery.NodeName(card) == "a" {
		link = card
	}
	if href, ok := link.Attr("href"); ok {
		job.URL = resolveURL(baseURL, href)
	}
	if job.URL == "" {
		return model.JobRecord{}, false
	}

	if snippet := cleanText(card.Find(snippetSelector).First().Text()); snippet != "" {
		job.Preview = truncate(snippet, maxPreviewLen)
	}

	job.Posted = cleanText(card.Find(dateSelector).First().Text())

	if tagger != nil {
		job.Keywords = tagger.Match(job.Title)
	}

	return job, true
}

// resolveURL turns a card link into an absolute URL. Root-relative paths
// get the site origin prefixed; bare relative paths are joined with a slash.
func resolveURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "/"):
		return strings.TrimSuffix(baseURL, "/") + href
	default:
		return strings.TrimSuffix(baseURL, "/") + "/" + href
	}
}

// cleanText trims and collapses all whitespace runs to single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate caps s at max characters, never splitting a multi-byte rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// parseJobDetail extracts the full description and company website from a
// single posting page.
func parseJobDetail(doc *goquery.Document, tagger *keywords.Tagger) *model.JobDetail {
	detail := &model.JobDetail{}

	content := doc.Find(`[data-at="job-ad-content"], .job-ad-content, [data-testid="job-ad-content"], .listing-content`).First()
	if content.Length() > 0 {
		detail.FullText = cleanText(content.Text())
	}

	companyInfo := doc.Find(`[data-at="company-info"], .company-info, [data-testid="company-info"]`).First()
	if companyInfo.Length() > 0 {
		companyInfo.Find(`a[href*="http"]`).EachWithBreak(func(_ int, link *goquery.Selection) bool {
			href, _ := link.Attr("href")
			if href != "" && !strings.Contains(href, "stepstone") {
				detail.CompanyWebsite = href
				return false
			}
			return true
		})
	}

	if tagger != nil && detail.FullText != "" {
		detail.Keywords = tagger.Match(detail.FullText)
	}

	return detail
}
