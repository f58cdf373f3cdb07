package model

// JobRecord is the normalized representation of one scraped job posting.
// It is transient: retrieval produces it, import turns it into a Lead.
type JobRecord struct {
	Title    string   // job title (mandatory)
	Company  string   // company name
	Location string   // location string
	URL      string   // absolute posting URL (mandatory, dedup key)
	Preview  string   // snippet text, capped at 500 chars
	Posted   string   // raw posting-date text as shown on the page
	Keywords []string // vocabulary terms matched in the title
	Source   string   // job board name, e.g. "StepStone"
}

// JobDetail holds extra data scraped from a single posting page.
type JobDetail struct {
	FullText       string   // full job description text
	CompanyWebsite string   // external company link, if the page has one
	Keywords       []string // vocabulary terms matched in the full text
}
