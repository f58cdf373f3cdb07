package model

import (
	"context"
	"strings"
	"time"
)

// Status is the lifecycle state of a Lead. The set is closed: every status
// stored or accepted from callers must be one of the constants below.
type Status string

const (
	StatusNew           Status = "new"
	StatusActivated     Status = "activated"
	StatusResearched    Status = "researched"
	StatusLetterDrafted Status = "letter_drafted"
	StatusContacted     Status = "contacted"
	StatusReplied       Status = "replied"
)

// AllStatuses returns the status enumeration in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusNew,
		StatusActivated,
		StatusResearched,
		StatusLetterDrafted,
		StatusContacted,
		StatusReplied,
	}
}

// ParseStatus validates a raw status string against the enumeration.
func ParseStatus(raw string) (Status, error) {
	for _, s := range AllStatuses() {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", &InvalidStatusError{Value: raw}
}

// Lead is the persistent entity tracking a prospective outreach target.
// Keywords are stored comma-delimited; use KeywordList/SetKeywords at the
// boundary. Concurrent writes to the same lead are not guarded; the store
// assumes one caller operates on one lead at a time.
type Lead struct {
	ID int64

	// Job posting data, copied from a JobRecord at import time.
	Title     string
	Source    string
	SourceURL string
	Keywords  string
	Preview   string
	FullText  string
	Location  string

	// Company enrichment.
	CompanyName    string
	CompanyWebsite string
	CompanyAddress string
	CompanyEmail   string

	// Contact person.
	ContactName       string
	ContactRole       string
	ContactProfileURL string
	ContactSource     string

	CoverLetter string

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// KeywordList splits the stored comma-delimited keywords into a list.
func (l *Lead) KeywordList() []string {
	if l.Keywords == "" {
		return nil
	}
	parts := strings.Split(l.Keywords, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SetKeywords stores a keyword list in the internal delimited form.
func (l *Lead) SetKeywords(kws []string) {
	l.Keywords = strings.Join(kws, ",")
}

// NewLeadFromJob copies the job posting fields of a JobRecord into a fresh
// Lead in status "new".
func NewLeadFromJob(j JobRecord) *Lead {
	l := &Lead{
		Title:       j.Title,
		Source:      j.Source,
		SourceURL:   j.URL,
		Preview:     j.Preview,
		Location:    j.Location,
		CompanyName: j.Company,
		Status:      StatusNew,
	}
	if l.Source == "" {
		l.Source = "StepStone"
	}
	l.SetKeywords(j.Keywords)
	return l
}

// ResearchRequest identifies the company a Researcher should look up.
type ResearchRequest struct {
	CompanyName string
	JobTitle    string
	Location    string
}

// CompanyResearch is the enrichment returned by a Researcher. A nil field
// means "not found" and must never overwrite existing lead data.
type CompanyResearch struct {
	Website           *string
	Address           *string
	Email             *string
	ContactName       *string
	ContactRole       *string
	ContactProfileURL *string
}

// LeadStore persists leads. Find methods return (nil, nil) when no lead
// matches; Get returns ErrNotFound.
type LeadStore interface {
	Create(lead *Lead) (*Lead, error)
	Get(id int64) (*Lead, error)
	Update(lead *Lead) error
	Delete(id int64) error
	List(filter ListFilter) ([]Lead, error)
	FindBySourceURL(url string) (*Lead, error)
	FindByTitle(title string) (*Lead, error)
	CountByStatus() (map[Status]int, error)
}

// ListFilter narrows LeadStore.List. Zero values mean "no filtering".
type ListFilter struct {
	Status  Status
	Keyword string // substring match against the stored keywords
}

// Researcher looks up best-effort company and contact data.
type Researcher interface {
	Research(ctx context.Context, req ResearchRequest) (*CompanyResearch, error)
}

// Notifier announces newly imported leads.
type Notifier interface {
	Notify(leads []Lead) error
}
