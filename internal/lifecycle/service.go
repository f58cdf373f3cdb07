// Package lifecycle enforces the lead status transitions and their side
// effects: importing scraped jobs, activation, research enrichment,
// cover-letter generation, and status overrides.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"leadscout/internal/letter"
	"leadscout/internal/model"
)

// Service owns the lead lifecycle. All mutations go through the store,
// which refreshes the lead's UpdatedAt; a failed guard leaves the lead
// untouched.
type Service struct {
	store      model.LeadStore
	researcher model.Researcher // nil when research is unconfigured
	logger     *slog.Logger
}

// NewService wires the lifecycle with its dependencies. researcher may be
// nil; Research then fails with ErrNotConfigured.
func NewService(store model.LeadStore, researcher model.Researcher, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		researcher: researcher,
		logger:     logger,
	}
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Imported int
	Skipped  int
	Leads    []model.Lead // the newly created leads, in input order
}

// Import turns scraped job records into new leads. Records matching an
// existing lead by source URL, or failing that by title, are skipped.
// An empty input is a validation error.
func (s *Service) Import(jobs []model.JobRecord) (ImportResult, error) {
	if len(jobs) == 0 {
		return ImportResult{}, &model.ValidationError{Msg: "no jobs to import"}
	}

	var res ImportResult
	for _, job := range jobs {
		existing, err := s.findExisting(job)
		if err != nil {
			return res, fmt.Errorf("import dedup check: %w", err)
		}
		if existing != nil {
			res.Skipped++
			continue
		}

		created, err := s.store.Create(model.NewLeadFromJob(job))
		if err != nil {
			return res, fmt.Errorf("import create lead: %w", err)
		}
		res.Imported++
		res.Leads = append(res.Leads, *created)
	}

	s.logger.Info("jobs imported", "imported", res.Imported, "skipped", res.Skipped)
	return res, nil
}

func (s *Service) findExisting(job model.JobRecord) (*model.Lead, error) {
	if job.URL != "" {
		if l, err := s.store.FindBySourceURL(job.URL); err != nil || l != nil {
			return l, err
		}
	}
	return s.store.FindByTitle(job.Title)
}

// AttachDetail enriches a lead with data from the full job posting page:
// the complete posting text, the company website when one was linked, and
// any keywords the longer text surfaced. The lead's status is untouched.
func (s *Service) AttachDetail(id int64, detail *model.JobDetail) (*model.Lead, error) {
	lead, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	if detail.FullText != "" {
		lead.FullText = detail.FullText
	}
	if detail.CompanyWebsite != "" && lead.CompanyWebsite == "" {
		lead.CompanyWebsite = detail.CompanyWebsite
	}
	if len(detail.Keywords) > 0 {
		lead.SetKeywords(mergeKeywords(lead.KeywordList(), detail.Keywords))
	}

	if err := s.store.Update(lead); err != nil {
		return nil, fmt.Errorf("attach detail to lead %d: %w", id, err)
	}
	return lead, nil
}

func mergeKeywords(existing, extra []string) []string {
	seen := make(map[string]bool, len(existing))
	merged := existing
	for _, k := range existing {
		seen[k] = true
	}
	for _, k := range extra {
		if !seen[k] {
			seen[k] = true
			merged = append(merged, k)
		}
	}
	return merged
}

// Activate moves a new lead into the pipeline. Only valid from "new".
func (s *Service) Activate(id int64) (*model.Lead, error) {
	lead, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	if lead.Status != model.StatusNew {
		return nil, &model.InvalidTransitionError{Action: "activate", Status: lead.Status}
	}

	lead.Status = model.StatusActivated
	if err := s.store.Update(lead); err != nil {
		return nil, fmt.Errorf("activate lead %d: %w", id, err)
	}
	return lead, nil
}

// Research enriches an activated lead with company and contact data from
// the research collaborator. Only non-nil result fields overwrite the
// lead; a "not found" never erases previously known data.
func (s *Service) Research(ctx context.Context, id int64) (*model.Lead, error) {
	lead, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	if lead.Status != model.StatusActivated {
		return nil, &model.InvalidTransitionError{Action: "research", Status: lead.Status}
	}

	if s.researcher == nil {
		return nil, model.ErrNotConfigured
	}

	company := lead.CompanyName
	if company == "" {
		company = "Unknown"
	}
	res, err := s.researcher.Research(ctx, model.ResearchRequest{
		CompanyName: company,
		JobTitle:    lead.Title,
		Location:    lead.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("research lead %d: %w", id, err)
	}

	mergeResearch(lead, res)
	lead.Status = model.StatusResearched

	if err := s.store.Update(lead); err != nil {
		return nil, fmt.Errorf("research lead %d: %w", id, err)
	}
	return lead, nil
}

// mergeResearch applies only the fields the researcher actually found.
func mergeResearch(lead *model.Lead, res *model.CompanyResearch) {
	if res == nil {
		return
	}
	if res.Website != nil {
		lead.CompanyWebsite = *res.Website
	}
	if res.Address != nil {
		lead.CompanyAddress = *res.Address
	}
	if res.Email != nil {
		lead.CompanyEmail = *res.Email
	}
	if res.ContactName != nil {
		lead.ContactName = *res.ContactName
	}
	if res.ContactRole != nil {
		lead.ContactRole = *res.ContactRole
	}
	if res.ContactProfileURL != nil {
		lead.ContactProfileURL = *res.ContactProfileURL
		lead.ContactSource = "LinkedIn (research)"
	}
}

// letterStatuses are the states from which a cover letter may be
// (re)generated.
var letterStatuses = map[model.Status]bool{
	model.StatusResearched:    true,
	model.StatusLetterDrafted: true,
	model.StatusContacted:     true,
	model.StatusReplied:       true,
}

// GenerateLetter renders and stores a cover letter for a researched lead.
// Sender name and company fall back to placeholders when empty.
func (s *Service) GenerateLetter(id int64, senderName, senderCompany string) (*model.Lead, error) {
	lead, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	if !letterStatuses[lead.Status] {
		return nil, &model.InvalidTransitionError{Action: "generate a letter for", Status: lead.Status}
	}

	text, err := letter.Generate(lead, senderName, senderCompany)
	if err != nil {
		return nil, fmt.Errorf("generate letter for lead %d: %w", id, err)
	}

	lead.CoverLetter = text
	lead.Status = model.StatusLetterDrafted

	if err := s.store.Update(lead); err != nil {
		return nil, fmt.Errorf("generate letter for lead %d: %w", id, err)
	}
	return lead, nil
}

// SetStatus overrides the lead status to any member of the enumeration.
func (s *Service) SetStatus(id int64, value string) (*model.Lead, error) {
	status, err := model.ParseStatus(value)
	if err != nil {
		return nil, err
	}

	lead, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	lead.Status = status
	if err := s.store.Update(lead); err != nil {
		return nil, fmt.Errorf("set status of lead %d: %w", id, err)
	}
	return lead, nil
}

// Delete removes a lead permanently. No guard on state.
func (s *Service) Delete(id int64) error {
	if err := s.store.Delete(id); err != nil {
		return fmt.Errorf("delete lead %d: %w", id, err)
	}
	return nil
}
