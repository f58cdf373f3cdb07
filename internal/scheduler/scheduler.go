// Package scheduler runs the periodic search-and-import loop behind the
// watch command.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"leadscout/internal/lifecycle"
	"leadscout/internal/model"
	"leadscout/internal/stepstone"
)

// Searcher is the slice of the scraping client the scheduler needs.
type Searcher interface {
	Search(ctx context.Context, params stepstone.SearchParams) ([]model.JobRecord, error)
}

// Importer is the slice of the lifecycle service the scheduler needs.
type Importer interface {
	Import(jobs []model.JobRecord) (lifecycle.ImportResult, error)
}

// Scheduler owns the watch loop: ticks on an interval, searches the board,
// imports new leads, and announces them.
type Scheduler struct {
	searcher Searcher
	importer Importer
	notifier model.Notifier
	params   stepstone.SearchParams
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a scheduler that runs the given search at the given
// interval.
func NewScheduler(searcher Searcher, importer Importer, notifier model.Notifier, params stepstone.SearchParams, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		searcher: searcher,
		importer: importer,
		notifier: notifier,
		params:   params,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the watch loop. It runs one immediate cycle, then ticks on the
// configured interval. It returns nil when ctx is cancelled (graceful
// shutdown).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting watch",
		"interval", s.interval.String(),
		"keywords", s.params.Keywords,
		"location", s.params.Location,
	)

	// Run one immediate cycle.
	s.cycle(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down watch")
			return nil
		case <-time.After(s.interval):
			s.cycle(ctx)
		}
	}
}

// cycle runs one search-import-notify pass. A failed search still imports
// whatever pages were gathered before the failure.
func (s *Scheduler) cycle(ctx context.Context) {
	jobs, err := s.searcher.Search(ctx, s.params)
	if err != nil {
		s.logger.Error("search failed", "error", err, "partial_results", len(jobs))
	}
	if len(jobs) == 0 {
		s.logger.Info("no jobs found this cycle")
		return
	}

	res, err := s.importer.Import(jobs)
	if err != nil {
		s.logger.Error("import failed", "error", err)
		return
	}
	if res.Imported == 0 {
		s.logger.Info("no new leads this cycle", "skipped", res.Skipped)
		return
	}

	if err := s.notifier.Notify(res.Leads); err != nil {
		s.logger.Error("notification failed", "error", err)
	}
}
