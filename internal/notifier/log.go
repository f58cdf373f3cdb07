// Package notifier announces newly imported leads.
package notifier

import (
	"log/slog"

	"leadscout/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes new leads to the given logger as structured messages.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each new lead via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs each lead with id, title, company, location, and URL.
// Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(leads []model.Lead) error {
	for _, l := range leads {
		args := []any{"id", l.ID, "title", l.Title, "url", l.SourceURL}
		if l.CompanyName != "" {
			args = append(args, "company", l.CompanyName)
		}
		if l.Location != "" {
			args = append(args, "location", l.Location)
		}
		n.logger.Info("new lead", args...)
	}
	return nil
}
