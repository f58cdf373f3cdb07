// Package export writes leads to spreadsheet-friendly CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"leadscout/internal/model"
)

// csvHeader is the column order of the export file.
var csvHeader = []string{
	"ID", "Title", "Company", "Location", "Status",
	"Website", "Email", "Contact", "Contact Role",
	"Keywords", "URL", "Created",
}

// WriteCSV writes all leads to w using ';' as delimiter, which spreadsheet
// applications with German locale settings open correctly.
func WriteCSV(w io.Writer, leads []model.Lead) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, l := range leads {
		record := []string{
			fmt.Sprintf("%d", l.ID),
			l.Title,
			l.CompanyName,
			l.Location,
			string(l.Status),
			l.CompanyWebsite,
			l.CompanyEmail,
			l.ContactName,
			l.ContactRole,
			l.Keywords,
			l.SourceURL,
			l.CreatedAt.Format(time.DateOnly),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row for lead %d: %w", l.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
