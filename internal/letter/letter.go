// Package letter renders cover letters from lead data.
package letter

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"leadscout/internal/model"
)

//go:embed templates/cover_letter.txt
var coverLetterRaw string

// coverLetterTemplate is parsed once at package init and reused on every
// Generate call.
var coverLetterTemplate = template.Must(template.New("cover_letter").Parse(coverLetterRaw))

// Placeholders used when the caller supplies no sender identity.
const (
	DefaultSenderName    = "[Your Name]"
	DefaultSenderCompany = "[Your Company]"
)

// templateData is the flattened view the template renders from.
type templateData struct {
	Salutation    string
	Title         string
	Source        string
	Company       string
	SenderName    string
	SenderCompany string
}

// Generate renders a cover letter for the lead. Missing contact name falls
// back to a generic salutation; missing company name to a neutral phrase.
func Generate(lead *model.Lead, senderName, senderCompany string) (string, error) {
	if senderName == "" {
		senderName = DefaultSenderName
	}
	if senderCompany == "" {
		senderCompany = DefaultSenderCompany
	}

	salutation := "Dear Sir or Madam"
	if lead.ContactName != "" {
		salutation = "Dear " + lead.ContactName
	}

	company := lead.CompanyName
	if company == "" {
		company = "your company"
	}

	source := lead.Source
	if source == "" {
		source = "StepStone"
	}

	var buf bytes.Buffer
	err := coverLetterTemplate.Execute(&buf, templateData{
		Salutation:    salutation,
		Title:         lead.Title,
		Source:        source,
		Company:       company,
		SenderName:    senderName,
		SenderCompany: senderCompany,
	})
	if err != nil {
		return "", fmt.Errorf("render cover letter: %w", err)
	}
	return buf.String(), nil
}
