package letter

import (
	"strings"
	"testing"

	"leadscout/internal/model"
)

func TestGenerate_UsesContactName(t *testing.T) {
	lead := &model.Lead{
		Title:       "AI Engineer",
		Source:      "StepStone",
		CompanyName: "Acme GmbH",
		ContactName: "Maria Muster",
	}

	got, err := Generate(lead, "Jan Test", "Test Consulting")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(got, "Dear Maria Muster,") {
		t.Errorf("letter does not open with contact salutation:\n%s", got)
	}
	if !strings.Contains(got, `"AI Engineer"`) {
		t.Error("letter does not mention the job title")
	}
	if !strings.Contains(got, "Acme GmbH") {
		t.Error("letter does not mention the company")
	}
	if !strings.Contains(got, "Jan Test") || !strings.Contains(got, "Test Consulting") {
		t.Error("letter does not carry the sender identity")
	}
}

func TestGenerate_GenericSalutationWithoutContact(t *testing.T) {
	lead := &model.Lead{Title: "AI Engineer", CompanyName: "Acme GmbH"}

	got, err := Generate(lead, "", "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(got, "Dear Sir or Madam,") {
		t.Errorf("letter does not use generic salutation:\n%s", got)
	}
}

func TestGenerate_SenderPlaceholders(t *testing.T) {
	lead := &model.Lead{Title: "AI Engineer"}

	got, err := Generate(lead, "", "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(got, DefaultSenderName) || !strings.Contains(got, DefaultSenderCompany) {
		t.Errorf("letter missing sender placeholders:\n%s", got)
	}
}

func TestGenerate_CompanyFallback(t *testing.T) {
	lead := &model.Lead{Title: "AI Engineer"}

	got, err := Generate(lead, "", "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(got, "your company") {
		t.Errorf("letter missing company fallback:\n%s", got)
	}
	if !strings.Contains(got, "on StepStone") {
		t.Errorf("letter missing source fallback:\n%s", got)
	}
}
