package research

import (
	_ "embed"
	"text/template"
)

//go:embed prompts/company_research.md
var companyResearchPromptRaw string

// companyResearchTemplate is the parsed prompt template for company
// research. Parsed once at package init; reused on every Research call.
var companyResearchTemplate = template.Must(template.New("company_research").Parse(companyResearchPromptRaw))
