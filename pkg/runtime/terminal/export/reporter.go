package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/lgu-tools/aip-atlas/pkg/models/api"
)

// Reporter outputs analysis reports to the console in a formatted text form
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

const budgetTemplate = `
Budget Allocation: program {{.ProgramID}} ({{.Model}} {{.Version}}, confidence {{printf "%.2f" .Confidence}})
Total Budget: PHP {{printf "%.2f" .TotalBudget}}
Historical programs considered: {{.HistoricalPrograms}}

{{range .Allocations -}}
- {{.Sector}}: {{printf "%.1f" .RecommendedPercentage}}% (PHP {{printf "%.2f" .RecommendedAmount}}, currently {{printf "%.1f" .CurrentPercentage}}%)
  {{.Reasoning}}
{{end}}
{{.OverallRecommendation}}
`

const validationTemplate = `
Data Validation: program {{.ProgramID}} ({{.Model}} {{.Version}}, confidence {{printf "%.2f" .Confidence}})
Entities: {{.TotalEntities}} total, {{.ValidEntities}} valid ({{printf "%.1f" .PercentValid}}%), {{.CriticalIssueCount}} critical issues

{{range .ValidationResults}}{{if .Issues -}}
{{.EntityType}} {{.EntityID}}{{if .IsValid}} (valid){{else}} (INVALID){{end}}
{{range .Issues -}}
  [{{.Severity}}] {{.Field}}: {{.Message}}{{if .Suggestion}} ({{.Suggestion}}){{end}}
{{end}}
{{end}}{{end -}}
`

const documentTemplate = `
Document Analysis: {{.DocumentAnalysis.DocumentID}} ({{.Model}} {{.Version}}, confidence {{printf "%.2f" .Confidence}})
Type: {{.DocumentAnalysis.DocumentType}} | Words: {{.DocumentAnalysis.WordCount}} | Sentiment: {{printf "%.2f" .DocumentAnalysis.SentimentScore}}

Summary: {{.DocumentAnalysis.Summary}}

Topics:
{{range .DocumentAnalysis.Topics -}}
- {{.Name}} ({{printf "%.2f" .Relevance}})
{{end}}
Key phrases:
{{range .DocumentAnalysis.KeyPhrases -}}
- ({{printf "%.2f" .Importance}}) {{.Phrase}}
{{end}}
Entities:
{{range .DocumentAnalysis.Entities -}}
- [{{.Type}}] {{.Entity}} -> {{.Value}} ({{printf "%.2f" .Confidence}})
{{end}}
Tags: {{range $i, $t := .Recommendations.Tags}}{{if $i}}, {{end}}{{$t}}{{end}}
Action items:
{{range .Recommendations.ActionItems -}}
- {{.}}
{{end -}}
`

func (c *Reporter) HandleBudget(report api.BudgetReport) error {
	return c.render("budget", budgetTemplate, report)
}

func (c *Reporter) HandleValidation(report api.ValidationReport) error {
	return c.render("validation", validationTemplate, report)
}

func (c *Reporter) HandleDocument(report api.DocumentReport) error {
	return c.render("document", documentTemplate, report)
}

func (c *Reporter) render(name, tmpl string, data any) error {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, data)
}
