package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/edu-tools/cohort-atlas/pkg/models/domain"
)

// Reporter outputs report documents to the console in a formatted text
// form. Chart blocks collapse to a one-line note; the geometry is for
// the HTML renderer.
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

func (c *Reporter) Handle(doc *domain.ReportDocument) error {
	tmpl := `
{{.Title}}
Generated: {{.GeneratedAt.Format "2006-01-02"}}

{{range .Sections}}{{if eq .Kind "summaryCards"}}{{range .Cards}}{{.Label}}: {{.Value}}{{if .Unit}} {{.Unit}}{{end}}
{{end}}
{{else if eq .Kind "chartBlock"}}[chart] {{.Title}} ({{len .Chart.Primitives}} primitives)

{{else if eq .Kind "table"}}=== {{.Title}} ===
{{range .Table.Rows}}{{range .}}{{.}}  {{end}}
{{end}}
{{else if eq .Kind "riskFactors"}}=== {{.Title}} ===
{{range .Risks}}- {{.}}
{{end}}
{{else if eq .Kind "diagnostic"}}=== {{.Title}} ===
{{range .Diagnostic.Trail}}{{.Name}}: {{.Before}} -> {{.After}}{{range $reason, $n := .ExcludedReasons}} [{{$reason}}: {{$n}}]{{end}}
{{end}}
{{end}}{{end}}
`
	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, doc)
}
