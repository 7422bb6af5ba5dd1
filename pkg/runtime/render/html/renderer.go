package html

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/edu-tools/cohort-atlas/pkg/models/domain"
)

// Reporter renders a report document as a standalone HTML page with
// inline SVG for the chart blocks.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates an HTML reporter writing to the given writer.
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (r *Reporter) Handle(doc *domain.ReportDocument) error {
	funcMap := template.FuncMap{
		"svg":    chartSVG,
		"escape": escapeXML,
	}

	tmpl := `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{escape .Title}}</title></head>
<body>
<p>Generated {{.GeneratedAt.Format "2006-01-02"}} &middot; {{.ID}}</p>
{{range .Sections}}{{if eq .Kind "header"}}
<h1>{{escape .Title}}</h1>
{{else if eq .Kind "summaryCards"}}
<ul class="cards">
{{range .Cards}}  <li><strong>{{escape .Label}}</strong>: {{escape .Value}}{{if .Unit}} {{escape .Unit}}{{end}}</li>
{{end}}</ul>
{{else if eq .Kind "chartBlock"}}
<h2>{{escape .Title}}</h2>
{{svg .Chart}}
{{else if eq .Kind "table"}}
<h2>{{escape .Title}}</h2>
<table border="1">
<tr>{{range .Table.Columns}}<th>{{escape .}}</th>{{end}}</tr>
{{range .Table.Rows}}<tr>{{range .}}<td>{{escape .}}</td>{{end}}</tr>
{{end}}</table>
{{if .Chart}}{{svg .Chart}}{{end}}
{{else if eq .Kind "riskFactors"}}
<h2>{{escape .Title}}</h2>
<ul class="risks">
{{range .Risks}}  <li>{{escape .}}</li>
{{end}}</ul>
{{else if eq .Kind "diagnostic"}}
<h1>{{escape .Title}}</h1>
<table border="1">
<tr><th>Stage</th><th>Before</th><th>After</th><th>Exclusions</th></tr>
{{range .Diagnostic.Trail}}<tr><td>{{escape .Name}}</td><td>{{.Before}}</td><td>{{.After}}</td><td>{{range $reason, $n := .ExcludedReasons}}{{escape $reason}}: {{$n}} {{end}}</td></tr>
{{end}}</table>
{{end}}{{end}}
</body>
</html>
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(r.writer, doc)
}
