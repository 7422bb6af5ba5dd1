package domain

import "time"

// SectionKind identifies a logical block of the report document.
type SectionKind string

const (
	SectionHeader       SectionKind = "header"
	SectionSummaryCards SectionKind = "summaryCards"
	SectionChartBlock   SectionKind = "chartBlock"
	SectionTable        SectionKind = "table"
	SectionRiskFactors  SectionKind = "riskFactors"
	SectionDiagnostic   SectionKind = "diagnostic"
)

// SummaryCard is one headline figure shown at the top of a report.
type SummaryCard struct {
	Label string
	Value string
	Unit  string
}

// ChartBlock carries a titled list of chart primitives plus the canvas
// size they were laid out for.
type ChartBlock struct {
	Title      string
	Width      float64
	Height     float64
	Primitives []Primitive
}

// Table is a plain column/row block, rendering-agnostic.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Section is one ordered block of a ReportDocument. Exactly one payload
// field is set, matching Kind.
type Section struct {
	Kind       SectionKind
	Title      string
	Cards      []SummaryCard
	Chart      *ChartBlock
	Table      *Table
	Risks      []string
	Diagnostic *DiagnosticFailure
}

// ReportDocument is the sole handoff artifact to a rendering
// collaborator. Immutable after construction; section order is fixed
// and deterministic for identical inputs.
type ReportDocument struct {
	ID          string
	Kind        string // e.g. "student-report", "cohort-report"
	Title       string
	GeneratedAt time.Time
	Sections    []Section
}

// Filename returns the delivery filename for the rendered document,
// of the form <report-kind>-<iso-date>.<ext>.
func (d ReportDocument) Filename(ext string) string {
	return d.Kind + "-" + d.GeneratedAt.Format("2006-01-02") + "." + ext
}
