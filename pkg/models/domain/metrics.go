package domain

// Trend is a 3-valued classification of a score series' recent direction.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// Metric holds the finalized statistics for one grouping key (a subject
// label or a competency id). Derived per report request, never persisted.
type Metric struct {
	Key          string
	AverageScore float64
	SampleCount  int
	PassRate     float64 // 0-100
	Trend        Trend
	GroupAverage float64 // cohort-wide average for the same key, when computed
}

// EvolutionPoint is one month bucket of a student's score history.
type EvolutionPoint struct {
	Month        string // "YYYY-MM"
	AverageScore float64
	SampleCount  int
}

// StudentMetrics is the full per-student analytics block.
type StudentMetrics struct {
	StudentID        string
	TotalExams       int
	AverageScore     float64 // one decimal, to preserve discrimination at small samples
	PassRate         float64
	StudyHours       float64 // one decimal
	CoursesCompleted int
	Subjects         []Metric
	Competencies     []Metric
	Evolution        []EvolutionPoint
	RiskFactors      []string
}

// RankedEntry places one student in the cohort ordering.
// Entries are sorted descending by Overall; Rank is 1-based. Ties are
// broken by student id ascending so repeated runs rank identically.
type RankedEntry struct {
	StudentID string
	Overall   float64
	Rank      int
}
