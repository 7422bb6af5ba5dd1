package report

import (
	"fmt"

	"github.com/edu-tools/cohort-atlas/pkg/models/domain"
	"github.com/edu-tools/cohort-atlas/pkg/services/chart"
)

// Chart layout shared by the section builders. The renderer gets the
// canvas size alongside the primitives, so these are geometry choices,
// not styling.
var (
	lineArea = chart.Rect{Left: 60, Top: 30, Width: chartWidth - 100, Height: chartHeight - 80}
	barArea  = chart.Rect{Left: 60, Top: 40, Width: chartWidth - 100, Height: chartHeight - 90}
)

func radarCenter() domain.Point {
	return domain.Point{X: chartWidth / 2, Y: chartHeight / 2 + 20}
}

func evolutionSection(points []domain.EvolutionPoint) domain.Section {
	series := make([]chart.SeriesPoint, 0, len(points))
	for _, p := range points {
		series = append(series, chart.SeriesPoint{Label: p.Month, Value: p.AverageScore})
	}
	return domain.Section{
		Kind:  domain.SectionChartBlock,
		Title: "Monthly Evolution",
		Chart: &domain.ChartBlock{
			Title:      "Monthly Evolution",
			Width:      chartWidth,
			Height:     chartHeight,
			Primitives: chart.Line(series, lineArea),
		},
	}
}

func competencyRadarSection(competencies []domain.Metric) domain.Section {
	values := make([]chart.AxisValue, 0, len(competencies))
	for _, m := range competencies {
		values = append(values, chart.AxisValue{Label: m.Key, Value: m.AverageScore})
	}
	return domain.Section{
		Kind:  domain.SectionChartBlock,
		Title: "Competency Spread",
		Chart: &domain.ChartBlock{
			Title:      "Competency Spread",
			Width:      chartWidth,
			Height:     chartHeight + 60,
			Primitives: chart.Radar(values, radarCenter(), radarRadius),
		},
	}
}

func competencyTableSection(competencies []domain.Metric) domain.Section {
	rows := make([][]string, 0, len(competencies))
	for _, m := range competencies {
		rows = append(rows, []string{
			m.Key,
			fmt.Sprintf("%.0f", m.AverageScore),
			fmt.Sprintf("%.0f", m.GroupAverage),
			fmt.Sprintf("%d", m.SampleCount),
			fmt.Sprintf("%.0f%%", m.PassRate),
			string(m.Trend),
		})
	}
	return domain.Section{
		Kind:  domain.SectionTable,
		Title: "Competency Detail",
		Table: &domain.Table{
			Title:   "Competency Detail",
			Columns: []string{"Competency", "Average", "Group Average", "Exams", "Pass Rate", "Trend"},
			Rows:    rows,
		},
	}
}

// subjectComparisonSectionFor compares the student's subject averages
// against the cohort's.
func subjectComparisonSectionFor(subjects []domain.Metric) domain.Section {
	pairs := make([]chart.ComparisonPair, 0, len(subjects))
	for _, m := range subjects {
		pairs = append(pairs, chart.ComparisonPair{Label: m.Key, A: m.AverageScore, B: m.GroupAverage})
	}
	return comparisonSection("Subject vs Group", "student", "group", pairs)
}

// subjectComparisonSection compares cohort-wide averages and pass rates
// per subject.
func subjectComparisonSection(subjects []domain.Metric) domain.Section {
	pairs := make([]chart.ComparisonPair, 0, len(subjects))
	for _, m := range subjects {
		pairs = append(pairs, chart.ComparisonPair{Label: m.Key, A: m.AverageScore, B: m.PassRate})
	}
	return comparisonSection("Subjects Overview", "average", "pass rate", pairs)
}

func comparisonSection(title, legendA, legendB string, pairs []chart.ComparisonPair) domain.Section {
	return domain.Section{
		Kind:  domain.SectionChartBlock,
		Title: title,
		Chart: &domain.ChartBlock{
			Title:      title,
			Width:      chartWidth,
			Height:     chartHeight,
			Primitives: chart.DualBar(pairs, legendA, legendB, barArea),
		},
	}
}

// rankingSection lists the whole-cohort ordering; each row carries an
// inline comparison bar of the student's overall against the group's.
func rankingSection(ranked []domain.RankedEntry, groupOverall float64) domain.Section {
	rows := make([][]string, 0, len(ranked))
	bars := make([]domain.Primitive, 0, 2*len(ranked))
	for i, e := range ranked {
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.Rank),
			e.StudentID,
			fmt.Sprintf("%.1f", e.Overall),
		})
		origin := domain.Point{X: 0, Y: float64(i) * 18}
		bars = append(bars, chart.InlineBar(e.Overall, groupOverall, origin, 160)...)
	}
	return domain.Section{
		Kind:  domain.SectionTable,
		Title: "Ranking",
		Table: &domain.Table{
			Title:   "Ranking",
			Columns: []string{"Rank", "Student", "Overall"},
			Rows:    rows,
		},
		Chart: &domain.ChartBlock{
			Title:      "Overall vs Group",
			Width:      160,
			Height:     float64(len(ranked)) * 18,
			Primitives: bars,
		},
	}
}

func studentCards(sm domain.StudentMetrics, entry domain.RankedEntry, cohortSize int) []domain.SummaryCard {
	return []domain.SummaryCard{
		{Label: "Exams", Value: fmt.Sprintf("%d", sm.TotalExams)},
		{Label: "Average Score", Value: fmt.Sprintf("%.1f", sm.AverageScore)},
		{Label: "Pass Rate", Value: fmt.Sprintf("%.0f", sm.PassRate), Unit: "%"},
		{Label: "Study Time", Value: fmt.Sprintf("%.1f", sm.StudyHours), Unit: "h"},
		{Label: "Courses Completed", Value: fmt.Sprintf("%d", sm.CoursesCompleted)},
		{Label: "Cohort Rank", Value: fmt.Sprintf("%d of %d", entry.Rank, cohortSize)},
	}
}

func cohortCards(data *cohortData, groupSubjects []domain.Metric) []domain.SummaryCard {
	var samples int
	var passSum, avgSum float64
	for _, m := range groupSubjects {
		samples += m.SampleCount
		passSum += m.PassRate
		avgSum += m.AverageScore
	}
	avg, pass := 0.0, 0.0
	if len(groupSubjects) > 0 {
		avg = avgSum / float64(len(groupSubjects))
		pass = passSum / float64(len(groupSubjects))
	}
	return []domain.SummaryCard{
		{Label: "Students", Value: fmt.Sprintf("%d", len(data.result.Students))},
		{Label: "Exams", Value: fmt.Sprintf("%d", samples)},
		{Label: "Average Score", Value: fmt.Sprintf("%.1f", avg)},
		{Label: "Pass Rate", Value: fmt.Sprintf("%.1f", pass), Unit: "%"},
	}
}

// overallOf applies the ranking convention to the group's subject
// averages: zero averages are treated as no data.
func overallOf(subjects []domain.Metric) float64 {
	var sum float64
	var n int
	for _, m := range subjects {
		if m.AverageScore > 0 {
			sum += m.AverageScore
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
