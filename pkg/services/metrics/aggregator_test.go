package metrics

import (
	"testing"
	"time"

	"github.com/edu-tools/cohort-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func record(student, competency, name string, score float64, completedAt *time.Time) domain.ScoreRecord {
	return domain.ScoreRecord{
		StudentID:      student,
		CompetencyID:   competency,
		CompetencyName: name,
		Score:          score,
		Passed:         score >= 60,
		CompletedAt:    completedAt,
	}
}

func at(t time.Time) *time.Time { return &t }

func TestMetricsBy_ExcludesIncompleteRecords(t *testing.T) {
	done := at(testNow.AddDate(0, 0, -1))
	records := []domain.ScoreRecord{
		record("s1", "c1", "Matemáticas I", 90, done),
		record("s1", "c1", "Matemáticas I", 85, done),
		record("s1", "c1", "Matemáticas I", 80, done),
		record("s2", "c1", "Matemáticas I", 40, nil), // never finished
		record("s2", "c1", "Matemáticas I", 35, nil),
		record("s3", "c1", "Matemáticas I", 70, done),
		record("s3", "c1", "Matemáticas I", 70, done),
		record("s3", "c1", "Matemáticas I", 120, done), // out of range
	}

	out := MetricsBy(records, SubjectKey)
	require.Len(t, out, 1)

	m := out[0]
	assert.Equal(t, string(SubjectMathematics), m.Key)
	assert.Equal(t, 5, m.SampleCount, "incomplete and out-of-range records do not count")
	assert.Equal(t, 79.0, m.AverageScore, "mean of 90, 85, 80, 70, 70")
	assert.Equal(t, 100.0, m.PassRate)
}

func TestMetricsBy_EmptyAndInvalidInput(t *testing.T) {
	assert.Empty(t, MetricsBy(nil, SubjectKey))

	onlyInvalid := []domain.ScoreRecord{
		record("s1", "c1", "Matemáticas", 50, nil),
		record("s1", "c1", "Matemáticas", -3, at(testNow)),
	}
	assert.Empty(t, MetricsBy(onlyInvalid, SubjectKey))
}

func TestMetricsBy_SortedByKey(t *testing.T) {
	done := at(testNow)
	records := []domain.ScoreRecord{
		record("s1", "c9", "Ciencias Naturales", 70, done),
		record("s1", "c2", "Matemáticas", 80, done),
		record("s1", "c5", "Historia", 60, done),
	}

	out := MetricsBy(records, CompetencyKey)
	require.Len(t, out, 3)
	assert.Equal(t, "c2", out[0].Key)
	assert.Equal(t, "c5", out[1].Key)
	assert.Equal(t, "c9", out[2].Key)
}

func TestFinalize_EmptyBucketIsZeroNotNaN(t *testing.T) {
	m := Finalize(&Bucket{Key: "empty"})
	assert.Equal(t, 0, m.SampleCount)
	assert.Equal(t, 0.0, m.AverageScore)
	assert.Equal(t, 0.0, m.PassRate)
	assert.Equal(t, domain.TrendStable, m.Trend)
}

func TestAttachGroupAverages(t *testing.T) {
	individual := []domain.Metric{
		{Key: "MATHEMATICS", AverageScore: 70},
		{Key: "SCIENCE", AverageScore: 55},
	}
	group := []domain.Metric{
		{Key: "MATHEMATICS", AverageScore: 65},
	}

	out := AttachGroupAverages(individual, group)
	require.Len(t, out, 2)
	assert.Equal(t, 65.0, out[0].GroupAverage)
	assert.Equal(t, 0.0, out[1].GroupAverage, "no cohort data for the key")
	assert.Equal(t, 0.0, individual[0].GroupAverage, "input is not mutated")
}

func TestStudentMetrics_OverallBlock(t *testing.T) {
	records := []domain.ScoreRecord{
		record("s1", "c1", "Matemáticas", 80, at(testNow.AddDate(0, 0, -2))),
		record("s1", "c1", "Matemáticas", 71, at(testNow.AddDate(0, 0, -4))),
		record("s1", "c2", "Lenguaje", 55, at(testNow.AddDate(0, 0, -6))),
	}
	lessons := []domain.LessonRecord{
		{StudentID: "s1", CourseID: "course-a", Minutes: 90, Completed: true, CompletedAt: at(testNow.AddDate(0, 0, -1))},
		{StudentID: "s1", CourseID: "course-a", Minutes: 45, Completed: true, CompletedAt: at(testNow.AddDate(0, 0, -3))},
		{StudentID: "s1", CourseID: "course-b", Minutes: 30, Completed: false, CompletedAt: at(testNow.AddDate(0, 0, -5))},
		{StudentID: "someone-else", CourseID: "course-a", Minutes: 600, Completed: true, CompletedAt: at(testNow)},
	}

	sm := StudentMetrics("s1", records, lessons, testNow)

	assert.Equal(t, 3, sm.TotalExams)
	assert.Equal(t, 68.7, sm.AverageScore, "one decimal, (80+71+55)/3")
	assert.Equal(t, 67.0, sm.PassRate)
	assert.Equal(t, 2.8, sm.StudyHours, "165 minutes, other students excluded")
	assert.Equal(t, 1, sm.CoursesCompleted, "course-b has an unfinished lesson")
	assert.Empty(t, sm.RiskFactors)

	require.Len(t, sm.Subjects, 2)
	assert.Equal(t, string(SubjectLanguage), sm.Subjects[0].Key)
	assert.Equal(t, string(SubjectMathematics), sm.Subjects[1].Key)
}

func TestStudentMetrics_NoRecords(t *testing.T) {
	sm := StudentMetrics("s1", nil, nil, testNow)

	assert.Equal(t, 0, sm.TotalExams)
	assert.Equal(t, 0.0, sm.AverageScore)
	assert.Equal(t, 0.0, sm.PassRate)
	assert.Empty(t, sm.Subjects)
	assert.Empty(t, sm.Evolution)
	assert.Contains(t, sm.RiskFactors, "insufficient sample (fewer than 3 exams)")
	assert.Contains(t, sm.RiskFactors, "no recorded activity")
}

func TestStudentMetrics_RiskFactors(t *testing.T) {
	stale := at(testNow.AddDate(0, 0, -45))
	records := []domain.ScoreRecord{
		record("s1", "c1", "Matemáticas", 40, stale),
		record("s1", "c1", "Matemáticas", 50, stale),
		record("s1", "c1", "Matemáticas", 55, stale),
	}

	sm := StudentMetrics("s1", records, nil, testNow)

	assert.Contains(t, sm.RiskFactors, "average score below minimum (60)")
	assert.Contains(t, sm.RiskFactors, "pass rate below 50%")
	assert.Contains(t, sm.RiskFactors, "no activity in the last 30 days")
	assert.NotContains(t, sm.RiskFactors, "insufficient sample (fewer than 3 exams)")
	assert.NotContains(t, sm.RiskFactors, "no recorded activity")
}

func TestStudentMetrics_RecentLessonClearsInactivity(t *testing.T) {
	stale := at(testNow.AddDate(0, 0, -45))
	records := []domain.ScoreRecord{
		record("s1", "c1", "Matemáticas", 90, stale),
		record("s1", "c1", "Matemáticas", 90, stale),
		record("s1", "c1", "Matemáticas", 90, stale),
	}
	lessons := []domain.LessonRecord{
		{StudentID: "s1", CourseID: "course-a", Minutes: 30, Completed: true, CompletedAt: at(testNow.AddDate(0, 0, -2))},
	}

	sm := StudentMetrics("s1", records, lessons, testNow)
	assert.Empty(t, sm.RiskFactors)
}

func TestEvolution_TrailingSixMonths(t *testing.T) {
	// Seven monthly records inside the window: the oldest month drops.
	var records []domain.ScoreRecord
	for i := 0; i < 7; i++ {
		when := time.Date(2026, time.Month(2+i), 27, 0, 0, 0, 0, time.UTC)
		records = append(records, record("s1", "c1", "Matemáticas", float64(60+i), at(when)))
	}

	sm := StudentMetrics("s1", records, nil, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC))

	require.Len(t, sm.Evolution, 6)
	assert.Equal(t, "2026-03", sm.Evolution[0].Month)
	assert.Equal(t, "2026-08", sm.Evolution[5].Month)
	for i := 1; i < len(sm.Evolution); i++ {
		assert.Less(t, sm.Evolution[i-1].Month, sm.Evolution[i].Month, "ascending month order")
	}
}

func TestEvolution_MonthlyAverages(t *testing.T) {
	june := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	records := []domain.ScoreRecord{
		record("s1", "c1", "Matemáticas", 70, at(june)),
		record("s1", "c1", "Matemáticas", 75, at(june.AddDate(0, 0, 5))),
		record("s1", "c2", "Lenguaje", 90, at(june.AddDate(0, 1, 0))),
	}

	sm := StudentMetrics("s1", records, nil, testNow)

	require.Len(t, sm.Evolution, 2)
	assert.Equal(t, domain.EvolutionPoint{Month: "2026-06", AverageScore: 72.5, SampleCount: 2}, sm.Evolution[0])
	assert.Equal(t, domain.EvolutionPoint{Month: "2026-07", AverageScore: 90, SampleCount: 1}, sm.Evolution[1])
}

func TestClassifySubject(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Subject
		wantOK bool
	}{
		{name: "accented spanish", input: "Matemáticas Avanzadas", want: SubjectMathematics, wantOK: true},
		{name: "unaccented", input: "matematica basica", want: SubjectMathematics, wantOK: true},
		{name: "language", input: "Comunicación y Lenguaje", want: SubjectLanguage, wantOK: true},
		{name: "science", input: "Ciencias Naturales II", want: SubjectScience, wantOK: true},
		{name: "history", input: "Estudios Sociales", want: SubjectHistory, wantOK: true},
		{name: "english", input: "Inglés Intermedio", want: SubjectEnglish, wantOK: true},
		{name: "case insensitive", input: "ENGLISH FOR BEGINNERS", want: SubjectEnglish, wantOK: true},
		{name: "unknown", input: "Robótica", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifySubject(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
