package metrics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/edu-tools/cohort-atlas/pkg/models/domain"
)

const (
	evolutionMonths   = 6
	riskMinAverage    = 60
	riskMinPassRate   = 50
	riskMinExams      = 3
	riskInactiveDays  = 30
	monthBucketLayout = "2006-01"
)

// Bucket accumulates raw scores under one grouping key during a single
// aggregation pass. Create at pass start, populate during the scan,
// finalize to a Metric, discard.
type Bucket struct {
	Key    string
	Scores []float64
	Passed int
}

// Add appends one record's score to the bucket.
func (b *Bucket) Add(r domain.ScoreRecord) {
	b.Scores = append(b.Scores, r.Score)
	if r.Passed {
		b.Passed++
	}
}

// KeyFunc derives a grouping key from a record. ok=false drops the
// record from the grouping without failing the pass.
type KeyFunc func(domain.ScoreRecord) (string, bool)

// SubjectKey groups by the keyword-derived subject label. Records whose
// competency name matches no subject are left out of subject grouping;
// they still appear under their competency id.
func SubjectKey(r domain.ScoreRecord) (string, bool) {
	subject, ok := ClassifySubject(r.CompetencyName)
	return string(subject), ok
}

// CompetencyKey groups by the fine-grained competency id.
func CompetencyKey(r domain.ScoreRecord) (string, bool) {
	return r.CompetencyID, r.CompetencyID != ""
}

// Valid filters out malformed records: incomplete attempts and scores
// outside [0,100]. Partial data is expected from a live system, so
// exclusion happens here once and nowhere else.
func Valid(records []domain.ScoreRecord) []domain.ScoreRecord {
	out := make([]domain.ScoreRecord, 0, len(records))
	for _, r := range records {
		if r.Complete() {
			out = append(out, r)
		}
	}
	return out
}

// Group scans records into buckets keyed by keyFn. It is total over any
// record sequence, including the empty one.
func Group(records []domain.ScoreRecord, keyFn KeyFunc) map[string]*Bucket {
	buckets := make(map[string]*Bucket)
	for _, r := range records {
		key, ok := keyFn(r)
		if !ok {
			continue
		}
		b, exists := buckets[key]
		if !exists {
			b = &Bucket{Key: key}
			buckets[key] = b
		}
		b.Add(r)
	}
	return buckets
}

// Finalize derives a Metric from a bucket. An empty bucket yields zero
// average and zero pass rate, never NaN.
func Finalize(b *Bucket) domain.Metric {
	m := domain.Metric{Key: b.Key, SampleCount: len(b.Scores), Trend: domain.TrendStable}
	if m.SampleCount == 0 {
		return m
	}

	var sum float64
	for _, s := range b.Scores {
		sum += s
	}
	m.AverageScore = math.Round(sum / float64(m.SampleCount))
	m.PassRate = math.Round(100 * float64(b.Passed) / float64(m.SampleCount))
	return m
}

// MetricsBy groups valid records by keyFn, finalizes every bucket and
// classifies each key's trend from its recency-ordered series. Output
// is sorted by key so listing order never depends on map iteration.
func MetricsBy(records []domain.ScoreRecord, keyFn KeyFunc) []domain.Metric {
	valid := Valid(records)
	buckets := Group(valid, keyFn)

	series := make(map[string][]domain.ScoreRecord, len(buckets))
	for _, r := range valid {
		key, ok := keyFn(r)
		if !ok {
			continue
		}
		series[key] = append(series[key], r)
	}

	out := make([]domain.Metric, 0, len(buckets))
	for key, b := range buckets {
		m := Finalize(b)
		m.Trend = ClassifyTrend(byRecency(series[key]))
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// AttachGroupAverages copies the cohort-wide average for each key onto
// the matching individual metric. Group metrics are computed once per
// report and fanned out here.
func AttachGroupAverages(individual []domain.Metric, group []domain.Metric) []domain.Metric {
	byKey := make(map[string]float64, len(group))
	for _, g := range group {
		byKey[g.Key] = g.AverageScore
	}
	out := make([]domain.Metric, len(individual))
	for i, m := range individual {
		m.GroupAverage = byKey[m.Key]
		out[i] = m
	}
	return out
}

// StudentMetrics computes the full analytics block for one student:
// totals, study time, course completions, risk factors, the trailing
// six-month evolution series and per-subject/per-competency metrics.
// Total over any input, including no records at all.
func StudentMetrics(studentID string, records []domain.ScoreRecord, lessons []domain.LessonRecord, now time.Time) domain.StudentMetrics {
	valid := Valid(records)

	sm := domain.StudentMetrics{
		StudentID:    studentID,
		TotalExams:   len(valid),
		Subjects:     MetricsBy(records, SubjectKey),
		Competencies: MetricsBy(records, CompetencyKey),
		Evolution:    evolution(valid, now),
	}

	if len(valid) > 0 {
		var sum float64
		var passed int
		for _, r := range valid {
			sum += r.Score
			if r.Passed {
				passed++
			}
		}
		// One decimal on the student's own overall average keeps
		// discrimination at small sample sizes.
		sm.AverageScore = round1(sum / float64(len(valid)))
		sm.PassRate = math.Round(100 * float64(passed) / float64(len(valid)))
	}

	var minutes int
	for _, l := range lessons {
		if l.StudentID == studentID {
			minutes += l.Minutes
		}
	}
	sm.StudyHours = round1(float64(minutes) / 60)
	sm.CoursesCompleted = completedCourses(studentID, lessons)
	sm.RiskFactors = riskFactors(sm, lastActivity(valid, lessons, studentID), now)

	return sm
}

func completedCourses(studentID string, lessons []domain.LessonRecord) int {
	allDone := make(map[string]bool)
	for _, l := range lessons {
		if l.StudentID != studentID {
			continue
		}
		done, seen := allDone[l.CourseID]
		if !seen {
			done = true
		}
		allDone[l.CourseID] = done && l.Completed
	}
	count := 0
	for _, done := range allDone {
		if done {
			count++
		}
	}
	return count
}

func lastActivity(records []domain.ScoreRecord, lessons []domain.LessonRecord, studentID string) time.Time {
	var last time.Time
	for _, r := range records {
		if r.CompletedAt != nil && r.CompletedAt.After(last) {
			last = *r.CompletedAt
		}
	}
	for _, l := range lessons {
		if l.StudentID == studentID && l.CompletedAt != nil && l.CompletedAt.After(last) {
			last = *l.CompletedAt
		}
	}
	return last
}

// riskFactors applies the rule set over the finalized student block.
func riskFactors(sm domain.StudentMetrics, lastActive time.Time, now time.Time) []string {
	var risks []string
	if sm.TotalExams > 0 && sm.AverageScore < riskMinAverage {
		risks = append(risks, fmt.Sprintf("average score below minimum (%d)", riskMinAverage))
	}
	if sm.TotalExams >= 1 && sm.PassRate < riskMinPassRate {
		risks = append(risks, fmt.Sprintf("pass rate below %d%%", riskMinPassRate))
	}
	if sm.TotalExams < riskMinExams {
		risks = append(risks, fmt.Sprintf("insufficient sample (fewer than %d exams)", riskMinExams))
	}
	switch {
	case lastActive.IsZero():
		risks = append(risks, "no recorded activity")
	case now.Sub(lastActive) > riskInactiveDays*24*time.Hour:
		risks = append(risks, fmt.Sprintf("no activity in the last %d days", riskInactiveDays))
	}
	return risks
}

// evolution buckets valid records by month, averages each bucket to one
// decimal and keeps the trailing six months, sorted ascending by key.
func evolution(valid []domain.ScoreRecord, now time.Time) []domain.EvolutionPoint {
	if len(valid) == 0 {
		return nil
	}

	cutoff := now.AddDate(0, -evolutionMonths, 0)
	byMonth := make(map[string]*Bucket)
	for _, r := range valid {
		if r.CompletedAt.Before(cutoff) {
			continue
		}
		key := r.CompletedAt.Format(monthBucketLayout)
		b, exists := byMonth[key]
		if !exists {
			b = &Bucket{Key: key}
			byMonth[key] = b
		}
		b.Add(r)
	}

	points := make([]domain.EvolutionPoint, 0, len(byMonth))
	for key, b := range byMonth {
		var sum float64
		for _, s := range b.Scores {
			sum += s
		}
		points = append(points, domain.EvolutionPoint{
			Month:        key,
			AverageScore: round1(sum / float64(len(b.Scores))),
			SampleCount:  len(b.Scores),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })

	if len(points) > evolutionMonths {
		points = points[len(points)-evolutionMonths:]
	}
	return points
}

// byRecency returns a copy sorted most-recent-first, the order the
// trend classifier expects.
func byRecency(records []domain.ScoreRecord) []domain.ScoreRecord {
	out := make([]domain.ScoreRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletedAt.After(*out[j].CompletedAt)
	})
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
