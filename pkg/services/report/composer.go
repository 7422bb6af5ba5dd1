// Package report assembles cohort and student analytics into ordered,
// language-agnostic report documents for an external renderer.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/edu-tools/cohort-atlas/pkg/models/domain"
	"github.com/edu-tools/cohort-atlas/pkg/services/cohort"
	"github.com/edu-tools/cohort-atlas/pkg/services/metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store is the data-access collaborator. Implementations are expected
// to serve each call as one batched read; the composer performs no
// per-student queries.
type Store interface {
	StudentProfiles(ctx context.Context, filter domain.PopulationFilter) ([]domain.StudentProfile, error)
	ScoreRecords(ctx context.Context, filter domain.PopulationFilter) ([]domain.ScoreRecord, error)
	LessonRecords(ctx context.Context, studentIDs []string) ([]domain.LessonRecord, error)
}

// Canvas dimensions shared by all chart blocks in a document.
const (
	chartWidth  = 640
	chartHeight = 280
	radarRadius = 140
)

// Composer runs the filter pipeline, aggregates metrics per entity and
// for the cohort, requests chart primitives and assembles the document.
type Composer struct {
	store Store
	now   func() time.Time
	newID func() string
}

// Option adjusts composer construction; used by tests to pin time and ids.
type Option func(*Composer)

func WithClock(now func() time.Time) Option {
	return func(c *Composer) { c.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(c *Composer) { c.newID = newID }
}

func NewComposer(store Store, opts ...Option) *Composer {
	c := &Composer{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// cohortData is everything one report request reads from the store:
// three batched queries, then pure computation.
type cohortData struct {
	result  domain.CohortResult
	failure *domain.DiagnosticFailure
	records map[string][]domain.ScoreRecord
	lessons []domain.LessonRecord
	pooled  []domain.ScoreRecord
}

func (c *Composer) loadCohort(ctx context.Context, filter domain.PopulationFilter) (*cohortData, error) {
	profiles, err := c.store.StudentProfiles(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetch student profiles: %w", err)
	}
	records, err := c.store.ScoreRecords(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetch score records: %w", err)
	}

	byStudent := make(map[string][]domain.ScoreRecord)
	for _, r := range records {
		byStudent[r.StudentID] = append(byStudent[r.StudentID], r)
	}

	result, failure := cohort.Run(profiles, cohort.DefaultStages(filter, byStudent))
	data := &cohortData{result: result, failure: failure, records: byStudent}
	if failure != nil {
		return data, nil
	}

	ids := make([]string, 0, len(result.Students))
	for _, s := range result.Students {
		ids = append(ids, s.ID)
		data.pooled = append(data.pooled, byStudent[s.ID]...)
	}
	sort.Strings(ids)

	data.lessons, err = c.store.LessonRecords(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch lesson records: %w", err)
	}
	return data, nil
}

// ComposeCohort builds the cohort-wide report: summary cards, the
// subject comparison chart and the ranking table. An empty cohort
// yields a diagnostic-only document on the normal return path.
func (c *Composer) ComposeCohort(ctx context.Context, filter domain.PopulationFilter) (*domain.ReportDocument, error) {
	logger := zerolog.Ctx(ctx)
	data, err := c.loadCohort(ctx, filter)
	if err != nil {
		return nil, err
	}
	if data.failure != nil {
		logger.Info().Int("stages", len(data.failure.Trail)).Msg("cohort emptied by filter pipeline")
		return c.diagnosticDocument("cohort-report", data.failure), nil
	}

	doc := c.newDocument("cohort-report", "Cohort Report")

	groupSubjects := metrics.MetricsBy(data.pooled, metrics.SubjectKey)
	ranked := c.rankCohort(data)
	groupOverall := overallOf(groupSubjects)

	doc.Sections = append(doc.Sections,
		domain.Section{Kind: domain.SectionHeader, Title: doc.Title},
		domain.Section{Kind: domain.SectionSummaryCards, Cards: cohortCards(data, groupSubjects)},
		subjectComparisonSection(groupSubjects),
		rankingSection(ranked, groupOverall),
	)
	return doc, nil
}

// ComposeStudent builds the single-entity report for one retained
// student, with cohort-wide figures attached for comparison.
func (c *Composer) ComposeStudent(ctx context.Context, studentID string, filter domain.PopulationFilter) (*domain.ReportDocument, error) {
	data, err := c.loadCohort(ctx, filter)
	if err != nil {
		return nil, err
	}
	if data.failure != nil {
		return c.diagnosticDocument("student-report", data.failure), nil
	}

	var profile *domain.StudentProfile
	for i := range data.result.Students {
		if data.result.Students[i].ID == studentID {
			profile = &data.result.Students[i]
			break
		}
	}
	if profile == nil {
		return nil, fmt.Errorf("student %q: %w", studentID, ErrStudentNotInCohort)
	}

	groupSubjects := metrics.MetricsBy(data.pooled, metrics.SubjectKey)
	groupCompetencies := metrics.MetricsBy(data.pooled, metrics.CompetencyKey)

	sm := metrics.StudentMetrics(studentID, data.records[studentID], data.lessons, c.now())
	sm.Subjects = metrics.AttachGroupAverages(sm.Subjects, groupSubjects)
	sm.Competencies = metrics.AttachGroupAverages(sm.Competencies, groupCompetencies)

	ranked := c.rankCohort(data)
	entry, _ := metrics.RankOf(ranked, studentID)

	doc := c.newDocument("student-report", "Student Report "+studentID)
	doc.Sections = append(doc.Sections,
		domain.Section{Kind: domain.SectionHeader, Title: doc.Title},
		domain.Section{Kind: domain.SectionSummaryCards, Cards: studentCards(sm, entry, len(data.result.Students))},
		evolutionSection(sm.Evolution),
		competencyRadarSection(sm.Competencies),
		competencyTableSection(sm.Competencies),
		subjectComparisonSectionFor(sm.Subjects),
	)
	if len(sm.RiskFactors) > 0 {
		doc.Sections = append(doc.Sections, domain.Section{
			Kind:  domain.SectionRiskFactors,
			Title: "Risk Factors",
			Risks: sm.RiskFactors,
		})
	}
	return doc, nil
}

func (c *Composer) rankCohort(data *cohortData) []domain.RankedEntry {
	candidates := make([]metrics.RankCandidate, 0, len(data.result.Students))
	for _, s := range data.result.Students {
		averages := make(map[metrics.Subject]float64)
		for _, m := range metrics.MetricsBy(data.records[s.ID], metrics.SubjectKey) {
			averages[metrics.Subject(m.Key)] = m.AverageScore
		}
		candidates = append(candidates, metrics.RankCandidate{StudentID: s.ID, SubjectAverages: averages})
	}
	return metrics.Rank(candidates)
}

func (c *Composer) newDocument(kind, title string) *domain.ReportDocument {
	return &domain.ReportDocument{
		ID:          c.newID(),
		Kind:        kind,
		Title:       title,
		GeneratedAt: c.now(),
	}
}

func (c *Composer) diagnosticDocument(kind string, failure *domain.DiagnosticFailure) *domain.ReportDocument {
	doc := c.newDocument(kind, "Empty Cohort Diagnostic")
	doc.Sections = []domain.Section{{
		Kind:       domain.SectionDiagnostic,
		Title:      doc.Title,
		Diagnostic: failure,
	}}
	return doc
}
