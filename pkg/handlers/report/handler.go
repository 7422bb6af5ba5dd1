package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/edu-tools/cohort-atlas/pkg/models/api"
	"github.com/edu-tools/cohort-atlas/pkg/models/domain"
	htmlrender "github.com/edu-tools/cohort-atlas/pkg/runtime/render/html"
	svcreport "github.com/edu-tools/cohort-atlas/pkg/services/report"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const dateParamLayout = "02-01-2006"

// Composer is the report-generation collaborator behind the handler.
type Composer interface {
	ComposeCohort(ctx context.Context, filter domain.PopulationFilter) (*domain.ReportDocument, error)
	ComposeStudent(ctx context.Context, studentID string, filter domain.PopulationFilter) (*domain.ReportDocument, error)
}

type Handler struct {
	composer Composer
}

func NewHandler(composer Composer) *Handler {
	return &Handler{composer: composer}
}

// GetCohortReport serves GET /cohorts/report. An empty cohort answers
// 422 with the diagnostic trail as JSON; anything the composer could
// build answers 200 with the rendered document as an attachment.
func (h *Handler) GetCohortReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := h.composer.ComposeCohort(ctx, filter)
	if err != nil {
		logger.Error().Err(err).Msg("report generation failed")
		http.Error(w, "report generation failed", http.StatusInternalServerError)
		return
	}

	h.respond(w, r, doc)
}

// GetStudentReport serves GET /students/{id}/report. Students outside
// the cohort answer 404.
func (h *Handler) GetStudentReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	studentID := chi.URLParam(r, "id")

	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := h.composer.ComposeStudent(ctx, studentID, filter)
	if err != nil {
		if errors.Is(err, svcreport.ErrStudentNotInCohort) {
			http.Error(w, "student not found in cohort", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("student", studentID).Msg("report generation failed")
		http.Error(w, "report generation failed", http.StatusInternalServerError)
		return
	}

	h.respond(w, r, doc)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, doc *domain.ReportDocument) {
	logger := zerolog.Ctx(r.Context())

	if diagnostic, ok := diagnosticOf(doc); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		if err := json.NewEncoder(w).Encode(api.NewDiagnosticResponse(diagnostic)); err != nil {
			logger.Error().Err(err).Msg("failed to encode diagnostic response")
		}
		return
	}

	if r.URL.Query().Get("format") == "json" {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(doc); err != nil {
			logger.Error().Err(err).Msg("failed to encode report document")
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", doc.Filename("html")))
	if err := htmlrender.NewReporter(w).Handle(doc); err != nil {
		logger.Error().Err(err).Msg("failed to render report document")
	}
}

func diagnosticOf(doc *domain.ReportDocument) (*domain.DiagnosticFailure, bool) {
	if len(doc.Sections) == 1 && doc.Sections[0].Kind == domain.SectionDiagnostic {
		return doc.Sections[0].Diagnostic, true
	}
	return nil, false
}

func parseFilter(r *http.Request) (domain.PopulationFilter, error) {
	from, err := parseDateParam(r, "from", time.Time{})
	if err != nil {
		return domain.PopulationFilter{}, err
	}
	to, err := parseDateParam(r, "to", time.Time{})
	if err != nil {
		return domain.PopulationFilter{}, err
	}

	q := r.URL.Query()
	return domain.PopulationFilter{
		SchoolID:     q.Get("school"),
		Grade:        q.Get("grade"),
		CourseID:     q.Get("course"),
		CompetencyID: q.Get("competency"),
		From:         from,
		To:           to,
	}, nil
}

func parseDateParam(r *http.Request, name string, defaultDate time.Time) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return defaultDate, nil
	}
	parsed, err := time.Parse(dateParamLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date, expected %s: %w", name, dateParamLayout, err)
	}
	return parsed, nil
}
