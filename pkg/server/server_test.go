package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/edu-tools/cohort-atlas/pkg/models/domain"
	"github.com/edu-tools/cohort-atlas/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockComposer struct {
	mock.Mock
}

func (m *mockComposer) ComposeCohort(ctx context.Context, filter domain.PopulationFilter) (*domain.ReportDocument, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportDocument), args.Error(1)
}

func (m *mockComposer) ComposeStudent(ctx context.Context, studentID string, filter domain.PopulationFilter) (*domain.ReportDocument, error) {
	args := m.Called(ctx, studentID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportDocument), args.Error(1)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(nil))

	composer := new(mockComposer)
	api := NewWebAPI(logger, Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies:    Dependencies{Composer: composer},
	})
	testServer := httptest.NewServer(api.router)
	defer testServer.Close()

	generatedAt := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	cohortDoc := &domain.ReportDocument{
		ID:          "doc-0001",
		Kind:        "cohort-report",
		Title:       "Cohort Report",
		GeneratedAt: generatedAt,
		Sections:    []domain.Section{{Kind: domain.SectionHeader, Title: "Cohort Report"}},
	}
	diagnosticDoc := &domain.ReportDocument{
		ID:          "doc-0002",
		Kind:        "cohort-report",
		Title:       "Empty Cohort Diagnostic",
		GeneratedAt: generatedAt,
		Sections: []domain.Section{{
			Kind:  domain.SectionDiagnostic,
			Title: "Empty Cohort Diagnostic",
			Diagnostic: &domain.DiagnosticFailure{Trail: []domain.StageTrace{
				{Name: "grade", Before: 3, After: 0, ExcludedReasons: map[string]int{"grade mismatch": 3}},
			}},
		}},
	}

	tests := []struct {
		name            string
		path            string
		setupMocks      func()
		expectedStatus  int
		expectedType    string
		checkBody       func(t *testing.T, body []byte)
		wantDisposition string
	}{
		{
			name: "CohortReportHTML",
			path: "/api/v1/cohorts/report?school=school-1",
			setupMocks: func() {
				composer.On("ComposeCohort", mock.Anything, domain.PopulationFilter{SchoolID: "school-1"}).
					Return(cohortDoc, nil).Once()
			},
			expectedStatus:  http.StatusOK,
			expectedType:    "text/html; charset=utf-8",
			wantDisposition: "attachment; filename=cohort-report-2026-08-15.html",
			checkBody: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), "<h1>Cohort Report</h1>")
			},
		},
		{
			name: "CohortReportEmpty",
			path: "/api/v1/cohorts/report?school=school-1&grade=9",
			setupMocks: func() {
				composer.On("ComposeCohort", mock.Anything, domain.PopulationFilter{SchoolID: "school-1", Grade: "9"}).
					Return(diagnosticDoc, nil).Once()
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedType:   "application/json",
			checkBody: func(t *testing.T, body []byte) {
				var payload struct {
					Error string `json:"error"`
				}
				require.NoError(t, json.Unmarshal(body, &payload))
				assert.Equal(t, "empty cohort", payload.Error)
			},
		},
		{
			name: "StudentReportNotFound",
			path: "/api/v1/students/s9/report?school=school-1",
			setupMocks: func() {
				composer.On("ComposeStudent", mock.Anything, "s9", domain.PopulationFilter{SchoolID: "school-1"}).
					Return(nil, report.ErrStudentNotInCohort).Once()
			},
			expectedStatus: http.StatusNotFound,
			checkBody: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), "student not found in cohort")
			},
		},
		{
			name:           "CohortReportBadDate",
			path:           "/api/v1/cohorts/report?from=not-a-date",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), "invalid from date")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")
			if tc.expectedType != "" {
				assert.Equal(t, tc.expectedType, resp.Header.Get("Content-Type"))
			}
			if tc.wantDisposition != "" {
				assert.Equal(t, tc.wantDisposition, resp.Header.Get("Content-Disposition"))
			}

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")
			tc.checkBody(t, body)
		})
	}

	composer.AssertExpectations(t)
}
