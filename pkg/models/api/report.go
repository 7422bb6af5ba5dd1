package api

import "github.com/edu-tools/cohort-atlas/pkg/models/domain"

// StageTrace is the wire form of one filter-stage trace.
type StageTrace struct {
	Name            string         `json:"name"`
	Before          int            `json:"before"`
	After           int            `json:"after"`
	ExcludedReasons map[string]int `json:"excluded_reasons,omitempty"`
}

// DiagnosticResponse is the 422 payload for an empty cohort: the full
// per-stage trail, never a bare "no results".
type DiagnosticResponse struct {
	Error  string       `json:"error"`
	Stages []StageTrace `json:"stages"`
}

// NewDiagnosticResponse maps a domain diagnostic failure onto the wire.
func NewDiagnosticResponse(f *domain.DiagnosticFailure) DiagnosticResponse {
	stages := make([]StageTrace, 0, len(f.Trail))
	for _, t := range f.Trail {
		stages = append(stages, StageTrace{
			Name:            t.Name,
			Before:          t.Before,
			After:           t.After,
			ExcludedReasons: t.ExcludedReasons,
		})
	}
	return DiagnosticResponse{Error: "empty cohort", Stages: stages}
}
