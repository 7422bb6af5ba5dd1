// Package cohort selects the report population: an ordered sequence of
// inclusion filters over a read-only snapshot of student profiles, with
// a per-stage audit trail explaining every exclusion.
package cohort

import "github.com/edu-tools/cohort-atlas/pkg/models/domain"

// Stage is one named inclusion filter. Apply returns keep=true to
// retain the student, or keep=false plus the exclusion reason.
type Stage struct {
	Name  string
	Apply func(domain.StudentProfile) (keep bool, reason string)
}

// Run applies stages strictly in order, each one receiving the
// survivors of the previous stage. Every stage records before/after
// counts and an exclusion-reason breakdown; stages are never skipped,
// so an already-empty set still produces before=0, after=0 traces for
// audit completeness.
//
// When nobody survives, Run returns a DiagnosticFailure carrying the
// full trail instead of a bare empty result.
func Run(candidates []domain.StudentProfile, stages []Stage) (domain.CohortResult, *domain.DiagnosticFailure) {
	survivors := make([]domain.StudentProfile, len(candidates))
	copy(survivors, candidates)

	trail := make([]domain.StageTrace, 0, len(stages))
	for _, stage := range stages {
		trace := domain.StageTrace{
			Name:            stage.Name,
			Before:          len(survivors),
			ExcludedReasons: map[string]int{},
		}

		kept := survivors[:0:0]
		for _, student := range survivors {
			keep, reason := stage.Apply(student)
			if keep {
				kept = append(kept, student)
				continue
			}
			if reason == "" {
				reason = "excluded"
			}
			trace.ExcludedReasons[reason]++
		}

		survivors = kept
		trace.After = len(survivors)
		trail = append(trail, trace)
	}

	result := domain.CohortResult{Students: survivors, Trail: trail}
	if result.Empty() {
		return result, &domain.DiagnosticFailure{Trail: trail}
	}
	return result, nil
}
