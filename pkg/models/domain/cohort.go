package domain

// StageTrace records what one filter stage did to the candidate set.
type StageTrace struct {
	Name            string
	Before          int
	After           int
	ExcludedReasons map[string]int
}

// CohortResult is the outcome of running the filter pipeline: the
// surviving population plus the full per-stage trail.
type CohortResult struct {
	Students []StudentProfile
	Trail    []StageTrace
}

// Empty reports whether no students survived the pipeline.
func (r CohortResult) Empty() bool {
	return len(r.Students) == 0
}

// DiagnosticFailure is the structured "empty cohort" value. It is a
// normal output, not an error: the trail explains to an operator which
// stage emptied the set and why.
type DiagnosticFailure struct {
	Trail []StageTrace
}

// EmptiedBy returns the trace of the stage that reduced the population
// to zero, if any.
func (f DiagnosticFailure) EmptiedBy() (StageTrace, bool) {
	for _, t := range f.Trail {
		if t.Before > 0 && t.After == 0 {
			return t, true
		}
	}
	return StageTrace{}, false
}
