package report

import "errors"

// ErrStudentNotInCohort marks a student-report request for a student
// the filter pipeline did not retain (or that does not exist). The HTTP
// layer maps it to 404.
var ErrStudentNotInCohort = errors.New("student not in cohort")
