package cohort

import "github.com/edu-tools/cohort-atlas/pkg/models/domain"

// Stage names appear verbatim in diagnostic trails, so they are fixed
// identifiers rather than display strings.
const (
	StageInstitutionType = "institution-type"
	StageGrade           = "grade"
	StageEnrollment      = "course-enrollment"
	StageParticipation   = "competency-participation"
)

// InstitutionTypeStage keeps only students attached to a formal school.
// Corporate and other institution kinds never enter academic cohorts.
func InstitutionTypeStage() Stage {
	return Stage{
		Name: StageInstitutionType,
		Apply: func(s domain.StudentProfile) (bool, string) {
			if s.SchoolID == "" {
				return false, "no institution assigned"
			}
			if s.SchoolType != domain.SchoolTypeSchool {
				return false, "institution type not 'school'"
			}
			return true, ""
		},
	}
}

// GradeStage keeps students enrolled in the requested grade. An empty
// requested grade keeps everyone.
func GradeStage(grade string) Stage {
	return Stage{
		Name: StageGrade,
		Apply: func(s domain.StudentProfile) (bool, string) {
			if grade == "" || s.Grade == grade {
				return true, ""
			}
			return false, "grade mismatch"
		},
	}
}

// EnrollmentStage keeps students enrolled in the requested course. An
// empty course id keeps everyone.
func EnrollmentStage(courseID string) Stage {
	return Stage{
		Name: StageEnrollment,
		Apply: func(s domain.StudentProfile) (bool, string) {
			if courseID == "" || s.EnrolledIn(courseID) {
				return true, ""
			}
			return false, "not enrolled in course"
		},
	}
}

// ParticipationStage keeps students with at least one qualifying score
// record for the requested competency. recordsByStudent must hold the
// complete record slice per student; when no competency is requested,
// any record qualifies.
func ParticipationStage(recordsByStudent map[string][]domain.ScoreRecord, competencyID string) Stage {
	return Stage{
		Name: StageParticipation,
		Apply: func(s domain.StudentProfile) (bool, string) {
			for _, r := range recordsByStudent[s.ID] {
				if competencyID == "" || r.CompetencyID == competencyID {
					return true, ""
				}
			}
			return false, "no qualifying score records"
		},
	}
}

// DefaultStages is the canonical stage order for this domain:
// institution type, grade, course enrollment, competency participation.
func DefaultStages(filter domain.PopulationFilter, recordsByStudent map[string][]domain.ScoreRecord) []Stage {
	return []Stage{
		InstitutionTypeStage(),
		GradeStage(filter.Grade),
		EnrollmentStage(filter.CourseID),
		ParticipationStage(recordsByStudent, filter.CompetencyID),
	}
}
