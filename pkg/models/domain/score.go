package domain

import "time"

// SchoolType distinguishes formal schools from other institution kinds.
type SchoolType string

const (
	SchoolTypeSchool    SchoolType = "school"
	SchoolTypeCorporate SchoolType = "corporate"
	SchoolTypeOther     SchoolType = "other"
)

// ScoreRecord is one exam attempt as delivered by the data source.
// CompletedAt == nil marks an incomplete attempt; such records are
// excluded from aggregation at the ingestion boundary.
type ScoreRecord struct {
	CompetencyID   string
	CompetencyName string
	StudentID      string
	Score          float64 // 0-100
	Passed         bool
	CompletedAt    *time.Time
}

// Complete reports whether the attempt finished with a score in range.
func (r ScoreRecord) Complete() bool {
	return r.CompletedAt != nil && r.Score >= 0 && r.Score <= 100
}

// LessonRecord is one lesson-progress entry used for study-time and
// course-completion metrics.
type LessonRecord struct {
	StudentID   string
	CourseID    string
	Minutes     int
	Completed   bool
	CompletedAt *time.Time
}

// StudentProfile describes a student for cohort selection. The core
// never mutates profiles.
type StudentProfile struct {
	ID                string
	SchoolID          string
	SchoolType        SchoolType
	Grade             string
	EnrolledCourseIDs []string
}

// EnrolledIn reports whether the student is enrolled in the given course.
func (p StudentProfile) EnrolledIn(courseID string) bool {
	for _, id := range p.EnrolledCourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}

// PopulationFilter narrows the records and profiles a data source returns.
type PopulationFilter struct {
	SchoolID     string
	Grade        string
	CourseID     string
	CompetencyID string
	From         time.Time
	To           time.Time
}
