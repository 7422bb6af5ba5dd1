package store

import "time"

// ScoreRow is the exam attempt shape as read from the scores table.
type ScoreRow struct {
	CompetencyID   string
	CompetencyName string
	StudentID      string
	Score          float64
	Passed         bool
	CompletedAt    *time.Time
}

// ProfileRow is one student profile row; EnrolledCourseIDs comes from
// the enrollments join aggregated per student.
type ProfileRow struct {
	ID                string
	SchoolID          string
	SchoolType        string
	Grade             string
	EnrolledCourseIDs []string
}

// LessonRow is one lesson-progress row.
type LessonRow struct {
	StudentID   string
	CourseID    string
	Minutes     int
	Completed   bool
	CompletedAt *time.Time
}
