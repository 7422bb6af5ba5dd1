package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/edu-tools/cohort-atlas/pkg/models/domain"
	"github.com/edu-tools/cohort-atlas/pkg/models/store"
)

// Store reads the population slice one report request needs. Each
// method is a single batched query; batch callers fan out reads here
// instead of issuing per-student queries.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &Store{db: db}, nil
}

func (s *Store) StudentProfiles(ctx context.Context, filter domain.PopulationFilter) ([]domain.StudentProfile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, school_id, school_type, grade
		FROM students
		WHERE school_id = $1
		ORDER BY id`, filter.SchoolID)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	profiles, err := scanProfileRows(rows)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollments(ctx, filter.SchoolID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.StudentProfile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, domain.StudentProfile{
			ID:                p.ID,
			SchoolID:          p.SchoolID,
			SchoolType:        domain.SchoolType(p.SchoolType),
			Grade:             p.Grade,
			EnrolledCourseIDs: enrollments[p.ID],
		})
	}
	return out, nil
}

func (s *Store) enrollments(ctx context.Context, schoolID string) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.student_id, e.course_id
		FROM enrollments e
		JOIN students s ON s.id = e.student_id
		WHERE s.school_id = $1
		ORDER BY e.student_id, e.course_id`, schoolID)
	if err != nil {
		return nil, fmt.Errorf("query enrollments: %w", err)
	}
	defer rows.Close()

	byStudent := make(map[string][]string)
	for rows.Next() {
		var studentID, courseID string
		if err := rows.Scan(&studentID, &courseID); err != nil {
			return nil, err
		}
		byStudent[studentID] = append(byStudent[studentID], courseID)
	}
	return byStudent, rows.Err()
}

func (s *Store) ScoreRecords(ctx context.Context, filter domain.PopulationFilter) ([]domain.ScoreRecord, error) {
	query := `
		SELECT r.competency_id, c.name, r.student_id, r.score, r.passed, r.completed_at
		FROM score_records r
		JOIN competencies c ON c.id = r.competency_id
		JOIN students s ON s.id = r.student_id
		WHERE s.school_id = $1`
	args := []interface{}{filter.SchoolID}

	// Incomplete attempts carry NULL completed_at and must survive the
	// date filter; the aggregator excludes them later.
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += fmt.Sprintf(" AND (r.completed_at IS NULL OR r.completed_at >= $%d)", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += fmt.Sprintf(" AND (r.completed_at IS NULL OR r.completed_at < $%d)", len(args))
	}
	query += " ORDER BY r.student_id, r.completed_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query score records: %w", err)
	}
	defer rows.Close()
	return scanScoreRows(rows)
}

func (s *Store) LessonRecords(ctx context.Context, studentIDs []string) ([]domain.LessonRecord, error) {
	if len(studentIDs) == 0 {
		return []domain.LessonRecord{}, nil
	}

	placeholders := make([]string, len(studentIDs))
	args := make([]interface{}, len(studentIDs))
	for i, id := range studentIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT student_id, course_id, minutes, completed, completed_at
		FROM lesson_progress
		WHERE student_id IN (%s)
		ORDER BY student_id, course_id`, strings.Join(placeholders, ","))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lesson progress: %w", err)
	}
	defer rows.Close()
	return scanLessonRows(rows)
}

func scanProfileRows(rows *sql.Rows) ([]store.ProfileRow, error) {
	profiles := make([]store.ProfileRow, 0)
	for rows.Next() {
		var p store.ProfileRow
		var schoolID sql.NullString
		if err := rows.Scan(&p.ID, &schoolID, &p.SchoolType, &p.Grade); err != nil {
			return nil, err
		}
		p.SchoolID = schoolID.String
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func scanScoreRows(rows *sql.Rows) ([]domain.ScoreRecord, error) {
	records := make([]domain.ScoreRecord, 0)
	for rows.Next() {
		var r store.ScoreRow
		var completedAt sql.NullTime
		if err := rows.Scan(&r.CompetencyID, &r.CompetencyName, &r.StudentID, &r.Score, &r.Passed, &completedAt); err != nil {
			return nil, err
		}
		var completed *time.Time
		if completedAt.Valid {
			t := completedAt.Time
			completed = &t
		}
		records = append(records, domain.ScoreRecord{
			CompetencyID:   r.CompetencyID,
			CompetencyName: r.CompetencyName,
			StudentID:      r.StudentID,
			Score:          r.Score,
			Passed:         r.Passed,
			CompletedAt:    completed,
		})
	}
	return records, rows.Err()
}

func scanLessonRows(rows *sql.Rows) ([]domain.LessonRecord, error) {
	lessons := make([]domain.LessonRecord, 0)
	for rows.Next() {
		var l store.LessonRow
		var completedAt sql.NullTime
		if err := rows.Scan(&l.StudentID, &l.CourseID, &l.Minutes, &l.Completed, &completedAt); err != nil {
			return nil, err
		}
		var completed *time.Time
		if completedAt.Valid {
			t := completedAt.Time
			completed = &t
		}
		lessons = append(lessons, domain.LessonRecord{
			StudentID:   l.StudentID,
			CourseID:    l.CourseID,
			Minutes:     l.Minutes,
			Completed:   l.Completed,
			CompletedAt: completed,
		})
	}
	return lessons, rows.Err()
}
