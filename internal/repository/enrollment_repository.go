package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/school-backend/internal/database"
	"github.com/stemsi/school-backend/internal/model"
)

type enrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a PostgreSQL-backed EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) EnrollmentRepository {
	return &enrollmentRepository{pool: pool}
}

// Enroll locks the course row and then the student row for the duration of
// the transaction. Every enroll takes its locks in that order, so concurrent
// enrolls touching the same course or student are serialized without
// forming a lock cycle.
func (r *enrollmentRepository) Enroll(ctx context.Context, courseID, studentID int64, check EnrollmentCheck) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockRow(ctx, tx, `SELECT id FROM courses WHERE id = $1 FOR UPDATE`, courseID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrCourseNotFound
			}
			return fmt.Errorf("lock course: %w", err)
		}
		if err := lockRow(ctx, tx, `SELECT id FROM students WHERE id = $1 FOR UPDATE`, studentID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrStudentNotFound
			}
			return fmt.Errorf("lock student: %w", err)
		}

		var counts model.EnrollmentCounts
		err := tx.QueryRow(ctx,
			`SELECT
			   (SELECT COUNT(*) FROM course_enrollments WHERE student_id = $1),
			   (SELECT COUNT(*) FROM course_enrollments WHERE course_id = $2)`,
			studentID, courseID,
		).Scan(&counts.StudentCourses, &counts.CourseStudents)
		if err != nil {
			return fmt.Errorf("count enrollments: %w", err)
		}

		if err := check(counts); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO course_enrollments (course_id, student_id)
			 VALUES ($1, $2)
			 ON CONFLICT (course_id, student_id) DO NOTHING`,
			courseID, studentID,
		); err != nil {
			return fmt.Errorf("insert enrollment: %w", err)
		}
		return nil
	})
}

func lockRow(ctx context.Context, tx pgx.Tx, query string, id int64) error {
	var locked int64
	return tx.QueryRow(ctx, query, id).Scan(&locked)
}

func (r *enrollmentRepository) StudentsOfCourse(ctx context.Context, courseID int64) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.first_name, s.last_name, s.email_address
		 FROM course_enrollments e
		 JOIN students s ON s.id = e.student_id
		 WHERE e.course_id = $1
		 ORDER BY s.id`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students, err := scanStudents(rows)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

func (r *enrollmentRepository) CoursesOfStudent(ctx context.Context, studentID int64) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.name
		 FROM course_enrollments e
		 JOIN courses c ON c.id = e.course_id
		 WHERE e.student_id = $1
		 ORDER BY c.id`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}
