package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stemsi/school-backend/internal/model"
)

var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrDuplicateEmail  = errors.New("student with this email address already exists")
)

// PostgreSQL error codes handled by the repositories.
const (
	pgUniqueViolation = "23505"
)

// EnrollmentCheck decides whether a pending enrollment may proceed given the
// counts observed while both endpoints are locked. A non-nil error aborts it.
type EnrollmentCheck func(counts model.EnrollmentCounts) error

// CourseRepository is the course half of the entity store.
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	UpdateName(ctx context.Context, id int64, name string) (*model.Course, error)
	Delete(ctx context.Context, id int64) error
	ListPage(ctx context.Context, filter model.RelationFilter, limit, offset int) ([]model.Course, int64, error)
}

// StudentRepository is the student half of the entity store.
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	Update(ctx context.Context, id int64, update model.StudentUpdate) (*model.Student, error)
	Delete(ctx context.Context, id int64) error
	ListPage(ctx context.Context, filter model.RelationFilter, limit, offset int) ([]model.Student, int64, error)
}

// EnrollmentRepository owns the course/student join relation.
type EnrollmentRepository interface {
	// Enroll resolves both endpoints, runs check against the current counts
	// and adds the pair, all as one atomic step. Adding an existing pair is a no-op.
	Enroll(ctx context.Context, courseID, studentID int64, check EnrollmentCheck) error
	StudentsOfCourse(ctx context.Context, courseID int64) ([]model.Student, error)
	CoursesOfStudent(ctx context.Context, studentID int64) ([]model.Course, error)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
