package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/stemsi/school-backend/internal/logger"
	"github.com/stemsi/school-backend/internal/model"
	"github.com/stemsi/school-backend/internal/repository"
)

// DefaultEnrollmentLimits are the system-wide relation caps.
var DefaultEnrollmentLimits = model.EnrollmentLimits{
	MaxCoursesPerStudent: 5,
	MaxStudentsPerCourse: 50,
}

// EnrollmentService enforces the enrollment caps and exposes roster lookups.
type EnrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
	studentRepo    repository.StudentRepository
	limits         model.EnrollmentLimits
	log            zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(
	enrollmentRepo repository.EnrollmentRepository,
	courseRepo repository.CourseRepository,
	studentRepo repository.StudentRepository,
	limits model.EnrollmentLimits,
	log zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		studentRepo:    studentRepo,
		limits:         limits,
		log:            logger.Component(log, "enrollment_service"),
	}
}

// Enroll adds the student to the course roster.
//
// Errors, in the order they are checked: repository.ErrCourseNotFound,
// repository.ErrStudentNotFound, ErrStudentEnrollmentLimitExceeded,
// ErrCourseCapacityExceeded. Enrolling an already enrolled pair succeeds
// without adding a second row, but the caps are still checked first.
func (s *EnrollmentService) Enroll(ctx context.Context, courseID, studentID int64) error {
	err := s.enrollmentRepo.Enroll(ctx, courseID, studentID, s.checkLimits)
	if err != nil {
		s.log.Debug().Err(err).
			Int64("course_id", courseID).
			Int64("student_id", studentID).
			Msg("Enrollment rejected")
		return err
	}

	s.log.Info().
		Int64("course_id", courseID).
		Int64("student_id", studentID).
		Msg("Student enrolled")
	return nil
}

// checkLimits runs while both endpoints are locked. The student cap wins
// when both caps are reached.
func (s *EnrollmentService) checkLimits(counts model.EnrollmentCounts) error {
	if counts.StudentCourses >= s.limits.MaxCoursesPerStudent {
		return ErrStudentEnrollmentLimitExceeded
	}
	if counts.CourseStudents >= s.limits.MaxStudentsPerCourse {
		return ErrCourseCapacityExceeded
	}
	return nil
}

// StudentsOfCourse lists the course roster in creation order.
func (s *EnrollmentService) StudentsOfCourse(ctx context.Context, courseID int64) ([]model.Student, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.enrollmentRepo.StudentsOfCourse(ctx, courseID)
}

// CoursesOfStudent lists the courses a student is enrolled in, in creation order.
func (s *EnrollmentService) CoursesOfStudent(ctx context.Context, studentID int64) ([]model.Course, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.enrollmentRepo.CoursesOfStudent(ctx, studentID)
}
