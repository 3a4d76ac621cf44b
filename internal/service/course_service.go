package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/school-backend/internal/logger"
	"github.com/stemsi/school-backend/internal/model"
	"github.com/stemsi/school-backend/internal/repository"
)

// CourseService handles course business logic.
type CourseService struct {
	courseRepo repository.CourseRepository
	log        zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo repository.CourseRepository, log zerolog.Logger) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		log:        logger.Component(log, "course_service"),
	}
}

// Create registers a new course.
func (s *CourseService) Create(ctx context.Context, name string) (*model.Course, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalid("name", "name is a required field")
	}

	course := &model.Course{Name: name}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.log.Info().Int64("course_id", course.ID).Msg("Course created")
	return course, nil
}

// GetByID retrieves a course by its ID.
func (s *CourseService) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// Rename replaces the course name. The roster is untouched.
func (s *CourseService) Rename(ctx context.Context, id int64, name string) (*model.Course, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalid("name", "name is a required field")
	}
	return s.courseRepo.UpdateName(ctx, id, name)
}

// Delete removes a course regardless of enrolled students.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("course_id", id).Msg("Course deleted")
	return nil
}
