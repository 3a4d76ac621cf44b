package service

import (
	"context"
	"math"

	"github.com/stemsi/school-backend/internal/model"
	"github.com/stemsi/school-backend/internal/repository"
)

// ListingService produces paginated, optionally filtered views.
type ListingService struct {
	courseRepo  repository.CourseRepository
	studentRepo repository.StudentRepository
	maxPageSize int
}

// NewListingService creates a new ListingService. A maxPageSize of zero or
// less disables clamping.
func NewListingService(
	courseRepo repository.CourseRepository,
	studentRepo repository.StudentRepository,
	maxPageSize int,
) *ListingService {
	return &ListingService{
		courseRepo:  courseRepo,
		studentRepo: studentRepo,
		maxPageSize: maxPageSize,
	}
}

// ListCourses returns one page of courses, only those without students
// when noStudentsOnly is set.
func (s *ListingService) ListCourses(ctx context.Context, noStudentsOnly bool, page, size int) (model.Page[model.Course], error) {
	size, err := s.normalize(page, size)
	if err != nil {
		return model.Page[model.Course]{}, err
	}

	courses, total, err := s.courseRepo.ListPage(ctx, filterFor(noStudentsOnly), size, page*size)
	if err != nil {
		return model.Page[model.Course]{}, err
	}
	return model.NewPage(courses, page, size, total), nil
}

// ListStudents returns one page of students, only those without courses
// when noCoursesOnly is set.
func (s *ListingService) ListStudents(ctx context.Context, noCoursesOnly bool, page, size int) (model.Page[model.Student], error) {
	size, err := s.normalize(page, size)
	if err != nil {
		return model.Page[model.Student]{}, err
	}

	students, total, err := s.studentRepo.ListPage(ctx, filterFor(noCoursesOnly), size, page*size)
	if err != nil {
		return model.Page[model.Student]{}, err
	}
	return model.NewPage(students, page, size, total), nil
}

// normalize validates page and size and returns the effective size.
func (s *ListingService) normalize(page, size int) (int, error) {
	if page < 0 {
		return 0, invalid("page", "page must be zero or greater")
	}
	if size < 1 {
		return 0, invalid("size", "size must be at least 1")
	}
	if s.maxPageSize > 0 && size > s.maxPageSize {
		size = s.maxPageSize
	}
	if page > math.MaxInt32/size {
		return 0, invalid("page", "page is out of range")
	}
	return size, nil
}

func filterFor(noRelationsOnly bool) model.RelationFilter {
	if noRelationsOnly {
		return model.FilterNoRelations
	}
	return model.FilterAll
}
