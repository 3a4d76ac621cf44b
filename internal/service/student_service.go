package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/school-backend/internal/logger"
	"github.com/stemsi/school-backend/internal/model"
	"github.com/stemsi/school-backend/internal/repository"
)

// StudentService handles student registration and maintenance.
type StudentService struct {
	studentRepo repository.StudentRepository
	log         zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo repository.StudentRepository, log zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		log:         logger.Component(log, "student_service"),
	}
}

// Register creates a student after checking that the email is free.
// The lookup short-circuits the common case; the unique index on
// email_address catches registrations racing past it.
func (s *StudentService) Register(ctx context.Context, req model.RegisterStudentRequest) (*model.Student, error) {
	if fields := requiredFields(map[string]string{
		"firstName":    req.FirstName,
		"lastName":     req.LastName,
		"emailAddress": req.EmailAddress,
	}); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	if err := s.ensureEmailFree(ctx, req.EmailAddress, 0); err != nil {
		return nil, err
	}

	student := &model.Student{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, &DuplicateEmailError{Email: req.EmailAddress}
		}
		return nil, err
	}

	s.log.Info().Int64("student_id", student.ID).Msg("Student registered")
	return student, nil
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetByEmail retrieves a student by exact email address.
func (s *StudentService) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	return s.studentRepo.GetByEmail(ctx, email)
}

// Update applies a partial update. Enrollments are never touched here.
func (s *StudentService) Update(ctx context.Context, id int64, update model.StudentUpdate) (*model.Student, error) {
	fields := map[string]string{}
	for name, v := range map[string]*string{
		"firstName":    update.FirstName,
		"lastName":     update.LastName,
		"emailAddress": update.EmailAddress,
	} {
		if v != nil && strings.TrimSpace(*v) == "" {
			fields[name] = name + " must not be blank"
		}
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if update.Empty() {
		return s.studentRepo.GetByID(ctx, id)
	}

	if update.EmailAddress != nil {
		if err := s.ensureEmailFree(ctx, *update.EmailAddress, id); err != nil {
			return nil, err
		}
	}

	student, err := s.studentRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, &DuplicateEmailError{Email: *update.EmailAddress}
		}
		return nil, err
	}
	return student, nil
}

// Delete removes a student regardless of enrollments.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("student_id", id).Msg("Student deleted")
	return nil
}

// ensureEmailFree fails with DuplicateEmailError when email belongs to a
// student other than ownerID (0 for a new student).
func (s *StudentService) ensureEmailFree(ctx context.Context, email string, ownerID int64) error {
	existing, err := s.studentRepo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrStudentNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != ownerID:
		return &DuplicateEmailError{Email: email}
	}
	return nil
}

func requiredFields(values map[string]string) map[string]string {
	var fields map[string]string
	for name, v := range values {
		if strings.TrimSpace(v) == "" {
			if fields == nil {
				fields = make(map[string]string)
			}
			fields[name] = name + " is a required field"
		}
	}
	return fields
}
