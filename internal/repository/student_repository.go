package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/school-backend/internal/model"
)

type studentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a PostgreSQL-backed StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

// Create inserts a new student. A clash on the unique email index yields ErrDuplicateEmail.
func (r *studentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (first_name, last_name, email_address)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		s.FirstName, s.LastName, s.EmailAddress,
	).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	return r.getOne(ctx,
		`SELECT id, first_name, last_name, email_address FROM students WHERE id = $1`, id)
}

// GetByEmail is an exact, case-sensitive lookup.
func (r *studentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	return r.getOne(ctx,
		`SELECT id, first_name, last_name, email_address FROM students WHERE email_address = $1`, email)
}

func (r *studentRepository) getOne(ctx context.Context, query string, arg any) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx, query, arg).Scan(&s.ID, &s.FirstName, &s.LastName, &s.EmailAddress)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return s, nil
}

// Update applies the non-nil fields of u.
func (r *studentRepository) Update(ctx context.Context, id int64, u model.StudentUpdate) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`UPDATE students SET
		   first_name = COALESCE($1, first_name),
		   last_name = COALESCE($2, last_name),
		   email_address = COALESCE($3, email_address),
		   updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4
		 RETURNING id, first_name, last_name, email_address`,
		u.FirstName, u.LastName, u.EmailAddress, id,
	).Scan(&s.ID, &s.FirstName, &s.LastName, &s.EmailAddress)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return s, nil
}

// Delete removes a student. Its enrollment rows go with it (ON DELETE CASCADE).
func (r *studentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}
	return nil
}

func (r *studentRepository) ListPage(ctx context.Context, filter model.RelationFilter, limit, offset int) ([]model.Student, int64, error) {
	where := ""
	if filter == model.FilterNoRelations {
		where = ` WHERE NOT EXISTS (SELECT 1 FROM course_enrollments e WHERE e.student_id = s.id)`
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students s`+where).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.first_name, s.last_name, s.email_address FROM students s`+where+
			` ORDER BY s.id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	students, err := scanStudents(rows)
	return students, total, err
}

func scanStudents(rows pgx.Rows) ([]model.Student, error) {
	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.EmailAddress); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}
