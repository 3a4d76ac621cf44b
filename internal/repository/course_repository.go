package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/school-backend/internal/model"
)

type courseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a PostgreSQL-backed CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) CourseRepository {
	return &courseRepository{pool: pool}
}

func (r *courseRepository) Create(ctx context.Context, c *model.Course) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (name) VALUES ($1) RETURNING id`,
		c.Name,
	).Scan(&c.ID)
}

func (r *courseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM courses WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *courseRepository) UpdateName(ctx context.Context, id int64, name string) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`UPDATE courses SET name = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2
		 RETURNING id, name`,
		name, id,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return c, nil
}

// Delete removes a course. Its enrollment rows go with it (ON DELETE CASCADE).
func (r *courseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCourseNotFound
	}
	return nil
}

func (r *courseRepository) ListPage(ctx context.Context, filter model.RelationFilter, limit, offset int) ([]model.Course, int64, error) {
	where := ""
	if filter == model.FilterNoRelations {
		where = ` WHERE NOT EXISTS (SELECT 1 FROM course_enrollments e WHERE e.course_id = c.id)`
	}

	// 1. Get total count
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses c`+where).Scan(&total); err != nil {
		return nil, 0, err
	}

	// 2. Get paginated data
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.name FROM courses c`+where+` ORDER BY c.id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, 0, err
		}
		courses = append(courses, c)
	}
	return courses, total, rows.Err()
}
