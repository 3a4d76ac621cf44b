// Package memstore is an in-process implementation of the entity store.
// A single mutex guards all state, so the enroll check-then-add sequence and
// the unique email index behave atomically, matching the PostgreSQL
// repositories. Data lives only as long as the process.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/stemsi/school-backend/internal/model"
	"github.com/stemsi/school-backend/internal/repository"
)

type pair struct {
	courseID  int64
	studentID int64
}

// Store holds students, courses and the enrollment relation.
type Store struct {
	mu          sync.Mutex
	nextCourse  int64
	nextStudent int64
	courses     map[int64]model.Course
	students    map[int64]model.Student
	emails      map[string]int64
	enrollments map[pair]struct{}
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		courses:     make(map[int64]model.Course),
		students:    make(map[int64]model.Student),
		emails:      make(map[string]int64),
		enrollments: make(map[pair]struct{}),
	}
}

// Courses returns the course repository view of the store.
func (s *Store) Courses() repository.CourseRepository { return (*courseRepo)(s) }

// Students returns the student repository view of the store.
func (s *Store) Students() repository.StudentRepository { return (*studentRepo)(s) }

// Enrollments returns the enrollment repository view of the store.
func (s *Store) Enrollments() repository.EnrollmentRepository { return (*enrollmentRepo)(s) }

// ─── Courses ────────────────────────────────────────────────────────────

type courseRepo Store

func (r *courseRepo) Create(_ context.Context, c *model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextCourse++
	c.ID = r.nextCourse
	r.courses[c.ID] = *c
	return nil
}

func (r *courseRepo) GetByID(_ context.Context, id int64) (*model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, repository.ErrCourseNotFound
	}
	return &c, nil
}

func (r *courseRepo) UpdateName(_ context.Context, id int64, name string) (*model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, repository.ErrCourseNotFound
	}
	c.Name = name
	r.courses[id] = c
	return &c, nil
}

func (r *courseRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[id]; !ok {
		return repository.ErrCourseNotFound
	}
	delete(r.courses, id)
	for p := range r.enrollments {
		if p.courseID == id {
			delete(r.enrollments, p)
		}
	}
	return nil
}

func (r *courseRepo) ListPage(_ context.Context, filter model.RelationFilter, limit, offset int) ([]model.Course, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []model.Course
	for _, id := range sortedKeys(r.courses) {
		if filter == model.FilterNoRelations && (*Store)(r).courseCount(id) > 0 {
			continue
		}
		matched = append(matched, r.courses[id])
	}
	return window(matched, limit, offset), int64(len(matched)), nil
}

// ─── Students ───────────────────────────────────────────────────────────

type studentRepo Store

func (r *studentRepo) Create(_ context.Context, st *model.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.emails[st.EmailAddress]; taken {
		return repository.ErrDuplicateEmail
	}
	r.nextStudent++
	st.ID = r.nextStudent
	r.students[st.ID] = *st
	r.emails[st.EmailAddress] = st.ID
	return nil
}

func (r *studentRepo) GetByID(_ context.Context, id int64) (*model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.students[id]
	if !ok {
		return nil, repository.ErrStudentNotFound
	}
	return &st, nil
}

func (r *studentRepo) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.emails[email]
	if !ok {
		return nil, repository.ErrStudentNotFound
	}
	st := r.students[id]
	return &st, nil
}

func (r *studentRepo) Update(_ context.Context, id int64, u model.StudentUpdate) (*model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.students[id]
	if !ok {
		return nil, repository.ErrStudentNotFound
	}
	if u.EmailAddress != nil && *u.EmailAddress != st.EmailAddress {
		if _, taken := r.emails[*u.EmailAddress]; taken {
			return nil, repository.ErrDuplicateEmail
		}
		delete(r.emails, st.EmailAddress)
		r.emails[*u.EmailAddress] = id
	}
	u.Apply(&st)
	r.students[id] = st
	return &st, nil
}

func (r *studentRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.students[id]
	if !ok {
		return repository.ErrStudentNotFound
	}
	delete(r.students, id)
	delete(r.emails, st.EmailAddress)
	for p := range r.enrollments {
		if p.studentID == id {
			delete(r.enrollments, p)
		}
	}
	return nil
}

func (r *studentRepo) ListPage(_ context.Context, filter model.RelationFilter, limit, offset int) ([]model.Student, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []model.Student
	for _, id := range sortedKeys(r.students) {
		if filter == model.FilterNoRelations && (*Store)(r).studentCount(id) > 0 {
			continue
		}
		matched = append(matched, r.students[id])
	}
	return window(matched, limit, offset), int64(len(matched)), nil
}

// ─── Enrollments ────────────────────────────────────────────────────────

type enrollmentRepo Store

func (r *enrollmentRepo) Enroll(_ context.Context, courseID, studentID int64, check repository.EnrollmentCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courses[courseID]; !ok {
		return repository.ErrCourseNotFound
	}
	if _, ok := r.students[studentID]; !ok {
		return repository.ErrStudentNotFound
	}

	s := (*Store)(r)
	counts := model.EnrollmentCounts{
		StudentCourses: s.studentCount(studentID),
		CourseStudents: s.courseCount(courseID),
	}
	if err := check(counts); err != nil {
		return err
	}

	r.enrollments[pair{courseID: courseID, studentID: studentID}] = struct{}{}
	return nil
}

func (r *enrollmentRepo) StudentsOfCourse(_ context.Context, courseID int64) ([]model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	students := []model.Student{}
	for _, id := range sortedKeys(r.students) {
		if _, ok := r.enrollments[pair{courseID: courseID, studentID: id}]; ok {
			students = append(students, r.students[id])
		}
	}
	return students, nil
}

func (r *enrollmentRepo) CoursesOfStudent(_ context.Context, studentID int64) ([]model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	courses := []model.Course{}
	for _, id := range sortedKeys(r.courses) {
		if _, ok := r.enrollments[pair{courseID: id, studentID: studentID}]; ok {
			courses = append(courses, r.courses[id])
		}
	}
	return courses, nil
}

// ─── Helpers (callers hold mu) ──────────────────────────────────────────

func (s *Store) courseCount(courseID int64) int {
	n := 0
	for p := range s.enrollments {
		if p.courseID == courseID {
			n++
		}
	}
	return n
}

func (s *Store) studentCount(studentID int64) int {
	n := 0
	for p := range s.enrollments {
		if p.studentID == studentID {
			n++
		}
	}
	return n
}

// sortedKeys returns ids in ascending, i.e. creation, order.
func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) || end < offset {
		end = len(items)
	}
	out := make([]T, end-offset)
	copy(out, items[offset:end])
	return out
}
