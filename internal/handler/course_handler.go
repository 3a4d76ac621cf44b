package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/school-backend/internal/model"
	"github.com/stemsi/school-backend/internal/response"
	"github.com/stemsi/school-backend/internal/service"
	"github.com/stemsi/school-backend/internal/validator"
)

// CourseHandler handles course CRUD, rosters and enrollment.
type CourseHandler struct {
	courseService     *service.CourseService
	enrollmentService *service.EnrollmentService
	listingService    *service.ListingService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(
	courseService *service.CourseService,
	enrollmentService *service.EnrollmentService,
	listingService *service.ListingService,
) *CourseHandler {
	return &CourseHandler{
		courseService:     courseService,
		enrollmentService: enrollmentService,
		listingService:    listingService,
	}
}

type listCoursesQuery struct {
	pageQuery
	NoStudentsOnly bool `form:"noStudentsOnly"`
}

// ListCourses godoc
// GET /courses?noStudentsOnly&page&size
func (h *CourseHandler) ListCourses(c *gin.Context) {
	var q listCoursesQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidQuery, fields)
		return
	}

	page, err := h.listingService.ListCourses(c.Request.Context(), q.NoStudentsOnly, q.Page, q.Size)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// CreateCourse godoc
// POST /courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req model.CourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, course)
}

// GetCourse godoc
// GET /courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	setIDs(c, id, 0)

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, course)
}

// ListCourseStudents godoc
// GET /courses/:id/students
func (h *CourseHandler) ListCourseStudents(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	setIDs(c, id, 0)

	students, err := h.enrollmentService.StudentsOfCourse(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, students)
}

// UpdateCourse godoc
// PUT /courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	setIDs(c, id, 0)

	var req model.CourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, course)
}

// DeleteCourse godoc
// DELETE /courses/:id
// Enrolled students do not block deletion.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	setIDs(c, id, 0)

	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Empty(c, http.StatusNoContent)
}

// Enroll godoc
// POST /courses/:id/enroll
func (h *CourseHandler) Enroll(c *gin.Context) {
	courseID, ok := parseID(c)
	if !ok {
		return
	}

	var req model.EnrollRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	setIDs(c, courseID, req.StudentID)

	if err := h.enrollmentService.Enroll(c.Request.Context(), courseID, req.StudentID); err != nil {
		writeError(c, err)
		return
	}
	response.Empty(c, http.StatusCreated)
}
