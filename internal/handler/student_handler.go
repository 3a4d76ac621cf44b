package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/school-backend/internal/model"
	"github.com/stemsi/school-backend/internal/response"
	"github.com/stemsi/school-backend/internal/service"
	"github.com/stemsi/school-backend/internal/validator"
)

// StudentHandler handles student registration, CRUD and course lookups.
type StudentHandler struct {
	studentService    *service.StudentService
	enrollmentService *service.EnrollmentService
	listingService    *service.ListingService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(
	studentService *service.StudentService,
	enrollmentService *service.EnrollmentService,
	listingService *service.ListingService,
) *StudentHandler {
	return &StudentHandler{
		studentService:    studentService,
		enrollmentService: enrollmentService,
		listingService:    listingService,
	}
}

type listStudentsQuery struct {
	pageQuery
	NoCoursesOnly bool `form:"noCoursesOnly"`
}

// RegisterStudent godoc
// POST /students
func (h *StudentHandler) RegisterStudent(c *gin.Context) {
	var req model.RegisterStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, student)
}

// ListStudents godoc
// GET /students?noCoursesOnly&page&size
func (h *StudentHandler) ListStudents(c *gin.Context) {
	var q listStudentsQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidQuery, fields)
		return
	}

	page, err := h.listingService.ListStudents(c.Request.Context(), q.NoCoursesOnly, q.Page, q.Size)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// GetStudent godoc
// GET /students/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	setIDs(c, 0, id)

	student, err := h.studentService.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, student)
}

// ListStudentCourses godoc
// GET /students/:id/courses
func (h *StudentHandler) ListStudentCourses(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	setIDs(c, 0, id)

	courses, err := h.enrollmentService.CoursesOfStudent(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, courses)
}

// UpdateStudent godoc
// PUT /students/:id
// Only the fields present in the body are changed.
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	setIDs(c, 0, id)

	var req model.UpdateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), id, req.ToUpdate())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, student)
}

// DeleteStudent godoc
// DELETE /students/:id
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	setIDs(c, 0, id)

	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Empty(c, http.StatusNoContent)
}
