package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/school-backend/internal/repository"
	"github.com/stemsi/school-backend/internal/response"
	"github.com/stemsi/school-backend/internal/service"
)

// writeError maps a domain outcome to its status and body. Anything not
// recognised here is reported as the generic 500 and attached to the
// context for the request logger.
func writeError(c *gin.Context, err error) {
	var dup *service.DuplicateEmailError
	var invalid *service.ValidationError

	switch {
	case errors.Is(err, repository.ErrCourseNotFound):
		response.FailWith(c, http.StatusNotFound, response.ErrCourseNotFound, gin.H{"courseId": idParam(c, "courseId")})
	case errors.Is(err, repository.ErrStudentNotFound):
		response.FailWith(c, http.StatusNotFound, response.ErrStudentNotFound, gin.H{"studentId": idParam(c, "studentId")})
	case errors.As(err, &dup):
		response.FailWith(c, http.StatusBadRequest, response.ErrDuplicateEmail, gin.H{"emailAddress": dup.Email})
	case errors.As(err, &invalid):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, invalid.Fields)
	case errors.Is(err, service.ErrStudentEnrollmentLimitExceeded):
		response.Fail(c, http.StatusBadRequest, response.ErrStudentEnrollmentLimit)
	case errors.Is(err, service.ErrCourseCapacityExceeded):
		response.Fail(c, http.StatusBadRequest, response.ErrCourseCapacity)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// setIDs records the ids an error body reports under their JSON names.
func setIDs(c *gin.Context, courseID, studentID int64) {
	if courseID != 0 {
		c.Set("courseId", courseID)
	}
	if studentID != 0 {
		c.Set("studentId", studentID)
	}
}

func idParam(c *gin.Context, key string) int64 {
	return c.GetInt64(key)
}

// parseID reads the :id path parameter. It writes the 400 response itself
// and returns false when the parameter is not a positive integer.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// pageQuery holds the shared pagination parameters.
type pageQuery struct {
	Page int `form:"page,default=0" binding:"min=0"`
	Size int `form:"size,default=10" binding:"min=1"`
}
