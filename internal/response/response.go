package response

import (
	"github.com/gin-gonic/gin"
)

// Success responses are bare JSON: the entity, the array, or the page itself.
// Error responses are a flat object with "code" and "message" plus any
// caller-supplied keys such as "courseId" or "emailAddress".

// Success sends a successful JSON response with the given status code and data.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Empty sends a status code without a body.
func Empty(c *gin.Context, statusCode int) {
	c.Status(statusCode)
	c.Writer.WriteHeaderNow()
}

// Fail sends an error response with an error code and no extra details.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, errorBody(code, nil))
}

// FailWith sends an error response carrying extra top-level keys.
func FailWith(c *gin.Context, statusCode int, code ErrCode, extra gin.H) {
	c.JSON(statusCode, errorBody(code, extra))
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, errorBody(code, gin.H{"fields": fields}))
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, errorBody(code, nil))
}

func errorBody(code ErrCode, extra gin.H) gin.H {
	body := gin.H{}
	for k, v := range extra {
		body[k] = v
	}
	body["code"] = code
	body["message"] = GetMessage(code)
	return body
}
