package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidQuery   ErrCode = "INVALID_QUERY"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrCourseNotFound  ErrCode = "COURSE_NOT_FOUND"
	ErrStudentNotFound ErrCode = "STUDENT_NOT_FOUND"
	ErrDuplicateEmail  ErrCode = "DUPLICATE_EMAIL"

	// ─── Enrollment ────────────────────────────────────────────────────
	ErrStudentEnrollmentLimit ErrCode = "STUDENT_ENROLLMENT_LIMIT_EXCEEDED"
	ErrCourseCapacity         ErrCode = "COURSE_CAPACITY_EXCEEDED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed"
	case ErrInvalidID:
		return "Invalid ID format"
	case ErrInvalidQuery:
		return "Invalid query parameter"
	case ErrInvalidPayload:
		return "Invalid request payload"

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found"
	case ErrCourseNotFound:
		return "No course found with ID"
	case ErrStudentNotFound:
		return "No student found with ID"
	case ErrDuplicateEmail:
		return "A student with this email has already been registered"

	// ─── Enrollment ────────────────────────────────────────────────────
	case ErrStudentEnrollmentLimit:
		return "Student has exceeded maximum allowed courses"
	case ErrCourseCapacity:
		return "The course is full"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests, please try again later"

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Internal server error"
	default:
		return "Internal server error"
	}
}
