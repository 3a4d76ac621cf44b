package model

// Enrollment is one (course, student) membership in the relation.
type Enrollment struct {
	CourseID  int64 `json:"courseId"`
	StudentID int64 `json:"studentId"`
}

// EnrollmentCounts are the relation cardinalities observed for both
// endpoints of a pending enrollment, before the pair is added.
type EnrollmentCounts struct {
	StudentCourses int
	CourseStudents int
}

// EnrollmentLimits bounds relation cardinality on each side.
type EnrollmentLimits struct {
	MaxCoursesPerStudent int
	MaxStudentsPerCourse int
}

// EnrollRequest is the payload for enrolling a student into a course.
type EnrollRequest struct {
	StudentID int64 `json:"studentId" binding:"required,min=1"`
}
