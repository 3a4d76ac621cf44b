package model

// Course is a course students can enroll in. Enrolled students are resolved
// through the enrollment relation.
type Course struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CourseRequest is the payload for creating or renaming a course.
type CourseRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}
