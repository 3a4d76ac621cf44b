package model

// Student is a registered student. Enrolled courses are not embedded; they
// are resolved through the enrollment relation.
type Student struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

// StudentUpdate carries the mutable student fields. Nil fields are left untouched.
type StudentUpdate struct {
	FirstName    *string
	LastName     *string
	EmailAddress *string
}

// Empty reports whether the update changes nothing.
func (u StudentUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.EmailAddress == nil
}

// Apply copies the non-nil fields of u onto s.
func (u StudentUpdate) Apply(s *Student) {
	if u.FirstName != nil {
		s.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		s.LastName = *u.LastName
	}
	if u.EmailAddress != nil {
		s.EmailAddress = *u.EmailAddress
	}
}

// RegisterStudentRequest is the payload for registering a student.
type RegisterStudentRequest struct {
	FirstName    string `json:"firstName" binding:"required,max=255"`
	LastName     string `json:"lastName" binding:"required,max=255"`
	EmailAddress string `json:"emailAddress" binding:"required,max=320"`
}

// UpdateStudentRequest is the payload for a partial student update.
type UpdateStudentRequest struct {
	FirstName    *string `json:"firstName" binding:"omitempty,min=1,max=255"`
	LastName     *string `json:"lastName" binding:"omitempty,min=1,max=255"`
	EmailAddress *string `json:"emailAddress" binding:"omitempty,min=1,max=320"`
}

// ToUpdate converts the request into a StudentUpdate.
func (r UpdateStudentRequest) ToUpdate() StudentUpdate {
	return StudentUpdate{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		EmailAddress: r.EmailAddress,
	}
}
