package models

import "time"

// Student represents a learner registered in the institution. RegNo is
// immutable after construction; GPA is derived and recomputed by the
// enrollment service whenever grades change.
type Student struct {
	ID             string    `json:"id"`
	RegNo          string    `json:"reg_no"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	EnrollmentDate time.Time `json:"enrollment_date"`
	GPA            float64   `json:"gpa"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewStudent constructs an active student with fresh timestamps.
func NewStudent(id, regNo, fullName, email string) *Student {
	now := time.Now()
	return &Student{
		ID:             id,
		RegNo:          regNo,
		FullName:       fullName,
		Email:          email,
		EnrollmentDate: now,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Touch refreshes the update timestamp after a mutation.
func (s *Student) Touch() {
	s.UpdatedAt = time.Now()
}

func (s *Student) PersonID() string     { return s.ID }
func (s *Student) Name() string         { return s.FullName }
func (s *Student) EmailAddress() string { return s.Email }
func (s *Student) IsActive() bool       { return s.Active }
func (s *Student) Role() string         { return "Student" }
