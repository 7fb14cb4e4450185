package models

import "time"

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusEnrolled  EnrollmentStatus = "ENROLLED"
	EnrollmentStatusWithdrawn EnrollmentStatus = "WITHDRAWN"
	EnrollmentStatusCompleted EnrollmentStatus = "COMPLETED"
)

// ParseEnrollmentStatus resolves a status literal.
func ParseEnrollmentStatus(value string) (EnrollmentStatus, bool) {
	switch EnrollmentStatus(value) {
	case EnrollmentStatusEnrolled, EnrollmentStatusWithdrawn, EnrollmentStatusCompleted:
		return EnrollmentStatus(value), true
	}
	return "", false
}

// Enrollment captures a student's registration in a course. The pair
// (StudentID, CourseCode) uniquely identifies it.
type Enrollment struct {
	StudentID   string           `json:"student_id"`
	CourseCode  string           `json:"course_code"`
	EnrolledAt  time.Time        `json:"enrolled_at"`
	WithdrawnAt *time.Time       `json:"withdrawn_at,omitempty"`
	Status      EnrollmentStatus `json:"status"`
	Grade       *Grade           `json:"grade,omitempty"`
}

// EnrollmentKey builds the composite lookup key for a student/course pair.
func EnrollmentKey(studentID, courseCode string) string {
	return studentID + "-" + courseCode
}

// NewEnrollment constructs an enrollment in ENROLLED state.
func NewEnrollment(studentID, courseCode string) *Enrollment {
	return &Enrollment{
		StudentID:  studentID,
		CourseCode: courseCode,
		EnrolledAt: time.Now(),
		Status:     EnrollmentStatusEnrolled,
	}
}

// Key returns the composite identity of the enrollment.
func (e *Enrollment) Key() string {
	return EnrollmentKey(e.StudentID, e.CourseCode)
}

// SetGrade records a grade and marks the enrollment completed.
func (e *Enrollment) SetGrade(grade Grade) {
	g := grade
	e.Grade = &g
	e.Status = EnrollmentStatusCompleted
}

// Withdraw marks the enrollment withdrawn and stamps the withdrawal time.
func (e *Enrollment) Withdraw() {
	now := time.Now()
	e.WithdrawnAt = &now
	e.Status = EnrollmentStatusWithdrawn
}
