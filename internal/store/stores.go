package store

import "github.com/akademos/campus-records/internal/models"

// NewStudents builds the student table keyed by id.
func NewStudents() *Store[*models.Student] {
	return New(func(s *models.Student) string { return s.ID })
}

// NewInstructors builds the instructor table keyed by id.
func NewInstructors() *Store[*models.Instructor] {
	return New(func(i *models.Instructor) string { return i.ID })
}

// NewCourses builds the course table keyed by course code.
func NewCourses() *Store[*models.Course] {
	return New(func(c *models.Course) string { return c.Code })
}

// NewEnrollments builds the enrollment table keyed by the composite
// student/course pair.
func NewEnrollments() *Store[*models.Enrollment] {
	return New(func(e *models.Enrollment) string { return e.Key() })
}
