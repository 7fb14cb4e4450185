package models

import "time"

// Course represents an offered course. Code is immutable after
// construction; InstructorID is a weak reference resolved through the
// instructor store, empty when unassigned.
type Course struct {
	Code         string    `json:"code"`
	Title        string    `json:"title"`
	Credits      int       `json:"credits"`
	Department   string    `json:"department"`
	Semester     Semester  `json:"semester"`
	InstructorID string    `json:"instructor_id,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CourseConfig carries the named construction parameters for a course.
type CourseConfig struct {
	Code         string
	Title        string
	Credits      int
	Department   string
	Semester     Semester
	InstructorID string
}

// NewCourse constructs an active course from its configuration.
func NewCourse(cfg CourseConfig) *Course {
	now := time.Now()
	return &Course{
		Code:         cfg.Code,
		Title:        cfg.Title,
		Credits:      cfg.Credits,
		Department:   cfg.Department,
		Semester:     cfg.Semester,
		InstructorID: cfg.InstructorID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Touch refreshes the update timestamp after a mutation.
func (c *Course) Touch() {
	c.UpdatedAt = time.Now()
}
