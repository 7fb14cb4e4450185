package models

import "time"

// Instructor represents a teacher. AssignedCourses is a convenience index
// of course codes, kept duplicate-free.
type Instructor struct {
	ID              string    `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	Department      string    `json:"department"`
	Title           string    `json:"title"`
	AssignedCourses []string  `json:"assigned_courses"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewInstructor constructs an active instructor with fresh timestamps.
func NewInstructor(id, fullName, email, department, title string) *Instructor {
	now := time.Now()
	return &Instructor{
		ID:         id,
		FullName:   fullName,
		Email:      email,
		Department: department,
		Title:      title,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// AssignCourse records a course code; adding one twice is a no-op.
func (i *Instructor) AssignCourse(code string) {
	for _, c := range i.AssignedCourses {
		if c == code {
			return
		}
	}
	i.AssignedCourses = append(i.AssignedCourses, code)
	i.Touch()
}

// UnassignCourse removes a course code if present.
func (i *Instructor) UnassignCourse(code string) {
	for idx, c := range i.AssignedCourses {
		if c == code {
			i.AssignedCourses = append(i.AssignedCourses[:idx], i.AssignedCourses[idx+1:]...)
			i.Touch()
			return
		}
	}
}

// Touch refreshes the update timestamp after a mutation.
func (i *Instructor) Touch() {
	i.UpdatedAt = time.Now()
}

func (i *Instructor) PersonID() string     { return i.ID }
func (i *Instructor) Name() string         { return i.FullName }
func (i *Instructor) EmailAddress() string { return i.Email }
func (i *Instructor) IsActive() bool       { return i.Active }
func (i *Instructor) Role() string         { return "Instructor" }
