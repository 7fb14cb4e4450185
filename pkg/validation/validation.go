// Package validation holds the input pattern checks consulted by front ends
// before they hand values to the services. The services validate request
// structure themselves; these helpers cover the field formats.
package validation

import (
	"regexp"
	"strings"
)

var (
	emailPattern      = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)
	courseCodePattern = regexp.MustCompile(`^[A-Z]{2,4}\d{3}$`)
	regNoPattern      = regexp.MustCompile(`^\d{8}$`)
)

// IsValidEmail reports whether the value looks like an email address.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidCourseCode reports whether the value matches the course code form,
// e.g. CS101 or MATH201.
func IsValidCourseCode(code string) bool {
	return courseCodePattern.MatchString(code)
}

// IsValidRegNo reports whether the value is an eight digit registration number.
func IsValidRegNo(regNo string) bool {
	return regNoPattern.MatchString(regNo)
}

// IsValidCredits reports whether the credit count is within the allowed range.
func IsValidCredits(credits int) bool {
	return credits >= 1 && credits <= 6
}

// IsValidName reports whether the value is a non-blank name of sane length.
func IsValidName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return trimmed != "" && len(name) <= 100
}

// IsValidDepartment reports whether the value is a non-blank department name.
func IsValidDepartment(department string) bool {
	trimmed := strings.TrimSpace(department)
	return trimmed != "" && len(department) <= 50
}

// IsValidGradePoints reports whether a grade point value is on the 4.0 scale.
func IsValidGradePoints(points float64) bool {
	return points >= 0.0 && points <= 4.0
}
