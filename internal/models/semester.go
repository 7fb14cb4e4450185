package models

import (
	"fmt"
	"time"
)

// Semester identifies an academic term.
type Semester string

const (
	SemesterFall2025   Semester = "FALL_2025"
	SemesterSpring2026 Semester = "SPRING_2026"
	SemesterSummer2026 Semester = "SUMMER_2026"
)

type semesterSpan struct {
	year       int
	startMonth time.Month
	endMonth   time.Month
}

var semesterSpans = map[Semester]semesterSpan{
	SemesterFall2025:   {2025, time.September, time.December},
	SemesterSpring2026: {2026, time.January, time.May},
	SemesterSummer2026: {2026, time.June, time.August},
}

// Semesters lists all known semesters in calendar order.
func Semesters() []Semester {
	return []Semester{SemesterFall2025, SemesterSpring2026, SemesterSummer2026}
}

// ParseSemester resolves a semester literal.
func ParseSemester(value string) (Semester, error) {
	s := Semester(value)
	if _, ok := semesterSpans[s]; !ok {
		return "", fmt.Errorf("unknown semester %q", value)
	}
	return s, nil
}

// Valid reports whether the semester is a known literal.
func (s Semester) Valid() bool {
	_, ok := semesterSpans[s]
	return ok
}

// StartDate returns the first day of the semester.
func (s Semester) StartDate() time.Time {
	span := semesterSpans[s]
	return time.Date(span.year, span.startMonth, 1, 0, 0, 0, 0, time.UTC)
}

// EndDate returns the last day of the semester.
func (s Semester) EndDate() time.Time {
	span := semesterSpans[s]
	firstOfNext := time.Date(span.year, span.endMonth+1, 1, 0, 0, 0, 0, time.UTC)
	return firstOfNext.AddDate(0, 0, -1)
}

// ActiveAt reports whether the given instant falls within the semester.
func (s Semester) ActiveAt(at time.Time) bool {
	day := at.UTC().Truncate(24 * time.Hour)
	return !day.Before(s.StartDate()) && !day.After(s.EndDate())
}

// CurrentSemester returns the semester containing the given instant, if any.
func CurrentSemester(at time.Time) (Semester, bool) {
	for _, s := range Semesters() {
		if s.ActiveAt(at) {
			return s, true
		}
	}
	return "", false
}
