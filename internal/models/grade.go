package models

import "fmt"

// Grade is a letter grade on the 4.0 scale.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

type gradeInfo struct {
	points      float64
	description string
}

var gradeTable = map[Grade]gradeInfo{
	GradeS: {4.0, "Outstanding"},
	GradeA: {3.7, "Excellent"},
	GradeB: {3.0, "Good"},
	GradeC: {2.0, "Satisfactory"},
	GradeD: {1.0, "Poor"},
	GradeF: {0.0, "Fail"},
}

// ParseGrade resolves a grade literal.
func ParseGrade(value string) (Grade, error) {
	g := Grade(value)
	if _, ok := gradeTable[g]; !ok {
		return "", fmt.Errorf("unknown grade %q", value)
	}
	return g, nil
}

// Valid reports whether the grade is a known literal.
func (g Grade) Valid() bool {
	_, ok := gradeTable[g]
	return ok
}

// Points returns the grade point value.
func (g Grade) Points() float64 {
	return gradeTable[g].points
}

// Description returns the human readable meaning of the grade.
func (g Grade) Description() string {
	return gradeTable[g].description
}
