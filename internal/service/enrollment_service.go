package service

import (
	"sync"

	"go.uber.org/zap"

	"github.com/akademos/campus-records/internal/models"
	"github.com/akademos/campus-records/internal/store"
	appErrors "github.com/akademos/campus-records/pkg/errors"
)

// MaxCreditsPerSemester caps the ENROLLED credit load a student may carry
// within one semester.
const MaxCreditsPerSemester = 18

// EnrollmentService enforces the enrollment business rules: duplicate
// detection, the semester credit ceiling, status transitions, and GPA
// derivation.
type EnrollmentService struct {
	enrollments *store.Store[*models.Enrollment]
	students    *store.Store[*models.Student]
	courses     *store.Store[*models.Course]
	logger      *zap.Logger

	// mu serializes check-then-act sequences over the enrollment table.
	// The table itself is safe for concurrent access, but duplicate and
	// credit checks span multiple calls.
	mu sync.Mutex
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(enrollments *store.Store[*models.Enrollment], students *store.Store[*models.Student], courses *store.Store[*models.Course], logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{enrollments: enrollments, students: students, courses: courses, logger: logger}
}

// Enroll registers a student in a course. It fails when the pair is
// already enrolled or when the course would push the student past the
// semester credit ceiling.
func (s *EnrollmentService) Enroll(studentID, courseCode string) (*models.Enrollment, error) {
	student, ok := s.students.FindByID(studentID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	course, ok := s.courses.FindByID(courseCode)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.EnrollmentKey(student.ID, course.Code)
	if s.enrollments.Exists(key) {
		return nil, appErrors.ErrDuplicateEnrollment
	}

	current := s.currentCredits(student.ID, course.Semester)
	if current+course.Credits > MaxCreditsPerSemester {
		return nil, appErrors.ErrCreditLimitExceeded
	}

	enrollment := models.NewEnrollment(student.ID, course.Code)
	s.enrollments.Save(enrollment)
	s.logger.Debug("student enrolled",
		zap.String("student_id", student.ID),
		zap.String("course_code", course.Code),
		zap.Int("semester_credits", current+course.Credits),
	)
	return enrollment, nil
}

// Withdraw marks an ENROLLED enrollment as withdrawn and stamps the
// withdrawal time. Any other state, including a missing enrollment, is a
// no-op.
func (s *EnrollmentService) Withdraw(studentID, courseCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	enrollment, ok := s.enrollments.FindByID(models.EnrollmentKey(studentID, courseCode))
	if !ok || enrollment.Status != models.EnrollmentStatusEnrolled {
		return nil
	}
	enrollment.Withdraw()
	s.enrollments.Save(enrollment)
	s.recomputeGPA(studentID)
	return nil
}

// AssignGrade records a grade, completing the enrollment and recomputing
// the student's GPA. A missing enrollment is a no-op; grading a withdrawn
// enrollment is rejected.
func (s *EnrollmentService) AssignGrade(studentID, courseCode string, grade models.Grade) error {
	if !grade.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown grade")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	enrollment, ok := s.enrollments.FindByID(models.EnrollmentKey(studentID, courseCode))
	if !ok {
		return nil
	}
	if enrollment.Status == models.EnrollmentStatusWithdrawn {
		return appErrors.Clone(appErrors.ErrConflict, "cannot grade a withdrawn enrollment")
	}
	enrollment.SetGrade(grade)
	s.enrollments.Save(enrollment)
	s.recomputeGPA(studentID)
	return nil
}

// CalculateGPA returns the credit-weighted grade point mean over the
// student's graded enrollments in the given semester, 0.0 when none exist.
func (s *EnrollmentService) CalculateGPA(studentID string, semester models.Semester) float64 {
	var totalPoints float64
	var totalCredits int
	for _, e := range s.FindByStudentAndSemester(studentID, semester) {
		if e.Grade == nil {
			continue
		}
		course, ok := s.courses.FindByID(e.CourseCode)
		if !ok {
			continue
		}
		totalPoints += e.Grade.Points() * float64(course.Credits)
		totalCredits += course.Credits
	}
	if totalCredits == 0 {
		return 0.0
	}
	return totalPoints / float64(totalCredits)
}

// CurrentCredits sums the course credits of the student's ENROLLED
// enrollments in the given semester. Completed and withdrawn enrollments
// do not count toward the concurrent load.
func (s *EnrollmentService) CurrentCredits(studentID string, semester models.Semester) int {
	var total int
	for _, e := range s.FindByStudentAndSemester(studentID, semester) {
		if e.Status != models.EnrollmentStatusEnrolled {
			continue
		}
		if course, ok := s.courses.FindByID(e.CourseCode); ok {
			total += course.Credits
		}
	}
	return total
}

// HasPassedPrerequisites reports whether the student satisfies the
// course's prerequisites. No prerequisite data exists yet, so every
// student passes.
func (s *EnrollmentService) HasPassedPrerequisites(studentID, courseCode string) bool {
	return true
}

// FindByStudent returns every enrollment held by the student, withdrawn
// ones included.
func (s *EnrollmentService) FindByStudent(studentID string) []*models.Enrollment {
	return s.enrollments.FindBy(func(e *models.Enrollment) bool {
		return e.StudentID == studentID
	})
}

// FindByCourse returns every enrollment in the course.
func (s *EnrollmentService) FindByCourse(courseCode string) []*models.Enrollment {
	return s.enrollments.FindBy(func(e *models.Enrollment) bool {
		return e.CourseCode == courseCode
	})
}

// FindByStudentAndSemester returns the student's enrollments whose course
// runs in the given semester.
func (s *EnrollmentService) FindByStudentAndSemester(studentID string, semester models.Semester) []*models.Enrollment {
	return s.enrollments.FindBy(func(e *models.Enrollment) bool {
		if e.StudentID != studentID {
			return false
		}
		course, ok := s.courses.FindByID(e.CourseCode)
		return ok && course.Semester == semester
	})
}

// currentCredits is the unexported scan behind CurrentCredits, reused
// while the engine mutex is already held.
func (s *EnrollmentService) currentCredits(studentID string, semester models.Semester) int {
	return s.CurrentCredits(studentID, semester)
}

// recomputeGPA rederives the student's cumulative GPA over graded,
// non-withdrawn enrollments across all semesters.
func (s *EnrollmentService) recomputeGPA(studentID string) {
	student, ok := s.students.FindByID(studentID)
	if !ok {
		return
	}

	var totalPoints float64
	var totalCredits int
	for _, e := range s.FindByStudent(studentID) {
		if e.Grade == nil || e.Status == models.EnrollmentStatusWithdrawn {
			continue
		}
		course, ok := s.courses.FindByID(e.CourseCode)
		if !ok {
			continue
		}
		totalPoints += e.Grade.Points() * float64(course.Credits)
		totalCredits += course.Credits
	}

	gpa := 0.0
	if totalCredits > 0 {
		gpa = totalPoints / float64(totalCredits)
	}
	student.GPA = gpa
	student.Touch()
	s.students.Save(student)
}
