package service

import (
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akademos/campus-records/internal/models"
	"github.com/akademos/campus-records/internal/store"
	appErrors "github.com/akademos/campus-records/pkg/errors"
)

// CreateStudentRequest describes student creation.
type CreateStudentRequest struct {
	ID       string `json:"id"`
	RegNo    string `json:"reg_no" validate:"required"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
}

// UpdateStudentRequest carries optional profile updates.
type UpdateStudentRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// StudentService manages the student roster.
type StudentService struct {
	students    *store.Store[*models.Student]
	enrollments *store.Store[*models.Enrollment]
	courses     *store.Store[*models.Course]
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewStudentService constructs StudentService.
func NewStudentService(students *store.Store[*models.Student], enrollments *store.Store[*models.Enrollment], courses *store.Store[*models.Course], validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{students: students, enrollments: enrollments, courses: courses, validator: validate, logger: logger}
}

// Create registers a new student. An id is generated when none is given;
// ids and registration numbers must be unused.
func (s *StudentService) Create(req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid student payload")
	}
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	if s.students.Exists(id) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student id already in use")
	}
	if existing := s.FindByRegNo(req.RegNo); existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "registration number already in use")
	}
	student := models.NewStudent(id, req.RegNo, req.FullName, req.Email)
	s.students.Save(student)
	s.logger.Debug("student created", zap.String("student_id", student.ID), zap.String("reg_no", student.RegNo))
	return student, nil
}

// Get returns a student by id.
func (s *StudentService) Get(id string) (*models.Student, error) {
	student, ok := s.students.FindByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return student, nil
}

// Update applies profile changes to an existing student.
func (s *StudentService) Update(id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid student payload")
	}
	student, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	student.Touch()
	s.students.Save(student)
	return student, nil
}

// List returns every student.
func (s *StudentService) List() []*models.Student {
	return s.students.FindAll()
}

// FindByRegNo returns the student holding the registration number, or nil.
func (s *StudentService) FindByRegNo(regNo string) *models.Student {
	matches := s.students.FindBy(func(st *models.Student) bool {
		return st.RegNo == regNo
	})
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// FindByDepartment returns active students with at least one non-withdrawn
// enrollment in a course of the department. The student's course list is a
// derived view over the enrollment table, not an owned collection.
func (s *StudentService) FindByDepartment(department string) []*models.Student {
	return s.students.FindBy(func(st *models.Student) bool {
		if !st.Active {
			return false
		}
		enrolled := s.enrollments.FindBy(func(e *models.Enrollment) bool {
			if e.StudentID != st.ID || e.Status == models.EnrollmentStatusWithdrawn {
				return false
			}
			course, ok := s.courses.FindByID(e.CourseCode)
			return ok && course.Department == department
		})
		return len(enrolled) > 0
	})
}

// AverageGPA returns the mean GPA across active students, 0.0 when there
// are none.
func (s *StudentService) AverageGPA() float64 {
	var sum float64
	var count int
	for _, st := range s.students.FindAll() {
		if !st.Active {
			continue
		}
		sum += st.GPA
		count++
	}
	if count == 0 {
		return 0.0
	}
	return sum / float64(count)
}

// TopPerformers returns up to limit active students ordered by GPA,
// highest first.
func (s *StudentService) TopPerformers(limit int) []*models.Student {
	active := s.students.FindBy(func(st *models.Student) bool { return st.Active })
	sort.Slice(active, func(i, j int) bool { return active[i].GPA > active[j].GPA })
	if limit >= 0 && len(active) > limit {
		active = active[:limit]
	}
	return active
}

// Deactivate soft-deletes a student; missing ids are a no-op.
func (s *StudentService) Deactivate(id string) {
	student, ok := s.students.FindByID(id)
	if !ok {
		return
	}
	student.Active = false
	student.Touch()
	s.students.Save(student)
}

// Delete removes a student record entirely, silently if absent.
func (s *StudentService) Delete(id string) {
	s.students.Delete(id)
}
