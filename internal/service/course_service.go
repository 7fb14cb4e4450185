package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/akademos/campus-records/internal/models"
	"github.com/akademos/campus-records/internal/store"
	appErrors "github.com/akademos/campus-records/pkg/errors"
)

// CreateCourseRequest describes course creation.
type CreateCourseRequest struct {
	Code         string `json:"code" validate:"required"`
	Title        string `json:"title" validate:"required"`
	Credits      int    `json:"credits" validate:"required,min=1,max=6"`
	Department   string `json:"department" validate:"required,max=50"`
	Semester     string `json:"semester" validate:"required"`
	InstructorID string `json:"instructor_id"`
}

// UpdateCourseRequest carries optional course updates.
type UpdateCourseRequest struct {
	Title      *string `json:"title"`
	Credits    *int    `json:"credits" validate:"omitempty,min=1,max=6"`
	Department *string `json:"department" validate:"omitempty,max=50"`
}

// CourseService manages the course catalog and instructor assignment.
type CourseService struct {
	courses     *store.Store[*models.Course]
	instructors *store.Store[*models.Instructor]
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(courses *store.Store[*models.Course], instructors *store.Store[*models.Instructor], validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{courses: courses, instructors: instructors, validator: validate, logger: logger}
}

// Create adds a course to the catalog. Course codes are unique and
// immutable once created.
func (s *CourseService) Create(req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid course payload")
	}
	semester, err := models.ParseSemester(req.Semester)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid semester")
	}
	if s.courses.Exists(req.Code) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "course code already in use")
	}
	if req.InstructorID != "" && !s.instructors.Exists(req.InstructorID) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
	}

	course := models.NewCourse(models.CourseConfig{
		Code:         req.Code,
		Title:        req.Title,
		Credits:      req.Credits,
		Department:   req.Department,
		Semester:     semester,
		InstructorID: req.InstructorID,
	})
	s.courses.Save(course)

	if req.InstructorID != "" {
		if instructor, ok := s.instructors.FindByID(req.InstructorID); ok {
			instructor.AssignCourse(course.Code)
			s.instructors.Save(instructor)
		}
	}

	s.logger.Debug("course created", zap.String("code", course.Code), zap.String("semester", string(course.Semester)))
	return course, nil
}

// Get returns a course by code.
func (s *CourseService) Get(code string) (*models.Course, error) {
	course, ok := s.courses.FindByID(code)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return course, nil
}

// Update applies catalog changes to an existing course.
func (s *CourseService) Update(code string, req UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid course payload")
	}
	course, err := s.Get(code)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.Department != nil {
		course.Department = *req.Department
	}
	course.Touch()
	s.courses.Save(course)
	return course, nil
}

// List returns every course.
func (s *CourseService) List() []*models.Course {
	return s.courses.FindAll()
}

// AssignInstructor points the course at an instructor and records the
// course on the instructor's assignment list.
func (s *CourseService) AssignInstructor(code, instructorID string) error {
	course, err := s.Get(code)
	if err != nil {
		return err
	}
	instructor, ok := s.instructors.FindByID(instructorID)
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
	}
	course.InstructorID = instructor.ID
	course.Touch()
	s.courses.Save(course)

	instructor.AssignCourse(course.Code)
	s.instructors.Save(instructor)
	return nil
}

// FindByDepartment returns active courses in the department.
func (s *CourseService) FindByDepartment(department string) []*models.Course {
	return s.courses.FindBy(func(c *models.Course) bool {
		return c.Active && c.Department == department
	})
}

// FindBySemester returns active courses running in the semester.
func (s *CourseService) FindBySemester(semester models.Semester) []*models.Course {
	return s.courses.FindBy(func(c *models.Course) bool {
		return c.Active && c.Semester == semester
	})
}

// FindByInstructor returns active courses assigned to the instructor.
func (s *CourseService) FindByInstructor(instructorID string) []*models.Course {
	return s.courses.FindBy(func(c *models.Course) bool {
		return c.Active && c.InstructorID == instructorID
	})
}

// Deactivate soft-deletes a course; missing codes are a no-op.
func (s *CourseService) Deactivate(code string) {
	course, ok := s.courses.FindByID(code)
	if !ok {
		return
	}
	course.Active = false
	course.Touch()
	s.courses.Save(course)
}

// Delete removes a course record entirely, silently if absent.
func (s *CourseService) Delete(code string) {
	s.courses.Delete(code)
}
