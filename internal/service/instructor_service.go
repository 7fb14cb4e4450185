package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akademos/campus-records/internal/models"
	"github.com/akademos/campus-records/internal/store"
	appErrors "github.com/akademos/campus-records/pkg/errors"
)

// CreateInstructorRequest describes instructor creation.
type CreateInstructorRequest struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department" validate:"required,max=50"`
	Title      string `json:"title" validate:"required"`
}

// UpdateInstructorRequest carries optional instructor updates.
type UpdateInstructorRequest struct {
	FullName   *string `json:"full_name" validate:"omitempty,max=100"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Department *string `json:"department" validate:"omitempty,max=50"`
	Title      *string `json:"title"`
}

// InstructorService manages the instructor roster.
type InstructorService struct {
	instructors *store.Store[*models.Instructor]
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewInstructorService constructs InstructorService.
func NewInstructorService(instructors *store.Store[*models.Instructor], validate *validator.Validate, logger *zap.Logger) *InstructorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstructorService{instructors: instructors, validator: validate, logger: logger}
}

// Create registers a new instructor, generating an id when none is given.
func (s *InstructorService) Create(req CreateInstructorRequest) (*models.Instructor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid instructor payload")
	}
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	if s.instructors.Exists(id) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "instructor id already in use")
	}
	instructor := models.NewInstructor(id, req.FullName, req.Email, req.Department, req.Title)
	s.instructors.Save(instructor)
	s.logger.Debug("instructor created", zap.String("instructor_id", instructor.ID))
	return instructor, nil
}

// Get returns an instructor by id.
func (s *InstructorService) Get(id string) (*models.Instructor, error) {
	instructor, ok := s.instructors.FindByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
	}
	return instructor, nil
}

// Update applies profile changes to an existing instructor.
func (s *InstructorService) Update(id string, req UpdateInstructorRequest) (*models.Instructor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid instructor payload")
	}
	instructor, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		instructor.FullName = *req.FullName
	}
	if req.Email != nil {
		instructor.Email = *req.Email
	}
	if req.Department != nil {
		instructor.Department = *req.Department
	}
	if req.Title != nil {
		instructor.Title = *req.Title
	}
	instructor.Touch()
	s.instructors.Save(instructor)
	return instructor, nil
}

// List returns every instructor.
func (s *InstructorService) List() []*models.Instructor {
	return s.instructors.FindAll()
}

// Deactivate soft-deletes an instructor; missing ids are a no-op.
func (s *InstructorService) Deactivate(id string) {
	instructor, ok := s.instructors.FindByID(id)
	if !ok {
		return
	}
	instructor.Active = false
	instructor.Touch()
	s.instructors.Save(instructor)
}
