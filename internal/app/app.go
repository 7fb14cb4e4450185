// Package app wires configuration, logging, stores, and services into a
// ready-to-use application. The interactive front end lives outside this
// module and consumes the assembled services.
package app

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/akademos/campus-records/internal/models"
	"github.com/akademos/campus-records/internal/service"
	"github.com/akademos/campus-records/internal/store"
	"github.com/akademos/campus-records/pkg/config"
	"github.com/akademos/campus-records/pkg/storage"
)

// App bundles the live stores and services of one running instance.
type App struct {
	Config *config.Config
	Logger *zap.Logger

	Students    *store.Store[*models.Student]
	Instructors *store.Store[*models.Instructor]
	Courses     *store.Store[*models.Course]
	Enrollments *store.Store[*models.Enrollment]

	StudentService    *service.StudentService
	InstructorService *service.InstructorService
	CourseService     *service.CourseService
	EnrollmentService *service.EnrollmentService
	ExportService     *service.ExportService
	BackupService     *service.BackupService
}

// New assembles an App on the given filesystem. Passing nil uses the OS
// filesystem; tests pass a memory fs.
func New(cfg *config.Config, logger *zap.Logger, fs afero.Fs) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	students := store.NewStudents()
	instructors := store.NewInstructors()
	courses := store.NewCourses()
	enrollments := store.NewEnrollments()

	backupStore, err := storage.New(fs, cfg.Backup.RootDir)
	if err != nil {
		return nil, err
	}

	validate := validator.New()

	enrollmentSvc := service.NewEnrollmentService(enrollments, students, courses, logger)
	exportSvc := service.NewExportService(students, courses, enrollments, enrollmentSvc, backupStore, logger)

	return &App{
		Config:            cfg,
		Logger:            logger,
		Students:          students,
		Instructors:       instructors,
		Courses:           courses,
		Enrollments:       enrollments,
		StudentService:    service.NewStudentService(students, enrollments, courses, validate, logger),
		InstructorService: service.NewInstructorService(instructors, validate, logger),
		CourseService:     service.NewCourseService(courses, instructors, validate, logger),
		EnrollmentService: enrollmentSvc,
		ExportService:     exportSvc,
		BackupService:     service.NewBackupService(backupStore, exportSvc, logger),
	}, nil
}
