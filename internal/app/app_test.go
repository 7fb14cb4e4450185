package app

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademos/campus-records/internal/service"
	"github.com/akademos/campus-records/pkg/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		Env:    config.EnvDevelopment,
		Backup: config.BackupConfig{RootDir: "/backups", Retention: 5},
	}
	a, err := New(cfg, nil, afero.NewMemMapFs())
	require.NoError(t, err)
	return a
}

func TestNewWiresEverything(t *testing.T) {
	a := newTestApp(t)

	assert.NotNil(t, a.Logger)
	assert.NotNil(t, a.StudentService)
	assert.NotNil(t, a.InstructorService)
	assert.NotNil(t, a.CourseService)
	assert.NotNil(t, a.EnrollmentService)
	assert.NotNil(t, a.ExportService)
	assert.NotNil(t, a.BackupService)
}

func TestServicesShareStores(t *testing.T) {
	a := newTestApp(t)

	student, err := a.StudentService.Create(service.CreateStudentRequest{
		RegNo:    "20240001",
		FullName: "Ada Lovelace",
		Email:    "ada@example.edu",
	})
	require.NoError(t, err)

	_, err = a.CourseService.Create(service.CreateCourseRequest{
		Code:       "CS101",
		Title:      "Intro to Programming",
		Credits:    4,
		Department: "CS",
		Semester:   "FALL_2025",
	})
	require.NoError(t, err)

	_, err = a.EnrollmentService.Enroll(student.ID, "CS101")
	require.NoError(t, err)
	assert.Equal(t, 1, a.Enrollments.Count())

	// A snapshot made through the backup service sees the same records.
	path, err := a.BackupService.Create()
	require.NoError(t, err)
	assert.True(t, a.BackupService.Verify(filepath.Base(path)))
}
