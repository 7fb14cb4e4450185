package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademos/campus-records/internal/models"
)

func TestStoreSaveAndFind(t *testing.T) {
	s := NewStudents()

	saved := s.Save(models.NewStudent("s1", "20240001", "Ada Lovelace", "ada@example.edu"))
	assert.Equal(t, "s1", saved.ID)

	got, ok := s.FindByID("s1")
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", got.FullName)

	_, ok = s.FindByID("missing")
	assert.False(t, ok)
}

func TestStoreSaveOverwritesByKey(t *testing.T) {
	s := NewStudents()
	s.Save(models.NewStudent("s1", "20240001", "Ada Lovelace", "ada@example.edu"))
	s.Save(models.NewStudent("s1", "20240001", "Ada L.", "ada@example.edu"))

	assert.Equal(t, 1, s.Count())
	got, _ := s.FindByID("s1")
	assert.Equal(t, "Ada L.", got.FullName)
}

func TestStoreDeleteSilentWhenAbsent(t *testing.T) {
	s := NewStudents()
	s.Save(models.NewStudent("s1", "20240001", "Ada Lovelace", "ada@example.edu"))

	s.Delete("s1")
	s.Delete("s1")
	assert.False(t, s.Exists("s1"))
	assert.Equal(t, 0, s.Count())
}

func TestStoreFindAllReturnsSnapshot(t *testing.T) {
	s := NewCourses()
	s.Save(models.NewCourse(models.CourseConfig{Code: "CS101", Credits: 4, Semester: models.SemesterFall2025}))
	s.Save(models.NewCourse(models.CourseConfig{Code: "CS102", Credits: 3, Semester: models.SemesterFall2025}))

	all := s.FindAll()
	require.Len(t, all, 2)

	// Mutating the snapshot slice must not affect the table.
	all = all[:0]
	assert.Equal(t, 2, s.Count())
}

func TestStoreFindByPredicate(t *testing.T) {
	s := NewCourses()
	s.Save(models.NewCourse(models.CourseConfig{Code: "CS101", Department: "CS", Semester: models.SemesterFall2025}))
	s.Save(models.NewCourse(models.CourseConfig{Code: "MA201", Department: "Math", Semester: models.SemesterFall2025}))

	cs := s.FindBy(func(c *models.Course) bool { return c.Department == "CS" })
	require.Len(t, cs, 1)
	assert.Equal(t, "CS101", cs[0].Code)

	none := s.FindBy(func(c *models.Course) bool { return false })
	assert.Empty(t, none)
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewEnrollments()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		code := string(rune('A' + i%26))
		go func(code string) {
			defer wg.Done()
			s.Save(models.NewEnrollment("s1", code))
		}(code)
		go func(code string) {
			defer wg.Done()
			s.FindByID(models.EnrollmentKey("s1", code))
			s.FindAll()
		}(code)
	}
	wg.Wait()

	assert.Equal(t, 26, s.Count())
}
