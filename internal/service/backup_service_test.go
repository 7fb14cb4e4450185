package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akademos/campus-records/internal/models"
	appErrors "github.com/akademos/campus-records/pkg/errors"
	"github.com/akademos/campus-records/pkg/storage"
)

type backupFixture struct {
	*codecFixture
	backups *BackupService
	clock   time.Time
}

func newBackupFixture(t *testing.T) *backupFixture {
	t.Helper()
	f := newCodecFixture(t)
	bf := &backupFixture{
		codecFixture: f,
		backups:      NewBackupService(f.storage, f.codec, zap.NewNop()),
		clock:        time.Date(2025, time.September, 1, 10, 0, 0, 0, time.UTC),
	}
	bf.backups.now = func() time.Time {
		bf.clock = bf.clock.Add(time.Second)
		return bf.clock
	}
	return bf
}

func TestBackupCreateAndVerify(t *testing.T) {
	f := newBackupFixture(t)
	f.seed(t)

	path, err := f.backups.Create()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data", "backup_20250901_100001"), path)
	assert.True(t, f.backups.Verify("backup_20250901_100001"))
}

func TestBackupVerifyIncomplete(t *testing.T) {
	f := newBackupFixture(t)

	assert.False(t, f.backups.Verify("backup_missing"))

	// A partial snapshot, e.g. after a failure between file writes.
	require.NoError(t, f.storage.EnsureDir("backup_20250901_090000"))
	require.NoError(t, f.storage.WriteFile("backup_20250901_090000/"+StudentsFile, []byte("id\n")))
	assert.False(t, f.backups.Verify("backup_20250901_090000"))
}

func TestBackupListSortsChronologically(t *testing.T) {
	f := newBackupFixture(t)
	require.NoError(t, f.storage.EnsureDir("backup_20240101_000000"))
	require.NoError(t, f.storage.EnsureDir("backup_20231231_235959"))
	require.NoError(t, f.storage.WriteFile("stray.txt", []byte("not a snapshot")))
	require.NoError(t, f.storage.EnsureDir("unrelated"))

	names, err := f.backups.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"backup_20231231_235959", "backup_20240101_000000"}, names)
}

func TestBackupPruneKeepsMostRecent(t *testing.T) {
	f := newBackupFixture(t)
	f.seed(t)

	for i := 0; i < 5; i++ {
		_, err := f.backups.Create()
		require.NoError(t, err)
	}
	names, err := f.backups.List()
	require.NoError(t, err)
	require.Len(t, names, 5)

	require.NoError(t, f.backups.Prune(2))

	remaining, err := f.backups.List()
	require.NoError(t, err)
	assert.Equal(t, names[3:], remaining)

	// The pruned directories are gone entirely, contents included.
	exists, err := afero.DirExists(f.fs, filepath.Join("/data", names[0]))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBackupPruneNoopWhenUnderLimit(t *testing.T) {
	f := newBackupFixture(t)
	f.seed(t)
	_, err := f.backups.Create()
	require.NoError(t, err)

	require.NoError(t, f.backups.Prune(5))
	names, err := f.backups.List()
	require.NoError(t, err)
	assert.Len(t, names, 1)
}

func TestBackupSize(t *testing.T) {
	f := newBackupFixture(t)
	f.seed(t)

	path, err := f.backups.Create()
	require.NoError(t, err)

	size, err := f.backups.Size(path)
	require.NoError(t, err)

	var expected int64
	for _, name := range []string{StudentsFile, CoursesFile, EnrollmentsFile} {
		raw, err := f.storage.ReadFile(filepath.Join(path, name))
		require.NoError(t, err)
		expected += int64(len(raw))
	}
	assert.Equal(t, expected, size)

	_, err = f.backups.Size("backup_missing")
	assert.Error(t, err)
}

func TestBackupRestore(t *testing.T) {
	f := newBackupFixture(t)
	f.seed(t)
	path, err := f.backups.Create()
	require.NoError(t, err)

	target, codec := f.freshImportTarget(t)
	restorer := NewBackupService(f.storage, codec, zap.NewNop())

	require.NoError(t, restorer.Restore(path))
	assert.Equal(t, 2, target.students.Count())
	assert.Equal(t, 2, target.courses.Count())
	assert.Equal(t, 3, target.enrollments.Count())
}

func TestBackupRestoreIsAdditive(t *testing.T) {
	f := newBackupFixture(t)
	f.seed(t)
	path, err := f.backups.Create()
	require.NoError(t, err)

	target, codec := f.freshImportTarget(t)
	// A record absent from the snapshot survives restoration.
	target.students.Save(models.NewStudent("s9", "20249999", "Survivor", "s9@example.edu"))

	restorer := NewBackupService(f.storage, codec, zap.NewNop())
	require.NoError(t, restorer.Restore(path))

	assert.Equal(t, 3, target.students.Count())
	assert.True(t, target.students.Exists("s9"))
}

func TestBackupRestoreInvalidTarget(t *testing.T) {
	f := newBackupFixture(t)

	assert.ErrorIs(t, f.backups.Restore("backup_missing"), appErrors.ErrInvalidSnapshot)

	require.NoError(t, f.storage.WriteFile("backup_file", []byte("not a directory")))
	assert.ErrorIs(t, f.backups.Restore("backup_file"), appErrors.ErrInvalidSnapshot)
}

func TestBackupCreateOnSeparateRoot(t *testing.T) {
	// Snapshots land under the configured root, untouched by other data.
	fs := afero.NewMemMapFs()
	st, err := storage.New(fs, "/var/backups")
	require.NoError(t, err)
	f := newEngineFixture()
	codec := NewExportService(f.students, f.courses, f.enrollments, f.engine, st, zap.NewNop())
	backups := NewBackupService(st, codec, zap.NewNop())

	path, err := backups.Create()
	require.NoError(t, err)
	assert.True(t, backups.Verify(filepath.Base(path)))

	names, err := backups.List()
	require.NoError(t, err)
	assert.Len(t, names, 1)
}
