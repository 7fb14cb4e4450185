package service

import (
	"path/filepath"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/akademos/campus-records/pkg/errors"
	"github.com/akademos/campus-records/pkg/storage"
)

// BackupPrefix names snapshot directories under the backup root.
const BackupPrefix = "backup_"

// backupTimestampLayout yields labels that sort lexicographically in
// chronological order.
const backupTimestampLayout = "20060102_150405"

// dataPorter is the slice of the codec the snapshot manager drives.
type dataPorter interface {
	ExportAll(dir string) error
	ImportAll(dir string) error
}

// BackupService creates, lists, restores, sizes, and prunes timestamped
// snapshot directories of the entity tables.
type BackupService struct {
	storage *storage.Storage
	porter  dataPorter
	logger  *zap.Logger
	now     func() time.Time
}

// NewBackupService constructs BackupService rooted at the storage base.
func NewBackupService(st *storage.Storage, porter dataPorter, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{storage: st, porter: porter, logger: logger, now: time.Now}
}

// Create exports every entity table into a fresh timestamped directory
// and returns its path. A failure after the directory exists leaves the
// partial snapshot on disk; Verify reports such snapshots as incomplete.
func (s *BackupService) Create() (string, error) {
	label := BackupPrefix + s.now().Format(backupTimestampLayout)
	if err := s.storage.EnsureDir(label); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, "create snapshot directory")
	}
	if err := s.porter.ExportAll(label); err != nil {
		return "", err
	}
	path := s.storage.Path(label)
	s.logger.Info("snapshot created", zap.String("path", path))
	return path, nil
}

// List returns the snapshot directory names under the root, sorted
// lexicographically, which is chronological given the fixed-width labels.
func (s *BackupService) List() ([]string, error) {
	names, err := s.storage.ListDirs(BackupPrefix)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "list snapshots")
	}
	return names, nil
}

// Restore re-imports the entity files of the snapshot into the live
// stores. The import is additive: records are upserted by key and live
// records absent from the snapshot survive.
func (s *BackupService) Restore(name string) error {
	if !s.storage.IsDir(name) {
		return appErrors.ErrInvalidSnapshot
	}
	if err := s.porter.ImportAll(name); err != nil {
		return err
	}
	s.logger.Info("snapshot restored", zap.String("path", s.storage.Path(name)))
	return nil
}

// Prune keeps the keepCount most recent snapshots and deletes the rest,
// contents first, directories after.
func (s *BackupService) Prune(keepCount int) error {
	if keepCount < 0 {
		keepCount = 0
	}
	names, err := s.List()
	if err != nil {
		return err
	}
	if len(names) <= keepCount {
		return nil
	}
	for _, name := range names[:len(names)-keepCount] {
		if err := s.storage.RemoveTree(name); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, "prune snapshot")
		}
		s.logger.Info("snapshot pruned", zap.String("path", s.storage.Path(name)))
	}
	return nil
}

// Size recursively sums the bytes of every regular file in the snapshot.
func (s *BackupService) Size(name string) (int64, error) {
	size, err := s.storage.DirSize(name)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, "size snapshot")
	}
	return size, nil
}

// Verify reports whether the snapshot directory exists and holds all
// three entity files.
func (s *BackupService) Verify(name string) bool {
	if !s.storage.IsDir(name) {
		return false
	}
	for _, file := range []string{StudentsFile, CoursesFile, EnrollmentsFile} {
		if !s.storage.FileExists(filepath.Join(name, file)) {
			return false
		}
	}
	return true
}
