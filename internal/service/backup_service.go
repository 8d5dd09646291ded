package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/j1progress/progress-api/internal/models"
	appErrors "github.com/j1progress/progress-api/pkg/errors"
	"github.com/j1progress/progress-api/pkg/storage"
)

type backupStore interface {
	ListUnits(ctx context.Context) ([]models.Unit, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListGroups(ctx context.Context) ([]models.ProjectGroup, error)
	ListReports(ctx context.Context) ([]models.Report, error)
	SaveUnit(ctx context.Context, unit *models.Unit) error
	SaveProject(ctx context.Context, project *models.Project, previous *models.Project) error
	SaveGroup(ctx context.Context, group *models.ProjectGroup) error
	SaveReport(ctx context.Context, report *models.Report) error
}

// ArchiveResult describes a snapshot persisted to the backup directory.
type ArchiveResult struct {
	SnapshotID string    `json:"snapshotId"`
	Filename   string    `json:"filename"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// ImportResult counts the records applied from an imported snapshot.
type ImportResult struct {
	Units    int `json:"units"`
	Projects int `json:"projects"`
	Groups   int `json:"groups"`
	Reports  int `json:"reports"`
}

// BackupService exports and imports full-store snapshots and manages
// archived snapshot files with signed download tokens.
type BackupService struct {
	store  backupStore
	files  *storage.LocalStorage
	signer *storage.SignedURLSigner
	logger *zap.Logger
	now    func() time.Time
}

// NewBackupService constructs a BackupService. files and signer may be nil
// when archiving is not configured; Export and Import still work.
func NewBackupService(store backupStore, files *storage.LocalStorage, signer *storage.SignedURLSigner, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{store: store, files: files, signer: signer, logger: logger, now: time.Now}
}

// Export assembles the full snapshot of every collection.
func (s *BackupService) Export(ctx context.Context) (*models.BackupFile, error) {
	units, err := s.store.ListUnits(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	reports, err := s.store.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	return &models.BackupFile{
		Reports:   reports,
		Projects:  projects,
		Units:     units,
		Groups:    groups,
		Timestamp: s.now().UnixMilli(),
		Version:   models.BackupVersion,
	}, nil
}

// Import applies a snapshot record by record, overwriting any existing
// record with the same id. The shape is checked before any write: a
// snapshot missing reports, projects or units is rejected untouched. Groups
// stay optional for snapshots predating grouping.
func (s *BackupService) Import(ctx context.Context, raw []byte) (*ImportResult, error) {
	var probe struct {
		Reports  *json.RawMessage `json:"reports"`
		Projects *json.RawMessage `json:"projects"`
		Units    *json.RawMessage `json:"units"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrImportFormat.Code, appErrors.ErrImportFormat.Status, "backup is not valid JSON")
	}
	if probe.Reports == nil || probe.Projects == nil || probe.Units == nil {
		return nil, appErrors.Clone(appErrors.ErrImportFormat, "backup must contain reports, projects and units")
	}

	var backup models.BackupFile
	if err := json.Unmarshal(raw, &backup); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrImportFormat.Code, appErrors.ErrImportFormat.Status, "backup records are malformed")
	}

	result := &ImportResult{}
	for i := range backup.Units {
		if err := s.store.SaveUnit(ctx, &backup.Units[i]); err != nil {
			return result, err
		}
		result.Units++
	}
	for i := range backup.Groups {
		if err := s.store.SaveGroup(ctx, &backup.Groups[i]); err != nil {
			return result, err
		}
		result.Groups++
	}
	for i := range backup.Projects {
		if err := s.store.SaveProject(ctx, &backup.Projects[i], nil); err != nil {
			return result, err
		}
		result.Projects++
	}
	for i := range backup.Reports {
		if err := s.store.SaveReport(ctx, &backup.Reports[i]); err != nil {
			return result, err
		}
		result.Reports++
	}
	s.logger.Info("backup imported",
		zap.Int("units", result.Units),
		zap.Int("projects", result.Projects),
		zap.Int("groups", result.Groups),
		zap.Int("reports", result.Reports),
	)
	return result, nil
}

// Archive persists the current snapshot under the backup directory and
// returns a signed, expiring download token for it.
func (s *BackupService) Archive(ctx context.Context) (*ArchiveResult, error) {
	if s.files == nil || s.signer == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "backup archiving is not configured")
	}
	backup, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(backup)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode snapshot")
	}

	snapshotID := uuid.NewString()
	filename := fmt.Sprintf("backup-%s-%s.json", s.now().UTC().Format("20060102-150405"), snapshotID[:8])
	if _, err := s.files.Save(filename, payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist snapshot")
	}

	token, expiresAt, err := s.signer.Generate(snapshotID, filename)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download token")
	}
	return &ArchiveResult{SnapshotID: snapshotID, Filename: filename, Token: token, ExpiresAt: expiresAt}, nil
}

// OpenArchive validates the token and opens the archived snapshot file.
func (s *BackupService) OpenArchive(token string) (*os.File, string, error) {
	if s.files == nil || s.signer == nil {
		return nil, "", appErrors.Clone(appErrors.ErrInternal, "backup archiving is not configured")
	}
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	f, err := s.files.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "archived snapshot not found")
	}
	return f, relPath, nil
}
