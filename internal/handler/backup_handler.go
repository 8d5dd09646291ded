package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/j1progress/progress-api/internal/models"
	"github.com/j1progress/progress-api/internal/service"
	appErrors "github.com/j1progress/progress-api/pkg/errors"
	"github.com/j1progress/progress-api/pkg/response"
)

// maxBackupBytes bounds uploaded snapshots.
const maxBackupBytes = 32 << 20

type backupService interface {
	Export(ctx context.Context) (*models.BackupFile, error)
	Import(ctx context.Context, raw []byte) (*service.ImportResult, error)
	Archive(ctx context.Context) (*service.ArchiveResult, error)
	OpenArchive(token string) (*os.File, string, error)
}

// BackupHandler wires full-store snapshot export/import to HTTP.
type BackupHandler struct {
	service backupService
}

// NewBackupHandler constructs the handler.
func NewBackupHandler(service backupService) *BackupHandler {
	return &BackupHandler{service: service}
}

// Export godoc
// @Summary Download the full data snapshot as JSON
// @Tags Backup
// @Produce json
// @Success 200 {object} models.BackupFile
// @Router /backup/export [get]
func (h *BackupHandler) Export(c *gin.Context) {
	backup, err := h.service.Export(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "backup.json"))
	c.JSON(http.StatusOK, backup)
}

// Import godoc
// @Summary Restore a previously exported snapshot
// @Tags Backup
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /backup/import [post]
func (h *BackupHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBackupBytes))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrImportFormat, "could not read backup payload"))
		return
	}
	result, err := h.service.Import(c.Request.Context(), raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Archive godoc
// @Summary Persist a snapshot server-side and return a signed download token
// @Tags Backup
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /backup/archive [post]
func (h *BackupHandler) Archive(c *gin.Context) {
	result, err := h.service.Archive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Download godoc
// @Summary Download an archived snapshot via its signed token
// @Tags Backup
// @Produce json
// @Param token path string true "Signed download token"
// @Success 200 {file} binary
// @Router /backup/download/{token} [get]
func (h *BackupHandler) Download(c *gin.Context) {
	file, name, err := h.service.OpenArchive(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Content-Type", "application/json")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, file)
}
