// internal/handlers/admin.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/conapesca/repa-backend/internal/services"
	"github.com/conapesca/repa-backend/internal/utils"
)

type AdminHandler struct {
	adminService       *services.AdminService
	pescaService       *services.PescaService
	acuaculturaService *services.AcuaculturaService
	backupService      *services.BackupService
}

func NewAdminHandler(adminService *services.AdminService, pescaService *services.PescaService, acuaculturaService *services.AcuaculturaService, backupService *services.BackupService) *AdminHandler {
	return &AdminHandler{
		adminService:       adminService,
		pescaService:       pescaService,
		acuaculturaService: acuaculturaService,
		backupService:      backupService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

// GET /admin/solicitantes
func (h *AdminHandler) ListSolicitantes(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.adminService.ListSolicitantes(params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /admin/solicitantes/:id
func (h *AdminHandler) GetSolicitante(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.adminService.GetSolicitanteDetail(id, h.pescaService, h.acuaculturaService)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, detail)
}

// PUT /admin/solicitantes/:id
func (h *AdminHandler) UpdateSolicitante(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdatePerfilRequest
	if !bindAndValidate(c, &req) {
		return
	}

	solicitante, err := h.adminService.UpdateSolicitante(id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, solicitante)
}

// DELETE /admin/solicitantes/:id
func (h *AdminHandler) DeleteSolicitante(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteSolicitante(id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Solicitante eliminado"})
}

// POST /admin/reset (superadmin only)
func (h *AdminHandler) ResetSystem(c *gin.Context) {
	var req services.ResetSystemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.adminService.ResetSystem(&req); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "El sistema se restableció correctamente"})
}

// GET /admin/respaldo (superadmin only)
//
// Streams the dump straight to the client; once bytes are flowing a failure
// can only truncate the download, which pg_dump's trailing comment makes
// detectable.
func (h *AdminHandler) DownloadBackup(c *gin.Context) {
	filename := fmt.Sprintf("repa-%s.sql", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/sql")
	c.Status(http.StatusOK)

	if err := h.backupService.Stream(c.Request.Context(), c.Writer); err != nil {
		if c.Writer.Size() <= 0 {
			c.Header("Content-Disposition", "")
			handleServiceError(c, err)
			return
		}
		logrus.WithError(err).Error("Backup stream aborted mid-transfer")
	}
}

// POST /admin/respaldo/archivar (superadmin only)
func (h *AdminHandler) ArchiveBackup(c *gin.Context) {
	key, err := h.backupService.ArchiveToS3(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Respaldo archivado", "key": key})
}
