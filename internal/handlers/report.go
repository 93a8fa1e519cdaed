// internal/handlers/report.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conapesca/repa-backend/internal/services"
	"github.com/conapesca/repa-backend/internal/utils"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GET /reportes/registro
func (h *ReportHandler) Registro(c *gin.Context) {
	caller, _ := utils.GetCaller(c)
	if caller.SolicitanteID == 0 {
		utils.NotFoundResponse(c, "Aún no ha capturado su perfil")
		return
	}

	h.writePDF(c, caller.SolicitanteID)
}

// GET /admin/solicitantes/:id/reporte
func (h *ReportHandler) RegistroAdmin(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	h.writePDF(c, id)
}

// The PDF is built fully in memory before any byte is written, so failures
// still produce a clean JSON error instead of a truncated download.
func (h *ReportHandler) writePDF(c *gin.Context, solicitanteID uint) {
	pdfBytes, err := h.reportService.GenerateRegistro(c.Request.Context(), solicitanteID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("registro-repa-%d.pdf", solicitanteID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
