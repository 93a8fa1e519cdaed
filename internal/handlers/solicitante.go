// internal/handlers/solicitante.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/conapesca/repa-backend/internal/services"
	"github.com/conapesca/repa-backend/internal/utils"
)

type SolicitanteHandler struct {
	solicitanteService *services.SolicitanteService
}

func NewSolicitanteHandler(solicitanteService *services.SolicitanteService) *SolicitanteHandler {
	return &SolicitanteHandler{
		solicitanteService: solicitanteService,
	}
}

// GET /perfil
func (h *SolicitanteHandler) GetPerfil(c *gin.Context) {
	caller, _ := utils.GetCaller(c)
	if caller.SolicitanteID == 0 {
		utils.NotFoundResponse(c, "Aún no ha capturado su perfil")
		return
	}

	solicitante, err := h.solicitanteService.GetByID(caller.SolicitanteID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, solicitante)
}

// PUT /perfil (Anexo 1)
func (h *SolicitanteHandler) UpdatePerfil(c *gin.Context) {
	caller, _ := utils.GetCaller(c)

	var req services.UpdatePerfilRequest
	if !bindAndValidate(c, &req) {
		return
	}

	solicitante, err := h.solicitanteService.UpdatePerfil(caller, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, solicitante)
}

// GET /perfil/anexos
func (h *SolicitanteHandler) EstadoAnexos(c *gin.Context) {
	caller, _ := utils.GetCaller(c)
	if caller.SolicitanteID == 0 {
		utils.SuccessResponse(c, gin.H{
			"anexo1": false, "anexo2": false, "anexo3": false, "anexo4": false, "anexo5": false,
		})
		return
	}

	estado, err := h.solicitanteService.EstadoAnexos(caller.SolicitanteID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, estado)
}
