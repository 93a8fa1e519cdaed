// internal/handlers/integrante.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/conapesca/repa-backend/internal/services"
	"github.com/conapesca/repa-backend/internal/utils"
)

type IntegranteHandler struct {
	integranteService *services.IntegranteService
}

func NewIntegranteHandler(integranteService *services.IntegranteService) *IntegranteHandler {
	return &IntegranteHandler{
		integranteService: integranteService,
	}
}

// GET /integrantes (Anexo 2)
func (h *IntegranteHandler) List(c *gin.Context) {
	caller, _ := utils.GetCaller(c)
	if caller.SolicitanteID == 0 {
		utils.SuccessResponse(c, []interface{}{})
		return
	}

	integrantes, err := h.integranteService.List(caller.SolicitanteID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, integrantes)
}

// POST /integrantes
func (h *IntegranteHandler) Create(c *gin.Context) {
	caller, _ := utils.GetCaller(c)

	var req services.IntegranteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	integrante, err := h.integranteService.Create(caller, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, integrante)
}

// PUT /integrantes/:id
func (h *IntegranteHandler) Update(c *gin.Context) {
	caller, _ := utils.GetCaller(c)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.IntegranteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	integrante, err := h.integranteService.Update(caller, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, integrante)
}

// DELETE /integrantes/:id
func (h *IntegranteHandler) Delete(c *gin.Context) {
	caller, _ := utils.GetCaller(c)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.integranteService.Delete(caller, id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Integrante eliminado"})
}
