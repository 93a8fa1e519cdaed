// internal/handlers/pesca.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/conapesca/repa-backend/internal/services"
	"github.com/conapesca/repa-backend/internal/utils"
)

type PescaHandler struct {
	pescaService *services.PescaService
}

func NewPescaHandler(pescaService *services.PescaService) *PescaHandler {
	return &PescaHandler{
		pescaService: pescaService,
	}
}

// GET /anexos/pesca (Anexo 3)
func (h *PescaHandler) Get(c *gin.Context) {
	caller, _ := utils.GetCaller(c)
	if caller.SolicitanteID == 0 {
		utils.SuccessResponse(c, services.Anexo3Response{})
		return
	}

	resp, err := h.pescaService.GetAnexo3(caller.SolicitanteID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, resp)
}

// PUT /anexos/pesca
func (h *PescaHandler) Save(c *gin.Context) {
	caller, _ := utils.GetCaller(c)

	var req services.SaveAnexo3Request
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.pescaService.SaveAnexo3(caller, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, resp)
}
