// internal/handlers/acuacultura.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/conapesca/repa-backend/internal/services"
	"github.com/conapesca/repa-backend/internal/utils"
)

type AcuaculturaHandler struct {
	acuaculturaService *services.AcuaculturaService
}

func NewAcuaculturaHandler(acuaculturaService *services.AcuaculturaService) *AcuaculturaHandler {
	return &AcuaculturaHandler{
		acuaculturaService: acuaculturaService,
	}
}

// GET /anexos/acuacultura (Anexo 4)
func (h *AcuaculturaHandler) Get(c *gin.Context) {
	caller, _ := utils.GetCaller(c)
	if caller.SolicitanteID == 0 {
		utils.SuccessResponse(c, services.Anexo4Response{})
		return
	}

	resp, err := h.acuaculturaService.GetAnexo4(caller.SolicitanteID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, resp)
}

// PUT /anexos/acuacultura
func (h *AcuaculturaHandler) Save(c *gin.Context) {
	caller, _ := utils.GetCaller(c)

	var req services.SaveAnexo4Request
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.acuaculturaService.SaveAnexo4(caller, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, resp)
}
