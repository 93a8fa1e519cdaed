// internal/handlers/embarcacion.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conapesca/repa-backend/internal/services"
	"github.com/conapesca/repa-backend/internal/utils"
)

type EmbarcacionHandler struct {
	embarcacionService *services.EmbarcacionService
}

func NewEmbarcacionHandler(embarcacionService *services.EmbarcacionService) *EmbarcacionHandler {
	return &EmbarcacionHandler{
		embarcacionService: embarcacionService,
	}
}

// GET /embarcaciones (Anexo 5)
func (h *EmbarcacionHandler) List(c *gin.Context) {
	caller, _ := utils.GetCaller(c)
	if caller.SolicitanteID == 0 {
		utils.SuccessResponse(c, []interface{}{})
		return
	}

	embarcaciones, err := h.embarcacionService.List(caller.SolicitanteID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, embarcaciones)
}

// POST /embarcaciones
func (h *EmbarcacionHandler) Create(c *gin.Context) {
	caller, _ := utils.GetCaller(c)

	var req services.EmbarcacionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	embarcacion, err := h.embarcacionService.Create(caller, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, embarcacion)
}

// PUT /embarcaciones/:id
func (h *EmbarcacionHandler) Update(c *gin.Context) {
	caller, _ := utils.GetCaller(c)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.EmbarcacionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	embarcacion, err := h.embarcacionService.Update(caller, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, embarcacion)
}

// DELETE /embarcaciones/:id
func (h *EmbarcacionHandler) Delete(c *gin.Context) {
	caller, _ := utils.GetCaller(c)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.embarcacionService.Delete(caller, id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Embarcación eliminada"})
}

// GET /admin/embarcaciones
func (h *EmbarcacionHandler) Search(c *gin.Context) {
	filter := services.EmbarcacionFilter{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if desde := c.Query("desde"); desde != "" {
		if t, err := time.Parse("2006-01-02", desde); err == nil {
			filter.Desde = &t
		}
	}
	if hasta := c.Query("hasta"); hasta != "" {
		if t, err := time.Parse("2006-01-02", hasta); err == nil {
			end := t.AddDate(0, 0, 1)
			filter.Hasta = &end
		}
	}

	result, err := h.embarcacionService.Search(filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}
