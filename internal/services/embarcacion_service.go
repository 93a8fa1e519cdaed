// internal/services/embarcacion_service.go
package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/conapesca/repa-backend/internal/models"
	"github.com/conapesca/repa-backend/internal/utils"
)

type EmbarcacionService struct {
	db *gorm.DB
}

type EmbarcacionRequest struct {
	Nombre           string  `json:"nombre" validate:"required,max=100"`
	Matricula        string  `json:"matricula" validate:"max=30"`
	CapacidadCarga   float64 `json:"capacidad_carga" validate:"gte=0"`
	EsloraMetros     float64 `json:"eslora_metros" validate:"gte=0"`
	MangaMetros      float64 `json:"manga_metros" validate:"gte=0"`
	PuntalMetros     float64 `json:"puntal_metros" validate:"gte=0"`
	MaterialCasco    string  `json:"material_casco" validate:"max=50"`
	MotorMarca       string  `json:"motor_marca" validate:"max=50"`
	MotorPotenciaHP  float64 `json:"motor_potencia_hp" validate:"gte=0"`
	AnioConstruccion int     `json:"anio_construccion" validate:"gte=0"`
}

// Admin vessel listing filters: free-text search plus a creation date range.
type EmbarcacionFilter struct {
	utils.PaginationParams
	Desde *time.Time
	Hasta *time.Time
}

var embarcacionFieldByColumn = map[string]string{
	"nombre":         "nombre",
	"matricula":      "matricula",
	"material_casco": "material_casco",
	"motor_marca":    "motor_marca",
}

func NewEmbarcacionService(db *gorm.DB) *EmbarcacionService {
	return &EmbarcacionService{db: db}
}

func (s *EmbarcacionService) List(solicitanteID uint) ([]models.EmbarcacionMenor, error) {
	var embarcaciones []models.EmbarcacionMenor
	if err := s.db.Where("solicitante_id = ?", solicitanteID).Order("id").Find(&embarcaciones).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return embarcaciones, nil
}

func (s *EmbarcacionService) Create(caller utils.Caller, req *EmbarcacionRequest) (*models.EmbarcacionMenor, error) {
	if caller.SolicitanteID == 0 {
		return nil, ErrForbidden
	}

	embarcacion := &models.EmbarcacionMenor{
		SolicitanteID:    caller.SolicitanteID,
		Nombre:           req.Nombre,
		Matricula:        req.Matricula,
		CapacidadCarga:   req.CapacidadCarga,
		EsloraMetros:     req.EsloraMetros,
		MangaMetros:      req.MangaMetros,
		PuntalMetros:     req.PuntalMetros,
		MaterialCasco:    req.MaterialCasco,
		MotorMarca:       req.MotorMarca,
		MotorPotenciaHP:  req.MotorPotenciaHP,
		AnioConstruccion: req.AnioConstruccion,
	}

	if err := s.db.Create(embarcacion).Error; err != nil {
		return nil, mapWriteError(err, embarcacionFieldByColumn)
	}

	s.refreshAnexo5(caller.SolicitanteID)
	return embarcacion, nil
}

func (s *EmbarcacionService) Update(caller utils.Caller, id uint, req *EmbarcacionRequest) (*models.EmbarcacionMenor, error) {
	var embarcacion models.EmbarcacionMenor
	if err := loadOwned(s.db, caller, &embarcacion, id, func() uint { return embarcacion.SolicitanteID }); err != nil {
		return nil, err
	}

	embarcacion.Nombre = req.Nombre
	embarcacion.Matricula = req.Matricula
	embarcacion.CapacidadCarga = req.CapacidadCarga
	embarcacion.EsloraMetros = req.EsloraMetros
	embarcacion.MangaMetros = req.MangaMetros
	embarcacion.PuntalMetros = req.PuntalMetros
	embarcacion.MaterialCasco = req.MaterialCasco
	embarcacion.MotorMarca = req.MotorMarca
	embarcacion.MotorPotenciaHP = req.MotorPotenciaHP
	embarcacion.AnioConstruccion = req.AnioConstruccion

	if err := s.db.Save(&embarcacion).Error; err != nil {
		return nil, mapWriteError(err, embarcacionFieldByColumn)
	}
	return &embarcacion, nil
}

func (s *EmbarcacionService) Delete(caller utils.Caller, id uint) error {
	var embarcacion models.EmbarcacionMenor
	if err := loadOwned(s.db, caller, &embarcacion, id, func() uint { return embarcacion.SolicitanteID }); err != nil {
		return err
	}

	if err := s.db.Delete(&embarcacion).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	s.refreshAnexo5(embarcacion.SolicitanteID)
	return nil
}

// Search is the admin-facing listing with free-text and date-range filters.
func (s *EmbarcacionService) Search(filter EmbarcacionFilter) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.EmbarcacionMenor{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("nombre LIKE ? OR matricula LIKE ?", like, like)
	}
	if filter.Desde != nil {
		query = query.Where("created_at >= ?", *filter.Desde)
	}
	if filter.Hasta != nil {
		query = query.Where("created_at <= ?", *filter.Hasta)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var embarcaciones []models.EmbarcacionMenor
	query = utils.ApplySort(query, filter.PaginationParams, []string{"created_at", "nombre", "matricula"})
	query = utils.ApplyPagination(query, filter.PaginationParams)
	if err := query.Find(&embarcaciones).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	result := utils.CreatePaginationResult(embarcaciones, total, filter.PaginationParams)
	return &result, nil
}

func (s *EmbarcacionService) refreshAnexo5(solicitanteID uint) {
	var count int64
	s.db.Model(&models.EmbarcacionMenor{}).Where("solicitante_id = ?", solicitanteID).Count(&count)
	s.db.Model(&models.Solicitante{}).Where("id = ?", solicitanteID).Update("anexo5_completo", count > 0)
}
