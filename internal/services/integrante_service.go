// internal/services/integrante_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/conapesca/repa-backend/internal/models"
	"github.com/conapesca/repa-backend/internal/utils"
)

type IntegranteService struct {
	db *gorm.DB
}

type IntegranteRequest struct {
	Nombre          string `json:"nombre" validate:"required,max=100"`
	ApellidoPaterno string `json:"apellido_paterno" validate:"max=100"`
	ApellidoMaterno string `json:"apellido_materno" validate:"max=100"`
	Curp            string `json:"curp" validate:"required,curp"`
	Parentesco      string `json:"parentesco" validate:"required,max=50"`
	Ocupacion       string `json:"ocupacion" validate:"max=100"`
	Edad            int    `json:"edad" validate:"gte=0,lte=120"`
}

var integranteFieldByColumn = map[string]string{
	"nombre":           "nombre",
	"apellido_paterno": "apellido_paterno",
	"apellido_materno": "apellido_materno",
	"curp":             "curp",
	"parentesco":       "parentesco",
	"ocupacion":        "ocupacion",
}

func NewIntegranteService(db *gorm.DB) *IntegranteService {
	return &IntegranteService{db: db}
}

func (s *IntegranteService) List(solicitanteID uint) ([]models.Integrante, error) {
	var integrantes []models.Integrante
	if err := s.db.Where("solicitante_id = ?", solicitanteID).Order("id").Find(&integrantes).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return integrantes, nil
}

func (s *IntegranteService) Create(caller utils.Caller, req *IntegranteRequest) (*models.Integrante, error) {
	if caller.SolicitanteID == 0 {
		return nil, ErrForbidden
	}

	integrante := &models.Integrante{
		SolicitanteID:   caller.SolicitanteID,
		Nombre:          req.Nombre,
		ApellidoPaterno: req.ApellidoPaterno,
		ApellidoMaterno: req.ApellidoMaterno,
		Curp:            req.Curp,
		Parentesco:      req.Parentesco,
		Ocupacion:       req.Ocupacion,
		Edad:            req.Edad,
	}

	if err := s.db.Create(integrante).Error; err != nil {
		return nil, mapWriteError(err, integranteFieldByColumn)
	}

	s.refreshAnexo2(caller.SolicitanteID)
	return integrante, nil
}

func (s *IntegranteService) Update(caller utils.Caller, id uint, req *IntegranteRequest) (*models.Integrante, error) {
	var integrante models.Integrante
	if err := loadOwned(s.db, caller, &integrante, id, func() uint { return integrante.SolicitanteID }); err != nil {
		return nil, err
	}

	integrante.Nombre = req.Nombre
	integrante.ApellidoPaterno = req.ApellidoPaterno
	integrante.ApellidoMaterno = req.ApellidoMaterno
	integrante.Curp = req.Curp
	integrante.Parentesco = req.Parentesco
	integrante.Ocupacion = req.Ocupacion
	integrante.Edad = req.Edad

	if err := s.db.Save(&integrante).Error; err != nil {
		return nil, mapWriteError(err, integranteFieldByColumn)
	}
	return &integrante, nil
}

func (s *IntegranteService) Delete(caller utils.Caller, id uint) error {
	var integrante models.Integrante
	if err := loadOwned(s.db, caller, &integrante, id, func() uint { return integrante.SolicitanteID }); err != nil {
		return err
	}

	if err := s.db.Delete(&integrante).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	s.refreshAnexo2(integrante.SolicitanteID)
	return nil
}

// refreshAnexo2 keeps the completion flag in step with record existence.
func (s *IntegranteService) refreshAnexo2(solicitanteID uint) {
	var count int64
	s.db.Model(&models.Integrante{}).Where("solicitante_id = ?", solicitanteID).Count(&count)
	s.db.Model(&models.Solicitante{}).Where("id = ?", solicitanteID).Update("anexo2_completo", count > 0)
}
