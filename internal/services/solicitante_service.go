// internal/services/solicitante_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/conapesca/repa-backend/internal/models"
	"github.com/conapesca/repa-backend/internal/utils"
)

type SolicitanteService struct {
	db *gorm.DB
}

// Anexo 1: the applicant's personal/fiscal profile.
type UpdatePerfilRequest struct {
	Nombre          string `json:"nombre" validate:"required,max=100"`
	ApellidoPaterno string `json:"apellido_paterno" validate:"required,max=100"`
	ApellidoMaterno string `json:"apellido_materno" validate:"max=100"`
	Curp            string `json:"curp" validate:"required,curp"`
	Rfc             string `json:"rfc" validate:"required,rfc"`
	Telefono        string `json:"telefono" validate:"required,telefono"`
	Calle           string `json:"calle" validate:"required,max=150"`
	NumeroExterior  string `json:"numero_exterior" validate:"max=10"`
	Colonia         string `json:"colonia" validate:"max=100"`
	Localidad       string `json:"localidad" validate:"required,max=100"`
	Municipio       string `json:"municipio" validate:"required,max=100"`
	Estado          string `json:"estado" validate:"required,max=50"`
	CodigoPostal    string `json:"codigo_postal" validate:"required,codigo_postal"`
	Actividad       string `json:"actividad" validate:"required,oneof=pesca acuacultura ambas"`
}

// Column names to form field names for the too-long error decode.
var solicitanteFieldByColumn = map[string]string{
	"nombre":           "nombre",
	"apellido_paterno": "apellido_paterno",
	"apellido_materno": "apellido_materno",
	"curp":             "curp",
	"rfc":              "rfc",
	"telefono":         "telefono",
	"calle":            "calle",
	"numero_exterior":  "numero_exterior",
	"colonia":          "colonia",
	"localidad":        "localidad",
	"municipio":        "municipio",
	"estado":           "estado",
	"codigo_postal":    "codigo_postal",
}

func NewSolicitanteService(db *gorm.DB) *SolicitanteService {
	return &SolicitanteService{db: db}
}

func (s *SolicitanteService) GetByID(id uint) (*models.Solicitante, error) {
	var solicitante models.Solicitante
	if err := s.db.First(&solicitante, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &solicitante, nil
}

// UpdatePerfil saves Anexo 1 and recomputes the annex-complete flag from the
// required fields.
func (s *SolicitanteService) UpdatePerfil(caller utils.Caller, req *UpdatePerfilRequest) (*models.Solicitante, error) {
	solicitante, err := s.GetByID(caller.SolicitanteID)
	if err != nil {
		return nil, err
	}

	solicitante.Nombre = req.Nombre
	solicitante.ApellidoPaterno = req.ApellidoPaterno
	solicitante.ApellidoMaterno = req.ApellidoMaterno
	solicitante.Curp = req.Curp
	solicitante.Rfc = req.Rfc
	solicitante.Telefono = req.Telefono
	solicitante.Calle = req.Calle
	solicitante.NumeroExterior = req.NumeroExterior
	solicitante.Colonia = req.Colonia
	solicitante.Localidad = req.Localidad
	solicitante.Municipio = req.Municipio
	solicitante.Estado = req.Estado
	solicitante.CodigoPostal = req.CodigoPostal
	solicitante.Actividad = models.Actividad(req.Actividad)
	solicitante.Anexo1Completo = solicitante.PerfilCompleto()

	if err := s.db.Save(solicitante).Error; err != nil {
		return nil, mapWriteError(err, solicitanteFieldByColumn)
	}
	return solicitante, nil
}

// EstadoAnexos returns the per-annex completion flags for the portal's
// progress view.
func (s *SolicitanteService) EstadoAnexos(solicitanteID uint) (map[string]bool, error) {
	solicitante, err := s.GetByID(solicitanteID)
	if err != nil {
		return nil, err
	}
	return map[string]bool{
		"anexo1": solicitante.Anexo1Completo,
		"anexo2": solicitante.Anexo2Completo,
		"anexo3": solicitante.Anexo3Completo,
		"anexo4": solicitante.Anexo4Completo,
		"anexo5": solicitante.Anexo5Completo,
	}, nil
}
