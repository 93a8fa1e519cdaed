// internal/services/pesca_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/conapesca/repa-backend/internal/database"
	"github.com/conapesca/repa-backend/internal/models"
	"github.com/conapesca/repa-backend/internal/utils"
)

type PescaService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type DatosPescaRequest struct {
	EspeciesObjetivo string `json:"especies_objetivo" validate:"required,max=255"`
	ArtesPesca       string `json:"artes_pesca" validate:"required,max=255"`
	ZonaCaptura      string `json:"zona_captura" validate:"max=255"`
	SitioDesembarque string `json:"sitio_desembarque" validate:"max=150"`
	PermisoNumero    string `json:"permiso_numero" validate:"max=50"`
	PermisoVigencia  string `json:"permiso_vigencia" validate:"max=20"`
	MesesActividad   string `json:"meses_actividad" validate:"max=100"`
}

type ActivosPescaRequest struct {
	NumEmbarcaciones    int    `json:"num_embarcaciones" validate:"gte=0"`
	NumMotores          int    `json:"num_motores" validate:"gte=0"`
	ArtesEquipo         string `json:"artes_equipo" validate:"max=255"`
	EquiposConservacion string `json:"equipos_conservacion" validate:"max=255"`
	VehiculosTransporte string `json:"vehiculos_transporte" validate:"max=255"`
}

// SaveAnexo3Request carries the two optional sub-payloads; each entity is
// written only when its payload is present.
type SaveAnexo3Request struct {
	Datos   *DatosPescaRequest   `json:"datos"`
	Activos *ActivosPescaRequest `json:"activos"`
}

type Anexo3Response struct {
	Datos   *models.DatosPesca   `json:"datos,omitempty"`
	Activos *models.ActivosPesca `json:"activos,omitempty"`
}

var pescaFieldByColumn = map[string]string{
	"especies_objetivo":    "especies_objetivo",
	"artes_pesca":          "artes_pesca",
	"zona_captura":         "zona_captura",
	"sitio_desembarque":    "sitio_desembarque",
	"permiso_numero":       "permiso_numero",
	"permiso_vigencia":     "permiso_vigencia",
	"meses_actividad":      "meses_actividad",
	"artes_equipo":         "artes_equipo",
	"equipos_conservacion": "equipos_conservacion",
	"vehiculos_transporte": "vehiculos_transporte",
}

func NewPescaService(db *gorm.DB, notificationService *NotificationService) *PescaService {
	return &PescaService{db: db, notificationService: notificationService}
}

func (s *PescaService) GetAnexo3(solicitanteID uint) (*Anexo3Response, error) {
	resp := &Anexo3Response{}

	var datos models.DatosPesca
	err := s.db.Where("solicitante_id = ?", solicitanteID).First(&datos).Error
	if err == nil {
		resp.Datos = &datos
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var activos models.ActivosPesca
	err = s.db.Where("solicitante_id = ?", solicitanteID).First(&activos).Error
	if err == nil {
		resp.Activos = &activos
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return resp, nil
}

// SaveAnexo3 upserts the fishing technical data and unit assets inside one
// transaction and marks the annex complete only after both writes succeed.
// Any failure rolls the whole save back.
func (s *PescaService) SaveAnexo3(caller utils.Caller, req *SaveAnexo3Request) (*Anexo3Response, error) {
	if caller.SolicitanteID == 0 {
		return nil, ErrForbidden
	}
	if req.Datos == nil && req.Activos == nil {
		return nil, &FieldError{Message: "Debe capturar al menos una sección del anexo", Field: "datos"}
	}

	resp := &Anexo3Response{}
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if req.Datos != nil {
			datos, err := upsertDatosPesca(tx, caller.SolicitanteID, req.Datos)
			if err != nil {
				return err
			}
			resp.Datos = datos
		}

		if req.Activos != nil {
			activos, err := upsertActivosPesca(tx, caller.SolicitanteID, req.Activos)
			if err != nil {
				return err
			}
			resp.Activos = activos
		}

		return tx.Model(&models.Solicitante{}).
			Where("id = ?", caller.SolicitanteID).
			Update("anexo3_completo", true).Error
	})
	if err != nil {
		return nil, mapWriteError(err, pescaFieldByColumn)
	}

	go s.notifyGuardado(caller.Email, 3)
	return resp, nil
}

// Upsert policy: look up by owner key, update the existing row by primary key
// when present, insert otherwise. Last write wins.
func upsertDatosPesca(tx *gorm.DB, solicitanteID uint, req *DatosPescaRequest) (*models.DatosPesca, error) {
	row := models.DatosPesca{
		SolicitanteID:    solicitanteID,
		EspeciesObjetivo: req.EspeciesObjetivo,
		ArtesPesca:       req.ArtesPesca,
		ZonaCaptura:      req.ZonaCaptura,
		SitioDesembarque: req.SitioDesembarque,
		PermisoNumero:    req.PermisoNumero,
		PermisoVigencia:  req.PermisoVigencia,
		MesesActividad:   req.MesesActividad,
	}

	var existing models.DatosPesca
	err := tx.Where("solicitante_id = ?", solicitanteID).First(&existing).Error
	switch {
	case err == nil:
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
	case errors.Is(err, gorm.ErrRecordNotFound):
		// insert
	default:
		return nil, err
	}

	if err := tx.Save(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func upsertActivosPesca(tx *gorm.DB, solicitanteID uint, req *ActivosPescaRequest) (*models.ActivosPesca, error) {
	row := models.ActivosPesca{
		SolicitanteID:       solicitanteID,
		NumEmbarcaciones:    req.NumEmbarcaciones,
		NumMotores:          req.NumMotores,
		ArtesEquipo:         req.ArtesEquipo,
		EquiposConservacion: req.EquiposConservacion,
		VehiculosTransporte: req.VehiculosTransporte,
	}

	var existing models.ActivosPesca
	err := tx.Where("solicitante_id = ?", solicitanteID).First(&existing).Error
	switch {
	case err == nil:
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
	case errors.Is(err, gorm.ErrRecordNotFound):
		// insert
	default:
		return nil, err
	}

	if err := tx.Save(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *PescaService) notifyGuardado(email string, anexo int) {
	if email == "" {
		return
	}
	if err := s.notificationService.SendAnexoGuardadoEmail(email, anexo); err != nil {
		logError("failed to send annex confirmation email", err)
	}
}
