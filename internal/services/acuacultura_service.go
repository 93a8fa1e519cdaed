// internal/services/acuacultura_service.go
package services

import (
	"gorm.io/gorm"

	"github.com/conapesca/repa-backend/internal/database"
	"github.com/conapesca/repa-backend/internal/models"
	"github.com/conapesca/repa-backend/internal/utils"
)

type AcuaculturaService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type DatosAcuaculturaRequest struct {
	Especies            string  `json:"especies" validate:"required,max=255"`
	TipoSistema         string  `json:"tipo_sistema" validate:"required,max=100"`
	SuperficieHectareas float64 `json:"superficie_hectareas" validate:"gte=0"`
	ProduccionAnualTon  float64 `json:"produccion_anual_ton" validate:"gte=0"`
	FuenteAgua          string  `json:"fuente_agua" validate:"max=100"`
	TipoCultivo         string  `json:"tipo_cultivo" validate:"max=100"`
}

type TipoEstanqueRequest struct {
	Rusticos     int     `json:"rusticos" validate:"gte=0"`
	Geomembrana  int     `json:"geomembrana" validate:"gte=0"`
	Concreto     int     `json:"concreto" validate:"gte=0"`
	Jaulas       int     `json:"jaulas" validate:"gte=0"`
	SuperficieM2 float64 `json:"superficie_m2" validate:"gte=0"`
}

type InstrumentoMedicionRequest struct {
	Oximetros      int    `json:"oximetros" validate:"gte=0"`
	Termometros    int    `json:"termometros" validate:"gte=0"`
	Phmetros       int    `json:"phmetros" validate:"gte=0"`
	Refractometros int    `json:"refractometros" validate:"gte=0"`
	Otros          string `json:"otros" validate:"max=150"`
}

type SistemaConservacionRequest struct {
	Refrigeradores int     `json:"refrigeradores" validate:"gte=0"`
	Congeladores   int     `json:"congeladores" validate:"gte=0"`
	CuartosFrios   int     `json:"cuartos_frios" validate:"gte=0"`
	Hieleras       int     `json:"hieleras" validate:"gte=0"`
	CapacidadTon   float64 `json:"capacidad_ton" validate:"gte=0"`
}

type EquipoTransporteRequest struct {
	Camionetas       int     `json:"camionetas" validate:"gte=0"`
	CamionesTermicos int     `json:"camiones_termicos" validate:"gte=0"`
	Remolques        int     `json:"remolques" validate:"gte=0"`
	CapacidadCargaT  float64 `json:"capacidad_carga_t" validate:"gte=0"`
}

type EmbarcacionAcuicolaRequest struct {
	Cantidad  int    `json:"cantidad" validate:"gte=0"`
	TipoMotor string `json:"tipo_motor" validate:"max=50"`
	Uso       string `json:"uso" validate:"max=100"`
}

type InstalacionHidraulicaRequest struct {
	BombasAgua      int     `json:"bombas_agua" validate:"gte=0"`
	Aireadores      int     `json:"aireadores" validate:"gte=0"`
	CanalesMetros   float64 `json:"canales_metros" validate:"gte=0"`
	TuberiasMetros  float64 `json:"tuberias_metros" validate:"gte=0"`
	FiltrosSistemas int     `json:"filtros_sistemas" validate:"gte=0"`
}

type UnidadProduccionRequest struct {
	Nombre    string `json:"nombre" validate:"max=150"`
	Ubicacion string `json:"ubicacion" validate:"max=255"`
}

// SaveAnexo4Request: the primary technical data plus six asset sections and
// the production-unit identification, saved together.
type SaveAnexo4Request struct {
	Datos         DatosAcuaculturaRequest      `json:"datos" validate:"required"`
	Estanques     TipoEstanqueRequest          `json:"estanques"`
	Instrumentos  InstrumentoMedicionRequest   `json:"instrumentos"`
	Conservacion  SistemaConservacionRequest   `json:"conservacion"`
	Transporte    EquipoTransporteRequest      `json:"transporte"`
	Embarcaciones EmbarcacionAcuicolaRequest   `json:"embarcaciones"`
	Hidraulicas   InstalacionHidraulicaRequest `json:"hidraulicas"`
	Unidad        UnidadProduccionRequest      `json:"unidad"`
}

type Anexo4Response struct {
	Datos         *models.DatosAcuacultura      `json:"datos"`
	Estanques     *models.TipoEstanque          `json:"estanques"`
	Instrumentos  *models.InstrumentoMedicion   `json:"instrumentos"`
	Conservacion  *models.SistemaConservacion   `json:"conservacion"`
	Transporte    *models.EquipoTransporte      `json:"transporte"`
	Embarcaciones *models.EmbarcacionAcuicola   `json:"embarcaciones"`
	Hidraulicas   *models.InstalacionHidraulica `json:"hidraulicas"`
	Unidad        *models.UnidadProduccion      `json:"unidad"`
}

var acuaculturaFieldByColumn = map[string]string{
	"especies":     "especies",
	"tipo_sistema": "tipo_sistema",
	"fuente_agua":  "fuente_agua",
	"tipo_cultivo": "tipo_cultivo",
	"otros":        "otros",
	"tipo_motor":   "tipo_motor",
	"uso":          "uso",
	"nombre":       "nombre",
	"ubicacion":    "ubicacion",
}

func NewAcuaculturaService(db *gorm.DB, notificationService *NotificationService) *AcuaculturaService {
	return &AcuaculturaService{db: db, notificationService: notificationService}
}

func (s *AcuaculturaService) GetAnexo4(solicitanteID uint) (*Anexo4Response, error) {
	resp := &Anexo4Response{}

	var datos models.DatosAcuacultura
	if found, err := firstByOwner(s.db, solicitanteID, &datos); err != nil {
		return nil, err
	} else if found {
		resp.Datos = &datos
	}

	var estanques models.TipoEstanque
	if found, err := firstByOwner(s.db, solicitanteID, &estanques); err != nil {
		return nil, err
	} else if found {
		resp.Estanques = &estanques
	}

	var instrumentos models.InstrumentoMedicion
	if found, err := firstByOwner(s.db, solicitanteID, &instrumentos); err != nil {
		return nil, err
	} else if found {
		resp.Instrumentos = &instrumentos
	}

	var conservacion models.SistemaConservacion
	if found, err := firstByOwner(s.db, solicitanteID, &conservacion); err != nil {
		return nil, err
	} else if found {
		resp.Conservacion = &conservacion
	}

	var transporte models.EquipoTransporte
	if found, err := firstByOwner(s.db, solicitanteID, &transporte); err != nil {
		return nil, err
	} else if found {
		resp.Transporte = &transporte
	}

	var embarcaciones models.EmbarcacionAcuicola
	if found, err := firstByOwner(s.db, solicitanteID, &embarcaciones); err != nil {
		return nil, err
	} else if found {
		resp.Embarcaciones = &embarcaciones
	}

	var hidraulicas models.InstalacionHidraulica
	if found, err := firstByOwner(s.db, solicitanteID, &hidraulicas); err != nil {
		return nil, err
	} else if found {
		resp.Hidraulicas = &hidraulicas
	}

	var unidad models.UnidadProduccion
	if found, err := firstByOwner(s.db, solicitanteID, &unidad); err != nil {
		return nil, err
	} else if found {
		resp.Unidad = &unidad
	}

	return resp, nil
}

// SaveAnexo4 upserts the primary row, the six asset rows and the bridging
// production-unit row inside one transaction; the annex-complete flag flips
// only after every write succeeds. All-or-nothing on failure.
func (s *AcuaculturaService) SaveAnexo4(caller utils.Caller, req *SaveAnexo4Request) (*Anexo4Response, error) {
	if caller.SolicitanteID == 0 {
		return nil, ErrForbidden
	}

	resp := &Anexo4Response{}
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		owner := caller.SolicitanteID

		datos := models.DatosAcuacultura{
			SolicitanteID:       owner,
			Especies:            req.Datos.Especies,
			TipoSistema:         req.Datos.TipoSistema,
			SuperficieHectareas: req.Datos.SuperficieHectareas,
			ProduccionAnualTon:  req.Datos.ProduccionAnualTon,
			FuenteAgua:          req.Datos.FuenteAgua,
			TipoCultivo:         req.Datos.TipoCultivo,
		}
		if err := upsertByOwner(tx, &datos); err != nil {
			return err
		}
		resp.Datos = &datos

		estanques := models.TipoEstanque{
			SolicitanteID: owner,
			Rusticos:      req.Estanques.Rusticos,
			Geomembrana:   req.Estanques.Geomembrana,
			Concreto:      req.Estanques.Concreto,
			Jaulas:        req.Estanques.Jaulas,
			SuperficieM2:  req.Estanques.SuperficieM2,
		}
		if err := upsertByOwner(tx, &estanques); err != nil {
			return err
		}
		resp.Estanques = &estanques

		instrumentos := models.InstrumentoMedicion{
			SolicitanteID:  owner,
			Oximetros:      req.Instrumentos.Oximetros,
			Termometros:    req.Instrumentos.Termometros,
			Phmetros:       req.Instrumentos.Phmetros,
			Refractometros: req.Instrumentos.Refractometros,
			Otros:          req.Instrumentos.Otros,
		}
		if err := upsertByOwner(tx, &instrumentos); err != nil {
			return err
		}
		resp.Instrumentos = &instrumentos

		conservacion := models.SistemaConservacion{
			SolicitanteID:  owner,
			Refrigeradores: req.Conservacion.Refrigeradores,
			Congeladores:   req.Conservacion.Congeladores,
			CuartosFrios:   req.Conservacion.CuartosFrios,
			Hieleras:       req.Conservacion.Hieleras,
			CapacidadTon:   req.Conservacion.CapacidadTon,
		}
		if err := upsertByOwner(tx, &conservacion); err != nil {
			return err
		}
		resp.Conservacion = &conservacion

		transporte := models.EquipoTransporte{
			SolicitanteID:    owner,
			Camionetas:       req.Transporte.Camionetas,
			CamionesTermicos: req.Transporte.CamionesTermicos,
			Remolques:        req.Transporte.Remolques,
			CapacidadCargaT:  req.Transporte.CapacidadCargaT,
		}
		if err := upsertByOwner(tx, &transporte); err != nil {
			return err
		}
		resp.Transporte = &transporte

		embarcaciones := models.EmbarcacionAcuicola{
			SolicitanteID: owner,
			Cantidad:      req.Embarcaciones.Cantidad,
			TipoMotor:     req.Embarcaciones.TipoMotor,
			Uso:           req.Embarcaciones.Uso,
		}
		if err := upsertByOwner(tx, &embarcaciones); err != nil {
			return err
		}
		resp.Embarcaciones = &embarcaciones

		hidraulicas := models.InstalacionHidraulica{
			SolicitanteID:   owner,
			BombasAgua:      req.Hidraulicas.BombasAgua,
			Aireadores:      req.Hidraulicas.Aireadores,
			CanalesMetros:   req.Hidraulicas.CanalesMetros,
			TuberiasMetros:  req.Hidraulicas.TuberiasMetros,
			FiltrosSistemas: req.Hidraulicas.FiltrosSistemas,
		}
		if err := upsertByOwner(tx, &hidraulicas); err != nil {
			return err
		}
		resp.Hidraulicas = &hidraulicas

		// The production-unit bridge row must exist after every Anexo 4 save.
		unidad := models.UnidadProduccion{
			SolicitanteID: owner,
			Nombre:        req.Unidad.Nombre,
			Ubicacion:     req.Unidad.Ubicacion,
		}
		if err := upsertByOwner(tx, &unidad); err != nil {
			return err
		}
		resp.Unidad = &unidad

		return tx.Model(&models.Solicitante{}).
			Where("id = ?", owner).
			Update("anexo4_completo", true).Error
	})
	if err != nil {
		return nil, mapWriteError(err, acuaculturaFieldByColumn)
	}

	go s.notifyGuardado(caller.Email, 4)
	return resp, nil
}

func (s *AcuaculturaService) notifyGuardado(email string, anexo int) {
	if email == "" {
		return
	}
	if err := s.notificationService.SendAnexoGuardadoEmail(email, anexo); err != nil {
		logError("failed to send annex confirmation email", err)
	}
}
