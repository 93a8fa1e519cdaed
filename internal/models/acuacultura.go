// internal/models/acuacultura.go
package models

// Anexo 4 tables: the primary technical-data row, six dependent asset rows and
// the bridging production-unit row. All are at most one per applicant and are
// written together inside a single transaction.

type DatosAcuacultura struct {
	BaseModel
	SolicitanteID       uint    `json:"solicitante_id" gorm:"uniqueIndex;not null"`
	Especies            string  `json:"especies" gorm:"size:255"`
	TipoSistema         string  `json:"tipo_sistema" gorm:"size:100"`
	SuperficieHectareas float64 `json:"superficie_hectareas"`
	ProduccionAnualTon  float64 `json:"produccion_anual_ton"`
	FuenteAgua          string  `json:"fuente_agua" gorm:"size:100"`
	TipoCultivo         string  `json:"tipo_cultivo" gorm:"size:100"`
}

type TipoEstanque struct {
	BaseModel
	SolicitanteID uint    `json:"solicitante_id" gorm:"uniqueIndex;not null"`
	Rusticos      int     `json:"rusticos"`
	Geomembrana   int     `json:"geomembrana"`
	Concreto      int     `json:"concreto"`
	Jaulas        int     `json:"jaulas"`
	SuperficieM2  float64 `json:"superficie_m2"`
}

type InstrumentoMedicion struct {
	BaseModel
	SolicitanteID  uint   `json:"solicitante_id" gorm:"uniqueIndex;not null"`
	Oximetros      int    `json:"oximetros"`
	Termometros    int    `json:"termometros"`
	Phmetros       int    `json:"phmetros"`
	Refractometros int    `json:"refractometros"`
	Otros          string `json:"otros" gorm:"size:150"`
}

type SistemaConservacion struct {
	BaseModel
	SolicitanteID  uint    `json:"solicitante_id" gorm:"uniqueIndex;not null"`
	Refrigeradores int     `json:"refrigeradores"`
	Congeladores   int     `json:"congeladores"`
	CuartosFrios   int     `json:"cuartos_frios"`
	Hieleras       int     `json:"hieleras"`
	CapacidadTon   float64 `json:"capacidad_ton"`
}

type EquipoTransporte struct {
	BaseModel
	SolicitanteID    uint    `json:"solicitante_id" gorm:"uniqueIndex;not null"`
	Camionetas       int     `json:"camionetas"`
	CamionesTermicos int     `json:"camiones_termicos"`
	Remolques        int     `json:"remolques"`
	CapacidadCargaT  float64 `json:"capacidad_carga_t"`
}

type EmbarcacionAcuicola struct {
	BaseModel
	SolicitanteID uint   `json:"solicitante_id" gorm:"uniqueIndex;not null"`
	Cantidad      int    `json:"cantidad"`
	TipoMotor     string `json:"tipo_motor" gorm:"size:50"`
	Uso           string `json:"uso" gorm:"size:100"`
}

type InstalacionHidraulica struct {
	BaseModel
	SolicitanteID   uint    `json:"solicitante_id" gorm:"uniqueIndex;not null"`
	BombasAgua      int     `json:"bombas_agua"`
	Aireadores      int     `json:"aireadores"`
	CanalesMetros   float64 `json:"canales_metros"`
	TuberiasMetros  float64 `json:"tuberias_metros"`
	FiltrosSistemas int     `json:"filtros_sistemas"`
}

type UnidadProduccion struct {
	BaseModel
	SolicitanteID uint   `json:"solicitante_id" gorm:"uniqueIndex;not null"`
	Nombre        string `json:"nombre" gorm:"size:150"`
	Ubicacion     string `json:"ubicacion" gorm:"size:255"`
}
