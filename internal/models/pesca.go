// internal/models/pesca.go
package models

// Anexo 3 tables. At most one row per applicant each; the unique index on
// SolicitanteID backs the application-level upsert.

type DatosPesca struct {
	BaseModel
	SolicitanteID    uint   `json:"solicitante_id" gorm:"uniqueIndex;not null"`
	EspeciesObjetivo string `json:"especies_objetivo" gorm:"size:255"`
	ArtesPesca       string `json:"artes_pesca" gorm:"size:255"`
	ZonaCaptura      string `json:"zona_captura" gorm:"size:255"`
	SitioDesembarque string `json:"sitio_desembarque" gorm:"size:150"`
	PermisoNumero    string `json:"permiso_numero" gorm:"size:50"`
	PermisoVigencia  string `json:"permiso_vigencia" gorm:"size:20"`
	MesesActividad   string `json:"meses_actividad" gorm:"size:100"`
}

type ActivosPesca struct {
	BaseModel
	SolicitanteID       uint   `json:"solicitante_id" gorm:"uniqueIndex;not null"`
	NumEmbarcaciones    int    `json:"num_embarcaciones"`
	NumMotores          int    `json:"num_motores"`
	ArtesEquipo         string `json:"artes_equipo" gorm:"size:255"`
	EquiposConservacion string `json:"equipos_conservacion" gorm:"size:255"`
	VehiculosTransporte string `json:"vehiculos_transporte" gorm:"size:255"`
}
