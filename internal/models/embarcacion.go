// internal/models/embarcacion.go
package models

// EmbarcacionMenor is a minor vessel registered under Anexo 5. Many per
// applicant, ownership-checked on every mutation.
type EmbarcacionMenor struct {
	BaseModel
	SolicitanteID    uint    `json:"solicitante_id" gorm:"index;not null"`
	Nombre           string  `json:"nombre" gorm:"size:100;not null"`
	Matricula        string  `json:"matricula" gorm:"size:30"`
	CapacidadCarga   float64 `json:"capacidad_carga"`
	EsloraMetros     float64 `json:"eslora_metros"`
	MangaMetros      float64 `json:"manga_metros"`
	PuntalMetros     float64 `json:"puntal_metros"`
	MaterialCasco    string  `json:"material_casco" gorm:"size:50"`
	MotorMarca       string  `json:"motor_marca" gorm:"size:50"`
	MotorPotenciaHP  float64 `json:"motor_potencia_hp"`
	AnioConstruccion int     `json:"anio_construccion"`
}
