// internal/models/integrante.go
package models

// Integrante is a household member of the applicant (Anexo 2). Many per
// applicant, freely created and removed by the owner.
type Integrante struct {
	BaseModel
	SolicitanteID   uint   `json:"solicitante_id" gorm:"index;not null"`
	Nombre          string `json:"nombre" gorm:"size:100;not null"`
	ApellidoPaterno string `json:"apellido_paterno" gorm:"size:100"`
	ApellidoMaterno string `json:"apellido_materno" gorm:"size:100"`
	Curp            string `json:"curp" gorm:"size:18"`
	Parentesco      string `json:"parentesco" gorm:"size:50"`
	Ocupacion       string `json:"ocupacion" gorm:"size:100"`
	Edad            int    `json:"edad"`
}
