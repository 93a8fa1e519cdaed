// internal/models/solicitante.go
package models

// Solicitante is the registering fisher/cooperative profile. Every downstream
// record references it through SolicitanteID.
type Solicitante struct {
	BaseModel
	UserID          uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Nombre          string    `json:"nombre" gorm:"size:100"`
	ApellidoPaterno string    `json:"apellido_paterno" gorm:"size:100"`
	ApellidoMaterno string    `json:"apellido_materno" gorm:"size:100"`
	Curp            string    `json:"curp" gorm:"size:18"`
	Rfc             string    `json:"rfc" gorm:"size:13"`
	Telefono        string    `json:"telefono" gorm:"size:10"`
	Calle           string    `json:"calle" gorm:"size:150"`
	NumeroExterior  string    `json:"numero_exterior" gorm:"size:10"`
	Colonia         string    `json:"colonia" gorm:"size:100"`
	Localidad       string    `json:"localidad" gorm:"size:100"`
	Municipio       string    `json:"municipio" gorm:"size:100"`
	Estado          string    `json:"estado" gorm:"size:50"`
	CodigoPostal    string    `json:"codigo_postal" gorm:"size:5"`
	Actividad       Actividad `json:"actividad" gorm:"type:varchar(15);default:'pesca'"`

	Anexo1Completo bool `json:"anexo1_completo"`
	Anexo2Completo bool `json:"anexo2_completo"`
	Anexo3Completo bool `json:"anexo3_completo"`
	Anexo4Completo bool `json:"anexo4_completo"`
	Anexo5Completo bool `json:"anexo5_completo"`

	Integrantes   []Integrante       `json:"integrantes,omitempty" gorm:"foreignKey:SolicitanteID"`
	Embarcaciones []EmbarcacionMenor `json:"embarcaciones,omitempty" gorm:"foreignKey:SolicitanteID"`
}

// PerfilCompleto reports whether the fields Anexo 1 requires are all filled.
func (s *Solicitante) PerfilCompleto() bool {
	required := []string{
		s.Nombre, s.ApellidoPaterno, s.Curp, s.Rfc, s.Telefono,
		s.Calle, s.Localidad, s.Municipio, s.Estado, s.CodigoPostal,
	}
	for _, v := range required {
		if v == "" {
			return false
		}
	}
	return true
}
