// internal/models/common.go
package models

import "time"

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enums
type Role string

const (
	RoleSolicitante Role = "solicitante"
	RoleAdmin       Role = "admin"
	RoleSuperadmin  Role = "superadmin"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

type Actividad string

const (
	ActividadPesca       Actividad = "pesca"
	ActividadAcuacultura Actividad = "acuacultura"
	ActividadAmbas       Actividad = "ambas"
)

func (a Actividad) IncludesPesca() bool {
	return a == ActividadPesca || a == ActividadAmbas
}

func (a Actividad) IncludesAcuacultura() bool {
	return a == ActividadAcuacultura || a == ActividadAmbas
}
