// internal/services/solicitante_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perfilRequest() *UpdatePerfilRequest {
	return &UpdatePerfilRequest{
		Nombre:          "Juan",
		ApellidoPaterno: "Pérez",
		ApellidoMaterno: "García",
		Curp:            "PEGJ800101HSRRRL09",
		Rfc:             "PEGJ800101AB1",
		Telefono:        "6681234567",
		Calle:           "Av. del Mar",
		NumeroExterior:  "123",
		Colonia:         "Centro",
		Localidad:       "Topolobampo",
		Municipio:       "Ahome",
		Estado:          "Sinaloa",
		CodigoPostal:    "81370",
		Actividad:       "ambas",
	}
}

func TestUpdatePerfilMarksAnexo1Complete(t *testing.T) {
	db := newTestDB(t)
	svc := NewSolicitanteService(db)
	caller := seedApplicant(t, db, "cuenta@example.com", "CUGJ800101HSRRRL02")

	solicitante, err := svc.UpdatePerfil(caller, perfilRequest())
	require.NoError(t, err)
	assert.True(t, solicitante.Anexo1Completo)
	assert.Equal(t, "Juan", solicitante.Nombre)
	assert.Equal(t, "81370", solicitante.CodigoPostal)

	estado, err := svc.EstadoAnexos(caller.SolicitanteID)
	require.NoError(t, err)
	assert.True(t, estado["anexo1"])
	assert.False(t, estado["anexo2"])
	assert.False(t, estado["anexo3"])
}

func TestUpdatePerfilUnknownProfileIsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewSolicitanteService(db)
	caller := seedApplicant(t, db, "cuenta@example.com", "CUGJ800101HSRRRL02")
	caller.SolicitanteID = 999

	_, err := svc.UpdatePerfil(caller, perfilRequest())
	assert.ErrorIs(t, err, ErrNotFound)
}
