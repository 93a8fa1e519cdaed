// internal/services/integrante_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conapesca/repa-backend/internal/models"
)

func TestIntegranteCreateSetsAnexo2Flag(t *testing.T) {
	db := newTestDB(t)
	svc := NewIntegranteService(db)
	caller := seedApplicant(t, db, "dueno@example.com", "DUGJ800101HSRRRL07")

	_, err := svc.Create(caller, &IntegranteRequest{
		Nombre:     "María",
		Curp:       "MAGJ900101MSRRRL05",
		Parentesco: "Esposa",
	})
	require.NoError(t, err)

	var solicitante models.Solicitante
	require.NoError(t, db.First(&solicitante, caller.SolicitanteID).Error)
	assert.True(t, solicitante.Anexo2Completo)
}

func TestIntegranteDeleteLastClearsAnexo2Flag(t *testing.T) {
	db := newTestDB(t)
	svc := NewIntegranteService(db)
	caller := seedApplicant(t, db, "dueno@example.com", "DUGJ800101HSRRRL07")

	integrante, err := svc.Create(caller, &IntegranteRequest{
		Nombre:     "María",
		Curp:       "MAGJ900101MSRRRL05",
		Parentesco: "Esposa",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(caller, integrante.ID))

	var solicitante models.Solicitante
	require.NoError(t, db.First(&solicitante, caller.SolicitanteID).Error)
	assert.False(t, solicitante.Anexo2Completo)
}

func TestIntegranteOwnershipEnforced(t *testing.T) {
	db := newTestDB(t)
	svc := NewIntegranteService(db)
	owner := seedApplicant(t, db, "dueno@example.com", "DUGJ800101HSRRRL07")
	intruder := seedApplicant(t, db, "otro@example.com", "OTGJ800101HSRRRL06")

	integrante, err := svc.Create(owner, &IntegranteRequest{
		Nombre:     "María",
		Curp:       "MAGJ900101MSRRRL05",
		Parentesco: "Esposa",
	})
	require.NoError(t, err)

	_, err = svc.Update(intruder, integrante.ID, &IntegranteRequest{
		Nombre:     "Cambiado",
		Curp:       "MAGJ900101MSRRRL05",
		Parentesco: "Otro",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(intruder, integrante.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// The row must be exactly as the owner left it.
	var stored models.Integrante
	require.NoError(t, db.First(&stored, integrante.ID).Error)
	assert.Equal(t, "María", stored.Nombre)
	assert.Equal(t, "Esposa", stored.Parentesco)
}

func TestIntegranteUpdateMissingRowIsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewIntegranteService(db)
	caller := seedApplicant(t, db, "dueno@example.com", "DUGJ800101HSRRRL07")

	_, err := svc.Update(caller, 12345, &IntegranteRequest{
		Nombre:     "Nadie",
		Curp:       "MAGJ900101MSRRRL05",
		Parentesco: "Otro",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIntegranteListOnlyOwnRows(t *testing.T) {
	db := newTestDB(t)
	svc := NewIntegranteService(db)
	owner := seedApplicant(t, db, "dueno@example.com", "DUGJ800101HSRRRL07")
	other := seedApplicant(t, db, "otro@example.com", "OTGJ800101HSRRRL06")

	_, err := svc.Create(owner, &IntegranteRequest{Nombre: "María", Curp: "MAGJ900101MSRRRL05", Parentesco: "Esposa"})
	require.NoError(t, err)
	_, err = svc.Create(other, &IntegranteRequest{Nombre: "Pedro", Curp: "PEGJ900101HSRRRL04", Parentesco: "Hijo"})
	require.NoError(t, err)

	integrantes, err := svc.List(owner.SolicitanteID)
	require.NoError(t, err)
	require.Len(t, integrantes, 1)
	assert.Equal(t, "María", integrantes[0].Nombre)
}
