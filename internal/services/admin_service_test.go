// internal/services/admin_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/conapesca/repa-backend/internal/config"
	"github.com/conapesca/repa-backend/internal/models"
	"github.com/conapesca/repa-backend/internal/utils"
)

func newAdminService(db *gorm.DB) *AdminService {
	cfg := testConfig()
	cfg.Admin = config.AdminConfig{MasterResetPassword: "clave-maestra"}
	return NewAdminService(db, cfg)
}

func TestAdminDeleteSolicitanteCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	caller := seedApplicant(t, db, "borrable@example.com", "BOGJ800101HSRRRL01")

	require.NoError(t, db.Create(&models.Integrante{
		SolicitanteID: caller.SolicitanteID, Nombre: "María", Parentesco: "Esposa",
	}).Error)
	require.NoError(t, db.Create(&models.EmbarcacionMenor{
		SolicitanteID: caller.SolicitanteID, Nombre: "La Perla",
	}).Error)
	require.NoError(t, db.Create(&models.DatosPesca{
		SolicitanteID: caller.SolicitanteID, EspeciesObjetivo: "Camarón", ArtesPesca: "Atarraya",
	}).Error)

	require.NoError(t, svc.DeleteSolicitante(caller.SolicitanteID))

	var count int64
	db.Model(&models.Solicitante{}).Where("id = ?", caller.SolicitanteID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&models.Integrante{}).Where("solicitante_id = ?", caller.SolicitanteID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&models.EmbarcacionMenor{}).Where("solicitante_id = ?", caller.SolicitanteID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&models.DatosPesca{}).Where("solicitante_id = ?", caller.SolicitanteID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&models.User{}).Where("id = ?", caller.UserID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestAdminDeleteRefusesSuperadminTarget(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	super := seedSuperadmin(t, db, "root@example.com")

	solicitante := models.Solicitante{UserID: super.ID, Curp: super.Curp, Actividad: models.ActividadPesca}
	require.NoError(t, db.Create(&solicitante).Error)

	err := svc.DeleteSolicitante(solicitante.ID)
	assert.ErrorIs(t, err, ErrSuperadminProtected)

	var count int64
	db.Model(&models.User{}).Where("id = ?", super.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAdminResetSystemRequiresMasterPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	caller := seedApplicant(t, db, "cuenta@example.com", "CUGJ800101HSRRRL02")

	err := svc.ResetSystem(&ResetSystemRequest{MasterPassword: "equivocada"})
	assert.ErrorIs(t, err, ErrMasterPassword)

	var count int64
	db.Model(&models.Solicitante{}).Where("id = ?", caller.SolicitanteID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAdminResetSystemPreservesSuperadmins(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	super := seedSuperadmin(t, db, "root@example.com")
	caller := seedApplicant(t, db, "cuenta@example.com", "CUGJ800101HSRRRL02")

	require.NoError(t, db.Create(&models.Integrante{
		SolicitanteID: caller.SolicitanteID, Nombre: "María", Parentesco: "Esposa",
	}).Error)

	require.NoError(t, svc.ResetSystem(&ResetSystemRequest{MasterPassword: "clave-maestra"}))

	var count int64
	db.Model(&models.Solicitante{}).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&models.Integrante{}).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)

	var remaining models.User
	require.NoError(t, db.First(&remaining).Error)
	assert.Equal(t, super.Email, remaining.Email)
}

func TestAdminResetSystemKeepsSuperadminOwnedData(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	super := seedSuperadmin(t, db, "root@example.com")
	caller := seedApplicant(t, db, "cuenta@example.com", "CUGJ800101HSRRRL02")

	superProfile := models.Solicitante{UserID: super.ID, Curp: super.Curp, Actividad: models.ActividadPesca}
	require.NoError(t, db.Create(&superProfile).Error)
	require.NoError(t, db.Create(&models.Integrante{
		SolicitanteID: superProfile.ID, Nombre: "Pedro", Parentesco: "Hijo",
	}).Error)
	require.NoError(t, db.Create(&models.Integrante{
		SolicitanteID: caller.SolicitanteID, Nombre: "María", Parentesco: "Esposa",
	}).Error)

	require.NoError(t, svc.ResetSystem(&ResetSystemRequest{MasterPassword: "clave-maestra"}))

	var count int64
	db.Model(&models.Solicitante{}).Count(&count)
	assert.EqualValues(t, 1, count)
	db.Model(&models.Integrante{}).Where("solicitante_id = ?", superProfile.ID).Count(&count)
	assert.EqualValues(t, 1, count)
	db.Model(&models.Integrante{}).Where("solicitante_id = ?", caller.SolicitanteID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestAdminListSolicitantesSearch(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	a := seedApplicant(t, db, "a@example.com", "AAGJ800101HSRRRL00")
	require.NoError(t, db.Model(&models.Solicitante{}).Where("id = ?", a.SolicitanteID).
		Updates(map[string]interface{}{"nombre": "Juan", "apellido_paterno": "Pérez"}).Error)
	b := seedApplicant(t, db, "b@example.com", "BBGJ800101HSRRRL09")
	require.NoError(t, db.Model(&models.Solicitante{}).Where("id = ?", b.SolicitanteID).
		Updates(map[string]interface{}{"nombre": "Rosa", "apellido_paterno": "López"}).Error)

	result, err := svc.ListSolicitantes(utils.PaginationParams{Page: 1, Limit: 10, Order: "desc", Search: "Pérez"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Total)

	rows, ok := result.Data.([]models.Solicitante)
	require.True(t, ok)
	require.Len(t, rows, 1)
	assert.Equal(t, "Juan", rows[0].Nombre)
}

func TestAdminDashboardCounts(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	caller := seedApplicant(t, db, "cuenta@example.com", "CUGJ800101HSRRRL02")
	require.NoError(t, db.Model(&models.Solicitante{}).Where("id = ?", caller.SolicitanteID).
		Updates(map[string]interface{}{"anexo1_completo": true, "actividad": models.ActividadPesca}).Error)
	require.NoError(t, db.Create(&models.Integrante{
		SolicitanteID: caller.SolicitanteID, Nombre: "María", Parentesco: "Esposa",
	}).Error)

	stats, err := svc.GetDashboardStats()
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalSolicitantes)
	assert.EqualValues(t, 1, stats.TotalIntegrantes)
	assert.EqualValues(t, 1, stats.Anexo1Completos)
	assert.EqualValues(t, 1, stats.ActividadPesca)
	assert.EqualValues(t, 0, stats.ActividadAcua)
}
