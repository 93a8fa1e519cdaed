// internal/handlers/admin_handler_test.go
package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/conapesca/repa-backend/internal/config"
	"github.com/conapesca/repa-backend/internal/middleware"
	"github.com/conapesca/repa-backend/internal/models"
	"github.com/conapesca/repa-backend/internal/services"
	"github.com/conapesca/repa-backend/internal/utils"
)

func seedUser(t *testing.T, db *gorm.DB, email, curp string, role models.Role) (models.User, models.Solicitante) {
	t.Helper()

	user := models.User{Curp: curp, Email: email, Role: role}
	require.NoError(t, user.SetPassword("contrasena123"))
	require.NoError(t, db.Create(&user).Error)

	solicitante := models.Solicitante{UserID: user.ID, Curp: curp, Actividad: models.ActividadPesca}
	require.NoError(t, db.Create(&solicitante).Error)
	return user, solicitante
}

func bearerFor(t *testing.T, user models.User, solicitanteID uint) string {
	t.Helper()

	token, err := utils.GenerateJWT(user.ID, user.Email, string(user.Role), solicitanteID, 1)
	require.NoError(t, err)
	return "Bearer " + token
}

func newAdminRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("clave-de-prueba")

	db := newTestDB(t)
	cfg := &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "clave-de-prueba", AccessTokenTTL: 1},
		Admin:       config.AdminConfig{MasterResetPassword: "clave-maestra"},
	}
	notifier := services.NewNotificationService(&config.Config{})
	adminService := services.NewAdminService(db, cfg)
	pescaService := services.NewPescaService(db, notifier)
	acuaculturaService := services.NewAcuaculturaService(db, notifier)
	backupService, err := services.NewBackupService(cfg)
	require.NoError(t, err)
	adminHandler := NewAdminHandler(adminService, pescaService, acuaculturaService, backupService)

	r := gin.New()
	admin := r.Group("/v1/admin")
	admin.Use(middleware.AuthRequired(db), middleware.AdminRequired())
	{
		admin.GET("/solicitantes", adminHandler.ListSolicitantes)
		admin.DELETE("/solicitantes/:id", adminHandler.DeleteSolicitante)

		super := admin.Group("")
		super.Use(middleware.SuperadminRequired())
		{
			super.POST("/reset", adminHandler.ResetSystem)
		}
	}
	return r, db
}

func doRequest(t *testing.T, r *gin.Engine, method, path, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, path, nil)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminRoutesRejectApplicantToken(t *testing.T) {
	r, db := newAdminRouter(t)
	user, solicitante := seedUser(t, db, "cuenta@example.com", "CUGJ800101HSRRRL02", models.RoleSolicitante)

	w := doRequest(t, r, http.MethodGet, "/v1/admin/solicitantes", bearerFor(t, user, solicitante.ID))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRoutesRejectMissingToken(t *testing.T) {
	r, _ := newAdminRouter(t)

	w := doRequest(t, r, http.MethodGet, "/v1/admin/solicitantes", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminCannotDeleteSuperadmin(t *testing.T) {
	r, db := newAdminRouter(t)
	admin, _ := seedUser(t, db, "admin@example.com", "ADGJ800101HSRRRL03", models.RoleAdmin)
	_, superProfile := seedUser(t, db, "root@example.com", "SUGJ800101HSRRRL04", models.RoleSuperadmin)

	w := doRequest(t, r, http.MethodDelete,
		fmt.Sprintf("/v1/admin/solicitantes/%d", superProfile.ID), bearerFor(t, admin, 0))
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	db.Model(&models.Solicitante{}).Where("id = ?", superProfile.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestResetRequiresSuperadminRole(t *testing.T) {
	r, db := newAdminRouter(t)
	admin, _ := seedUser(t, db, "admin@example.com", "ADGJ800101HSRRRL03", models.RoleAdmin)

	w := doRequest(t, r, http.MethodPost, "/v1/admin/reset", bearerFor(t, admin, 0))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminDeleteApplicantThroughAPI(t *testing.T) {
	r, db := newAdminRouter(t)
	admin, _ := seedUser(t, db, "admin@example.com", "ADGJ800101HSRRRL03", models.RoleAdmin)
	_, applicant := seedUser(t, db, "cuenta@example.com", "CUGJ800101HSRRRL02", models.RoleSolicitante)

	w := doRequest(t, r, http.MethodDelete,
		fmt.Sprintf("/v1/admin/solicitantes/%d", applicant.ID), bearerFor(t, admin, 0))
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Solicitante{}).Where("id = ?", applicant.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}
