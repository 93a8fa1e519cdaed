// internal/handlers/auth_handler_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/conapesca/repa-backend/internal/config"
	"github.com/conapesca/repa-backend/internal/database"
	"github.com/conapesca/repa-backend/internal/services"
)

var testDBCounter int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repa_handlers_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Tables()...))
	return db
}

func newAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	cfg := &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "clave-de-prueba", AccessTokenTTL: 1},
	}
	authService := services.NewAuthService(db, cfg,
		services.NewCaptchaService(&config.Config{}),
		services.NewNotificationService(&config.Config{}))
	authHandler := NewAuthHandler(authService)

	r := gin.New()
	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}
	return r, db
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	jsonData, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(jsonData))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterValidCurp(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := postJSON(t, r, "/v1/auth/register", map[string]string{
		"curp":     "PEGJ800101HSRRRL09",
		"email":    "nuevo@example.com",
		"password": "contrasena123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response["token"])
	assert.Equal(t, "Bearer", response["token_type"])
}

func TestRegisterShortCurpReturnsFieldError(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := postJSON(t, r, "/v1/auth/register", map[string]string{
		"curp":     "PEGJ800101HSRRRL0", // 17 characters
		"email":    "nuevo@example.com",
		"password": "contrasena123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "curp", response["field"])
	assert.NotEmpty(t, response["message"])
}

func TestRegisterShortPasswordReturnsFieldError(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := postJSON(t, r, "/v1/auth/register", map[string]string{
		"curp":     "PEGJ800101HSRRRL09",
		"email":    "nuevo@example.com",
		"password": "corta",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "password", response["field"])
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := postJSON(t, r, "/v1/auth/register", map[string]string{
		"curp":     "PEGJ800101HSRRRL09",
		"email":    "nuevo@example.com",
		"password": "contrasena123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/v1/auth/login", map[string]string{
		"email":    "nuevo@example.com",
		"password": "incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
