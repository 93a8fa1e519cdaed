// internal/services/testdb_test.go
package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/conapesca/repa-backend/internal/config"
	"github.com/conapesca/repa-backend/internal/database"
	"github.com/conapesca/repa-backend/internal/models"
	"github.com/conapesca/repa-backend/internal/utils"
)

var testDBCounter int64

// newTestDB opens a fresh in-memory database per test. The unique name keeps
// parallel tests from sharing state through sqlite's shared cache.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repa_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Tables()...))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:      "clave-de-prueba",
			AccessTokenTTL: 1,
		},
	}
}

// seedApplicant creates a login plus its empty profile row and returns the
// caller identity the middleware would attach.
func seedApplicant(t *testing.T, db *gorm.DB, email, curp string) utils.Caller {
	t.Helper()

	user := models.User{Curp: curp, Email: email, Role: models.RoleSolicitante}
	require.NoError(t, user.SetPassword("contrasena123"))
	require.NoError(t, db.Create(&user).Error)

	solicitante := models.Solicitante{UserID: user.ID, Curp: curp, Actividad: models.ActividadAmbas}
	require.NoError(t, db.Create(&solicitante).Error)

	return utils.Caller{
		UserID:        user.ID,
		Email:         email,
		Role:          models.RoleSolicitante,
		SolicitanteID: solicitante.ID,
	}
}

func seedSuperadmin(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{Curp: "SUPERADMIN0000GOB0", Email: email, Role: models.RoleSuperadmin}
	require.NoError(t, user.SetPassword("superclave123"))
	require.NoError(t, db.Create(&user).Error)
	return user
}

func testNotifier() *NotificationService {
	return NewNotificationService(&config.Config{})
}
