// internal/services/auth_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/conapesca/repa-backend/internal/config"
	"github.com/conapesca/repa-backend/internal/database"
	"github.com/conapesca/repa-backend/internal/models"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(db, testConfig(), NewCaptchaService(&config.Config{}), testNotifier())
}

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.Register(&RegisterRequest{
		Curp:     "REGJ800101HSRRRL03",
		Email:    "nuevo@example.com",
		Password: "contrasena123",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, models.RoleSolicitante, resp.User.Role)

	var solicitante models.Solicitante
	require.NoError(t, db.Where("user_id = ?", resp.User.ID).First(&solicitante).Error)
	assert.Equal(t, "REGJ800101HSRRRL03", solicitante.Curp)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(&RegisterRequest{
		Curp: "REGJ800101HSRRRL03", Email: "nuevo@example.com", Password: "contrasena123",
	}, "")
	require.NoError(t, err)

	var fieldErr *FieldError
	_, err = svc.Register(&RegisterRequest{
		Curp: "OTGJ800101HSRRRL06", Email: "nuevo@example.com", Password: "contrasena123",
	}, "")
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "email", fieldErr.Field)

	_, err = svc.Register(&RegisterRequest{
		Curp: "REGJ800101HSRRRL03", Email: "distinto@example.com", Password: "contrasena123",
	}, "")
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "curp", fieldErr.Field)
}

func TestLoginValidatesCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	seedApplicant(t, db, "cuenta@example.com", "CUGJ800101HSRRRL02")

	resp, err := svc.Login(&LoginRequest{Email: "cuenta@example.com", Password: "contrasena123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotZero(t, resp.User.LastLoginAt)

	_, err = svc.Login(&LoginRequest{Email: "cuenta@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&LoginRequest{Email: "nadie@example.com", Password: "contrasena123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestForgotPasswordSilentOnUnknownEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	require.NoError(t, svc.ForgotPassword(&ForgotPasswordRequest{Email: "nadie@example.com"}, ""))

	var count int64
	db.Model(&models.PasswordResetToken{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestForgotPasswordKeepsOneActiveToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	seedApplicant(t, db, "cuenta@example.com", "CUGJ800101HSRRRL02")

	require.NoError(t, svc.ForgotPassword(&ForgotPasswordRequest{Email: "cuenta@example.com"}, ""))
	require.NoError(t, svc.ForgotPassword(&ForgotPasswordRequest{Email: "cuenta@example.com"}, ""))

	var count int64
	db.Model(&models.PasswordResetToken{}).Where("email = ?", "cuenta@example.com").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestResetPasswordIsSingleUse(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	seedApplicant(t, db, "cuenta@example.com", "CUGJ800101HSRRRL02")

	require.NoError(t, db.Create(&models.PasswordResetToken{
		Email:     "cuenta@example.com",
		Token:     "token-de-prueba",
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}).Error)

	require.NoError(t, svc.ResetPassword(&ResetPasswordRequest{
		Token:       "token-de-prueba",
		NewPassword: "renovada12345",
	}))

	_, err := svc.Login(&LoginRequest{Email: "cuenta@example.com", Password: "renovada12345"})
	require.NoError(t, err)
	_, err = svc.Login(&LoginRequest{Email: "cuenta@example.com", Password: "contrasena123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// The token was consumed in the same transaction.
	err = svc.ResetPassword(&ResetPasswordRequest{
		Token:       "token-de-prueba",
		NewPassword: "otravez12345",
	})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRedeemResetTokenRequiresLiveRow(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	seedApplicant(t, db, "cuenta@example.com", "CUGJ800101HSRRRL02")

	token := models.PasswordResetToken{
		Email:     "cuenta@example.com",
		Token:     "token-de-prueba",
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	require.NoError(t, db.Create(&token).Error)

	var user models.User
	require.NoError(t, db.Where("email = ?", "cuenta@example.com").First(&user).Error)
	require.NoError(t, user.SetPassword("renovada12345"))

	// A concurrent redemption consumed the token between lookup and commit.
	require.NoError(t, db.Delete(&models.PasswordResetToken{}, token.ID).Error)

	err := database.WithTransaction(db, func(tx *gorm.DB) error {
		return redeemResetToken(tx, &user, &token)
	})
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The rollback keeps the previous password in place.
	_, err = svc.Login(&LoginRequest{Email: "cuenta@example.com", Password: "contrasena123"})
	require.NoError(t, err)
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	seedApplicant(t, db, "cuenta@example.com", "CUGJ800101HSRRRL02")

	require.NoError(t, db.Create(&models.PasswordResetToken{
		Email:     "cuenta@example.com",
		Token:     "token-vencido",
		ExpiresAt: time.Now().Add(-time.Minute),
	}).Error)

	err := svc.ResetPassword(&ResetPasswordRequest{
		Token:       "token-vencido",
		NewPassword: "renovada12345",
	})
	assert.ErrorIs(t, err, ErrInvalidToken)

	var count int64
	db.Model(&models.PasswordResetToken{}).Where("token = ?", "token-vencido").Count(&count)
	assert.EqualValues(t, 0, count)
}
