// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/conapesca/repa-backend/internal/config"
	"github.com/conapesca/repa-backend/internal/database"
	"github.com/conapesca/repa-backend/internal/models"
	"github.com/conapesca/repa-backend/internal/utils"
)

const resetTokenTTL = 15 * time.Minute

type AuthService struct {
	db                  *gorm.DB
	cfg                 *config.Config
	captchaService      *CaptchaService
	notificationService *NotificationService
}

type RegisterRequest struct {
	Curp         string `json:"curp" validate:"required,curp"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	CaptchaToken string `json:"captcha_token"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // in seconds
}

type ForgotPasswordRequest struct {
	Email        string `json:"email" validate:"required,email"`
	CaptchaToken string `json:"captcha_token"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config, captchaService *CaptchaService, notificationService *NotificationService) *AuthService {
	return &AuthService{
		db:                  db,
		cfg:                 cfg,
		captchaService:      captchaService,
		notificationService: notificationService,
	}
}

// Register creates the login identity and its empty applicant profile in one
// transaction, so every authenticated user has an owner row from the start.
func (s *AuthService) Register(req *RegisterRequest, remoteIP string) (*AuthResponse, error) {
	if err := s.captchaService.Verify(req.CaptchaToken, remoteIP); err != nil {
		return nil, err
	}

	var existing models.User
	if err := s.db.Where("email = ? OR curp = ?", req.Email, req.Curp).First(&existing).Error; err == nil {
		if existing.Email == req.Email {
			return nil, &FieldError{Message: "Ya existe una cuenta con este correo electrónico", Field: "email"}
		}
		return nil, &FieldError{Message: "Ya existe una cuenta con esta CURP", Field: "curp"}
	}

	user := &models.User{
		Curp:  req.Curp,
		Email: req.Email,
		Role:  models.RoleSolicitante,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var solicitante models.Solicitante
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		solicitante = models.Solicitante{
			UserID:    user.ID,
			Curp:      req.Curp,
			Actividad: models.ActividadPesca,
		}
		return tx.Create(&solicitante).Error
	})
	if err != nil {
		return nil, err
	}

	// Welcome email must not block registration.
	go func() {
		if err := s.notificationService.SendWelcomeEmail(user); err != nil {
			logError("failed to send welcome email", err)
		}
	}()

	return s.buildAuthResponse(user, solicitante.ID)
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	s.db.Save(&user)

	return s.buildAuthResponse(&user, s.solicitanteIDFor(user.ID))
}

func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Solicitante").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

// ForgotPassword issues a reset token. One active token per email: previous
// tokens are purged on issuance. The response never reveals whether the
// account exists.
func (s *AuthService) ForgotPassword(req *ForgotPasswordRequest, remoteIP string) error {
	if err := s.captchaService.Verify(req.CaptchaToken, remoteIP); err != nil {
		return err
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", user.Email).Delete(&models.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.PasswordResetToken{
			Email:     user.Email,
			Token:     token,
			ExpiresAt: time.Now().Add(resetTokenTTL),
		}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	go func() {
		if err := s.notificationService.SendPasswordResetEmail(user.Email, token); err != nil {
			logError("failed to send password reset email", err)
		}
	}()

	return nil
}

// ResetPassword redeems a token exactly once: the token row is deleted in the
// same transaction that updates the password.
func (s *AuthService) ResetPassword(req *ResetPasswordRequest) error {
	var reset models.PasswordResetToken
	if err := s.db.Where("token = ?", req.Token).First(&reset).Error; err != nil {
		return ErrInvalidToken
	}

	if reset.Expired(time.Now()) {
		s.db.Delete(&reset)
		return ErrInvalidToken
	}

	var user models.User
	if err := s.db.Where("email = ?", reset.Email).First(&user).Error; err != nil {
		return ErrInvalidToken
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		return redeemResetToken(tx, &user, &reset)
	})
}

// redeemResetToken persists the new password and consumes the token row.
// Deleting zero rows means another request redeemed the token after our
// lookup, so the whole transaction rolls back.
func redeemResetToken(tx *gorm.DB, user *models.User, reset *models.PasswordResetToken) error {
	if err := tx.Save(user).Error; err != nil {
		return err
	}
	res := tx.Delete(reset)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidToken
	}
	return nil
}

func (s *AuthService) buildAuthResponse(user *models.User, solicitanteID uint) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(user.ID, user.Email, string(user.Role), solicitanteID, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{
		User:        user,
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.JWT.AccessTokenTTL * 3600,
	}, nil
}

func (s *AuthService) solicitanteIDFor(userID uint) uint {
	var solicitante models.Solicitante
	if err := s.db.Where("user_id = ?", userID).First(&solicitante).Error; err != nil {
		return 0
	}
	return solicitante.ID
}
