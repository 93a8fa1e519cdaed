// internal/middleware/auth.go
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/conapesca/repa-backend/internal/models"
	"github.com/conapesca/repa-backend/internal/utils"
)

// AuthRequired validates the bearer token and confirms the account still
// exists. A valid token whose user row was deleted is rejected, so revocation
// by deletion takes effect immediately.
func AuthRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c)
		if !ok {
			utils.UnauthorizedResponse(c, "Sesión inválida o expirada")
			c.Abort()
			return
		}

		var user models.User
		err := db.Preload("Solicitante").First(&user, claims.UserID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.UnauthorizedResponse(c, "La cuenta ya no existe")
			} else {
				utils.InternalErrorResponse(c)
			}
			c.Abort()
			return
		}

		caller := utils.Caller{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		}
		if user.Solicitante != nil {
			caller.SolicitanteID = user.Solicitante.ID
		}
		utils.SetCaller(c, caller)
		c.Next()
	}
}

func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := utils.GetCaller(c)
		if !ok || !caller.Role.IsAdmin() {
			utils.ForbiddenResponse(c, "Se requiere una cuenta de administrador")
			c.Abort()
			return
		}
		c.Next()
	}
}

func SuperadminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := utils.GetCaller(c)
		if !ok || caller.Role != models.RoleSuperadmin {
			utils.ForbiddenResponse(c, "Se requiere una cuenta de superadministrador")
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context) (*utils.JWTClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := utils.ValidateJWT(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

// isAdminToken reports whether the request carries a valid admin bearer token
// without touching the database. Used to exempt staff from the general limit.
func isAdminToken(c *gin.Context) bool {
	claims, ok := bearerClaims(c)
	if !ok {
		return false
	}
	return models.Role(claims.Role).IsAdmin()
}
