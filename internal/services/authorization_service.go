// internal/services/authorization_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/conapesca/repa-backend/internal/utils"
)

// authorizeOwner is the single ownership policy for owner-scoped mutations:
// admins and superadmins pass, applicants only when the row's owner key
// matches their solicitante id.
func authorizeOwner(caller utils.Caller, ownerSolicitanteID uint) error {
	if caller.Role.IsAdmin() {
		return nil
	}
	if caller.SolicitanteID != 0 && caller.SolicitanteID == ownerSolicitanteID {
		return nil
	}
	return ErrForbidden
}

// loadOwned fetches dest by primary key and runs the ownership policy against
// the row's owner column. ErrNotFound when the row does not exist, then 403
// before any mutation can happen.
func loadOwned(db *gorm.DB, caller utils.Caller, dest interface{}, id uint, ownerOf func() uint) error {
	if err := db.First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}
	return authorizeOwner(caller, ownerOf())
}
