// internal/services/upsert.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// firstByOwner loads the at-most-one row keyed by the applicant. The boolean
// distinguishes "no row yet" from a real database failure.
func firstByOwner(db *gorm.DB, solicitanteID uint, dest interface{}) (bool, error) {
	err := db.Where("solicitante_id = ?", solicitanteID).First(dest).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("database error: %w", err)
}

// upsertByOwner writes an at-most-one-per-applicant row with a database-level
// upsert on the unique solicitante_id index, collapsing the lookup+branch
// into one statement. Last write wins.
func upsertByOwner(tx *gorm.DB, row interface{}) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "solicitante_id"}},
		UpdateAll: true,
	}).Create(row).Error
}
