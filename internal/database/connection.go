// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/conapesca/repa-backend/internal/config"
	"github.com/conapesca/repa-backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(Tables()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// Tables lists every model in dependency order. The destructive admin reset
// reuses this list to empty dependent tables before removing owners.
func Tables() []interface{} {
	return []interface{}{
		&models.User{},
		&models.PasswordResetToken{},
		&models.Solicitante{},
		&models.Integrante{},
		&models.EmbarcacionMenor{},
		&models.DatosPesca{},
		&models.ActivosPesca{},
		&models.DatosAcuacultura{},
		&models.TipoEstanque{},
		&models.InstrumentoMedicion{},
		&models.SistemaConservacion{},
		&models.EquipoTransporte{},
		&models.EmbarcacionAcuicola{},
		&models.InstalacionHidraulica{},
		&models.UnidadProduccion{},
	}
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_integrantes_solicitante ON integrantes(solicitante_id)",
		"CREATE INDEX IF NOT EXISTS idx_embarcacion_menors_solicitante ON embarcacion_menors(solicitante_id)",
		"CREATE INDEX IF NOT EXISTS idx_embarcacion_menors_created_at ON embarcacion_menors(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_solicitantes_curp ON solicitantes(curp)",
		"CREATE INDEX IF NOT EXISTS idx_password_reset_tokens_email ON password_reset_tokens(email)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
