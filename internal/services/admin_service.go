// internal/services/admin_service.go
package services

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/conapesca/repa-backend/internal/config"
	"github.com/conapesca/repa-backend/internal/database"
	"github.com/conapesca/repa-backend/internal/models"
	"github.com/conapesca/repa-backend/internal/utils"
)

type AdminService struct {
	db  *gorm.DB
	cfg *config.Config
}

type AdminDashboardStats struct {
	TotalSolicitantes  int64 `json:"total_solicitantes"`
	TotalIntegrantes   int64 `json:"total_integrantes"`
	TotalEmbarcaciones int64 `json:"total_embarcaciones"`
	Anexo1Completos    int64 `json:"anexo1_completos"`
	Anexo2Completos    int64 `json:"anexo2_completos"`
	Anexo3Completos    int64 `json:"anexo3_completos"`
	Anexo4Completos    int64 `json:"anexo4_completos"`
	Anexo5Completos    int64 `json:"anexo5_completos"`
	ActividadPesca     int64 `json:"actividad_pesca"`
	ActividadAcua      int64 `json:"actividad_acuacultura"`
}

type SolicitanteDetail struct {
	Solicitante *models.Solicitante `json:"solicitante"`
	Email       string              `json:"email"`
	Anexo3      *Anexo3Response     `json:"anexo3"`
	Anexo4      *Anexo4Response     `json:"anexo4"`
}

type ResetSystemRequest struct {
	MasterPassword string `json:"master_password" validate:"required"`
}

var (
	ErrMasterPassword      = errors.New("la contraseña maestra es incorrecta")
	ErrSuperadminProtected = errors.New("no es posible eliminar una cuenta de superadministrador")
)

func NewAdminService(db *gorm.DB, cfg *config.Config) *AdminService {
	return &AdminService{db: db, cfg: cfg}
}

func (s *AdminService) GetDashboardStats() (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{}

	s.db.Model(&models.Solicitante{}).Count(&stats.TotalSolicitantes)
	s.db.Model(&models.Integrante{}).Count(&stats.TotalIntegrantes)
	s.db.Model(&models.EmbarcacionMenor{}).Count(&stats.TotalEmbarcaciones)
	s.db.Model(&models.Solicitante{}).Where("anexo1_completo = ?", true).Count(&stats.Anexo1Completos)
	s.db.Model(&models.Solicitante{}).Where("anexo2_completo = ?", true).Count(&stats.Anexo2Completos)
	s.db.Model(&models.Solicitante{}).Where("anexo3_completo = ?", true).Count(&stats.Anexo3Completos)
	s.db.Model(&models.Solicitante{}).Where("anexo4_completo = ?", true).Count(&stats.Anexo4Completos)
	s.db.Model(&models.Solicitante{}).Where("anexo5_completo = ?", true).Count(&stats.Anexo5Completos)
	s.db.Model(&models.Solicitante{}).Where("actividad IN ?", []models.Actividad{models.ActividadPesca, models.ActividadAmbas}).Count(&stats.ActividadPesca)
	s.db.Model(&models.Solicitante{}).Where("actividad IN ?", []models.Actividad{models.ActividadAcuacultura, models.ActividadAmbas}).Count(&stats.ActividadAcua)

	return stats, nil
}

// ListSolicitantes supports free-text search over name, CURP and RFC.
func (s *AdminService) ListSolicitantes(params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Solicitante{})

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where(
			"nombre LIKE ? OR apellido_paterno LIKE ? OR curp LIKE ? OR rfc LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var solicitantes []models.Solicitante
	query = utils.ApplySort(query, params, []string{"created_at", "nombre", "curp", "municipio"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&solicitantes).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	result := utils.CreatePaginationResult(solicitantes, total, params)
	return &result, nil
}

// GetSolicitanteDetail loads the full annex picture for the admin review view.
func (s *AdminService) GetSolicitanteDetail(id uint, pescaService *PescaService, acuaculturaService *AcuaculturaService) (*SolicitanteDetail, error) {
	var solicitante models.Solicitante
	if err := s.db.Preload("Integrantes").Preload("Embarcaciones").First(&solicitante, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, solicitante.UserID).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	anexo3, err := pescaService.GetAnexo3(id)
	if err != nil {
		return nil, err
	}
	anexo4, err := acuaculturaService.GetAnexo4(id)
	if err != nil {
		return nil, err
	}

	return &SolicitanteDetail{
		Solicitante: &solicitante,
		Email:       user.Email,
		Anexo3:      anexo3,
		Anexo4:      anexo4,
	}, nil
}

// UpdateSolicitante lets an administrator correct an applicant's profile.
func (s *AdminService) UpdateSolicitante(id uint, req *UpdatePerfilRequest) (*models.Solicitante, error) {
	var solicitante models.Solicitante
	if err := s.db.First(&solicitante, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	solicitante.Nombre = req.Nombre
	solicitante.ApellidoPaterno = req.ApellidoPaterno
	solicitante.ApellidoMaterno = req.ApellidoMaterno
	solicitante.Curp = req.Curp
	solicitante.Rfc = req.Rfc
	solicitante.Telefono = req.Telefono
	solicitante.Calle = req.Calle
	solicitante.NumeroExterior = req.NumeroExterior
	solicitante.Colonia = req.Colonia
	solicitante.Localidad = req.Localidad
	solicitante.Municipio = req.Municipio
	solicitante.Estado = req.Estado
	solicitante.CodigoPostal = req.CodigoPostal
	solicitante.Actividad = models.Actividad(req.Actividad)
	solicitante.Anexo1Completo = solicitante.PerfilCompleto()

	if err := s.db.Save(&solicitante).Error; err != nil {
		return nil, mapWriteError(err, solicitanteFieldByColumn)
	}
	return &solicitante, nil
}

// DeleteSolicitante removes an applicant and every dependent row in one
// transaction. Accounts holding the superadmin role are refused outright, so
// a superadmin can never remove their own login through this path either.
func (s *AdminService) DeleteSolicitante(id uint) error {
	var solicitante models.Solicitante
	if err := s.db.First(&solicitante, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, solicitante.UserID).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if user.Role == models.RoleSuperadmin {
		return ErrSuperadminProtected
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		dependents := []interface{}{
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
		for _, dep := range dependents {
			if err := tx.Where("solicitante_id = ?", id).Delete(dep).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&solicitante).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

// ResetSystem is the destructive master-password reset: it empties every
// dependent table and deletes all non-superadmin users and applicants in one
// transaction.
func (s *AdminService) ResetSystem(req *ResetSystemRequest) error {
	if s.cfg.Admin.MasterResetPassword == "" {
		return ErrMasterPassword
	}
	if subtle.ConstantTimeCompare([]byte(req.MasterPassword), []byte(s.cfg.Admin.MasterResetPassword)) != 1 {
		return ErrMasterPassword
	}

	// Superadmin accounts and any data they own survive the wipe.
	const nonSuperUsers = "SELECT id FROM users WHERE role <> ?"
	const nonSuperProfiles = "SELECT id FROM solicitantes WHERE user_id IN (" + nonSuperUsers + ")"

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		tables := []string{
			"integrantes",
			"embarcacion_menors",
			"datos_pescas",
			"activos_pescas",
			"datos_acuaculturas",
			"tipo_estanques",
			"instrumento_medicions",
			"sistema_conservacions",
			"equipo_transportes",
			"embarcacion_acuicolas",
			"instalacion_hidraulicas",
			"unidad_produccions",
		}
		for _, table := range tables {
			if err := tx.Exec(
				"DELETE FROM "+table+" WHERE solicitante_id IN ("+nonSuperProfiles+")",
				models.RoleSuperadmin,
			).Error; err != nil {
				return err
			}
		}
		if err := tx.Exec(
			"DELETE FROM password_reset_tokens WHERE email IN (SELECT email FROM users WHERE role <> ?)",
			models.RoleSuperadmin,
		).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			"DELETE FROM solicitantes WHERE user_id IN ("+nonSuperUsers+")",
			models.RoleSuperadmin,
		).Error; err != nil {
			return err
		}
		return tx.Where("role <> ?", models.RoleSuperadmin).Delete(&models.User{}).Error
	})
}
