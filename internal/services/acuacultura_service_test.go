// internal/services/acuacultura_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conapesca/repa-backend/internal/models"
)

func anexo4Request() *SaveAnexo4Request {
	return &SaveAnexo4Request{
		Datos: DatosAcuaculturaRequest{
			Especies:            "Tilapia",
			TipoSistema:         "Semi-intensivo",
			SuperficieHectareas: 1.5,
			ProduccionAnualTon:  4,
		},
		Estanques:    TipoEstanqueRequest{Rusticos: 3, SuperficieM2: 1200},
		Instrumentos: InstrumentoMedicionRequest{Oximetros: 1, Termometros: 2},
		Conservacion: SistemaConservacionRequest{Hieleras: 4, CapacidadTon: 0.5},
		Transporte:   EquipoTransporteRequest{Camionetas: 1},
		Embarcaciones: EmbarcacionAcuicolaRequest{
			Cantidad:  1,
			TipoMotor: "Fuera de borda",
		},
		Hidraulicas: InstalacionHidraulicaRequest{BombasAgua: 2, Aireadores: 4},
		Unidad:      UnidadProduccionRequest{Nombre: "Granja El Carrizal", Ubicacion: "Ejido La Palma"},
	}
}

func TestSaveAnexo4WritesAllSectionsAndFlag(t *testing.T) {
	db := newTestDB(t)
	svc := NewAcuaculturaService(db, testNotifier())
	caller := seedApplicant(t, db, "acuicultor@example.com", "AUGJ800101HSRRRL08")

	resp, err := svc.SaveAnexo4(caller, anexo4Request())
	require.NoError(t, err)
	require.NotNil(t, resp.Datos)
	require.NotNil(t, resp.Unidad)
	assert.Equal(t, "Granja El Carrizal", resp.Unidad.Nombre)

	var solicitante models.Solicitante
	require.NoError(t, db.First(&solicitante, caller.SolicitanteID).Error)
	assert.True(t, solicitante.Anexo4Completo)

	for _, model := range []interface{}{
		&models.DatosAcuacultura{}, &models.TipoEstanque{}, &models.InstrumentoMedicion{},
		&models.SistemaConservacion{}, &models.EquipoTransporte{}, &models.EmbarcacionAcuicola{},
		&models.InstalacionHidraulica{}, &models.UnidadProduccion{},
	} {
		var count int64
		db.Model(model).Where("solicitante_id = ?", caller.SolicitanteID).Count(&count)
		assert.EqualValues(t, 1, count)
	}
}

func TestSaveAnexo4UpsertKeepsOneRowPerSection(t *testing.T) {
	db := newTestDB(t)
	svc := NewAcuaculturaService(db, testNotifier())
	caller := seedApplicant(t, db, "acuicultor@example.com", "AUGJ800101HSRRRL08")

	_, err := svc.SaveAnexo4(caller, anexo4Request())
	require.NoError(t, err)

	again := anexo4Request()
	again.Datos.Especies = "Camarón blanco"
	again.Estanques.Rusticos = 9
	_, err = svc.SaveAnexo4(caller, again)
	require.NoError(t, err)

	var datos models.DatosAcuacultura
	require.NoError(t, db.Where("solicitante_id = ?", caller.SolicitanteID).First(&datos).Error)
	assert.Equal(t, "Camarón blanco", datos.Especies)

	var estanques models.TipoEstanque
	require.NoError(t, db.Where("solicitante_id = ?", caller.SolicitanteID).First(&estanques).Error)
	assert.Equal(t, 9, estanques.Rusticos)

	var count int64
	db.Model(&models.DatosAcuacultura{}).Where("solicitante_id = ?", caller.SolicitanteID).Count(&count)
	assert.EqualValues(t, 1, count)
}

// A failure on the last write must roll back every earlier section and leave
// the annex flag untouched.
func TestSaveAnexo4RollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewAcuaculturaService(db, testNotifier())
	caller := seedApplicant(t, db, "acuicultor@example.com", "AUGJ800101HSRRRL08")

	require.NoError(t, db.Migrator().DropTable(&models.UnidadProduccion{}))

	_, err := svc.SaveAnexo4(caller, anexo4Request())
	require.Error(t, err)

	var count int64
	db.Model(&models.DatosAcuacultura{}).Where("solicitante_id = ?", caller.SolicitanteID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&models.TipoEstanque{}).Where("solicitante_id = ?", caller.SolicitanteID).Count(&count)
	assert.EqualValues(t, 0, count)

	var solicitante models.Solicitante
	require.NoError(t, db.First(&solicitante, caller.SolicitanteID).Error)
	assert.False(t, solicitante.Anexo4Completo)
}

func TestGetAnexo4EmptyWhenNothingSaved(t *testing.T) {
	db := newTestDB(t)
	svc := NewAcuaculturaService(db, testNotifier())
	caller := seedApplicant(t, db, "acuicultor@example.com", "AUGJ800101HSRRRL08")

	resp, err := svc.GetAnexo4(caller.SolicitanteID)
	require.NoError(t, err)
	assert.Nil(t, resp.Datos)
	assert.Nil(t, resp.Unidad)
}
