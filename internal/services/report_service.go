// internal/services/report_service.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/conapesca/repa-backend/internal/models"
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// reportData is everything the registration document renders, gathered in one
// concurrent pass.
type reportData struct {
	Solicitante   models.Solicitante
	User          models.User
	Integrantes   []models.Integrante
	Embarcaciones []models.EmbarcacionMenor

	DatosPesca   *models.DatosPesca
	ActivosPesca *models.ActivosPesca

	DatosAcua    *models.DatosAcuacultura
	Estanques    *models.TipoEstanque
	Instrumentos *models.InstrumentoMedicion
	Conservacion *models.SistemaConservacion
	Transporte   *models.EquipoTransporte
	Hidraulicas  *models.InstalacionHidraulica
	Unidad       *models.UnidadProduccion
}

// GenerateRegistro renders the applicant's full registration as a PDF. The
// document is built in memory so a data failure surfaces before any bytes
// reach the client.
func (s *ReportService) GenerateRegistro(ctx context.Context, solicitanteID uint) ([]byte, error) {
	data, err := s.gather(ctx, solicitanteID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := renderRegistro(data, &buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ReportService) gather(ctx context.Context, solicitanteID uint) (*reportData, error) {
	data := &reportData{}

	if err := s.db.WithContext(ctx).First(&data.Solicitante, solicitanteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	db := s.db.WithContext(gctx)

	g.Go(func() error {
		return db.First(&data.User, data.Solicitante.UserID).Error
	})
	g.Go(func() error {
		return db.Where("solicitante_id = ?", solicitanteID).Order("id").Find(&data.Integrantes).Error
	})
	g.Go(func() error {
		return db.Where("solicitante_id = ?", solicitanteID).Order("id").Find(&data.Embarcaciones).Error
	})
	g.Go(func() error {
		var row models.DatosPesca
		if found, err := firstByOwner(db, solicitanteID, &row); err != nil {
			return err
		} else if found {
			data.DatosPesca = &row
		}
		return nil
	})
	g.Go(func() error {
		var row models.ActivosPesca
		if found, err := firstByOwner(db, solicitanteID, &row); err != nil {
			return err
		} else if found {
			data.ActivosPesca = &row
		}
		return nil
	})
	g.Go(func() error {
		var row models.DatosAcuacultura
		if found, err := firstByOwner(db, solicitanteID, &row); err != nil {
			return err
		} else if found {
			data.DatosAcua = &row
		}
		return nil
	})
	g.Go(func() error {
		var row models.TipoEstanque
		if found, err := firstByOwner(db, solicitanteID, &row); err != nil {
			return err
		} else if found {
			data.Estanques = &row
		}
		return nil
	})
	g.Go(func() error {
		var row models.InstrumentoMedicion
		if found, err := firstByOwner(db, solicitanteID, &row); err != nil {
			return err
		} else if found {
			data.Instrumentos = &row
		}
		return nil
	})
	g.Go(func() error {
		var row models.SistemaConservacion
		if found, err := firstByOwner(db, solicitanteID, &row); err != nil {
			return err
		} else if found {
			data.Conservacion = &row
		}
		return nil
	})
	g.Go(func() error {
		var row models.EquipoTransporte
		if found, err := firstByOwner(db, solicitanteID, &row); err != nil {
			return err
		} else if found {
			data.Transporte = &row
		}
		return nil
	})
	g.Go(func() error {
		var row models.InstalacionHidraulica
		if found, err := firstByOwner(db, solicitanteID, &row); err != nil {
			return err
		} else if found {
			data.Hidraulicas = &row
		}
		return nil
	})
	g.Go(func() error {
		var row models.UnidadProduccion
		if found, err := firstByOwner(db, solicitanteID, &row); err != nil {
			return err
		} else if found {
			data.Unidad = &row
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to gather report data: %w", err)
	}
	return data, nil
}

const (
	pageTop    = 20.0
	pageBottom = 270.0
	rowHeight  = 7.0
	labelWidth = 60.0
)

// reportLayout tracks rendering position explicitly (current y, page breaks)
// instead of trusting the document object's mutable cursor.
type reportLayout struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	y   float64
}

func (l *reportLayout) ensureSpace(h float64) {
	if l.y+h > pageBottom {
		l.pdf.AddPage()
		l.y = pageTop
	}
}

func (l *reportLayout) sectionTitle(title string) {
	l.ensureSpace(rowHeight * 2)
	l.pdf.SetXY(10, l.y)
	l.pdf.SetFont("Helvetica", "B", 11)
	l.pdf.SetFillColor(220, 230, 240)
	l.pdf.CellFormat(190, rowHeight, l.tr(title), "1", 0, "L", true, 0, "")
	l.y += rowHeight + 1
}

func (l *reportLayout) field(label, value string) {
	if value == "" {
		value = "—"
	}
	l.ensureSpace(rowHeight)
	l.pdf.SetXY(10, l.y)
	l.pdf.SetFont("Helvetica", "B", 9)
	l.pdf.CellFormat(labelWidth, rowHeight, l.tr(label), "", 0, "L", false, 0, "")
	l.pdf.SetFont("Helvetica", "", 9)
	l.pdf.CellFormat(190-labelWidth, rowHeight, l.tr(value), "", 0, "L", false, 0, "")
	l.y += rowHeight
}

func (l *reportLayout) tableHeader(widths []float64, headers []string) {
	l.ensureSpace(rowHeight)
	l.pdf.SetXY(10, l.y)
	l.pdf.SetFont("Helvetica", "B", 8)
	l.pdf.SetFillColor(235, 235, 235)
	for i, h := range headers {
		l.pdf.CellFormat(widths[i], rowHeight, l.tr(h), "1", 0, "C", true, 0, "")
	}
	l.y += rowHeight
}

func (l *reportLayout) tableRow(widths []float64, cells []string) {
	l.ensureSpace(rowHeight)
	l.pdf.SetXY(10, l.y)
	l.pdf.SetFont("Helvetica", "", 8)
	for i, cell := range cells {
		l.pdf.CellFormat(widths[i], rowHeight, l.tr(cell), "1", 0, "L", false, 0, "")
	}
	l.y += rowHeight
}

func (l *reportLayout) gap() {
	l.y += 4
}

func renderRegistro(data *reportData, buf *bytes.Buffer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Registro REPA", true)
	pdf.AliasNbPages("")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Página %d de {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	l := &reportLayout{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
		y:   pageTop,
	}

	pdf.AddPage()

	// Header
	pdf.SetXY(10, l.y)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(190, 8, l.tr("Registro Nacional de Pesca y Acuacultura"), "", 0, "C", false, 0, "")
	l.y += 9
	pdf.SetXY(10, l.y)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(190, 6, l.tr(fmt.Sprintf("Folio de solicitud: %d", data.Solicitante.ID)), "", 0, "C", false, 0, "")
	l.y += 10

	// Anexo 1: profile
	l.sectionTitle("Anexo 1 — Datos del solicitante")
	nombre := fmt.Sprintf("%s %s %s", data.Solicitante.Nombre, data.Solicitante.ApellidoPaterno, data.Solicitante.ApellidoMaterno)
	l.field("Nombre completo", nombre)
	l.field("CURP", data.Solicitante.Curp)
	l.field("RFC", data.Solicitante.Rfc)
	l.field("Correo electrónico", data.User.Email)
	l.field("Teléfono", data.Solicitante.Telefono)
	domicilio := fmt.Sprintf("%s %s, %s", data.Solicitante.Calle, data.Solicitante.NumeroExterior, data.Solicitante.Colonia)
	l.field("Domicilio", domicilio)
	l.field("Localidad", data.Solicitante.Localidad)
	l.field("Municipio", data.Solicitante.Municipio)
	l.field("Estado", data.Solicitante.Estado)
	l.field("Código postal", data.Solicitante.CodigoPostal)
	l.field("Actividad declarada", string(data.Solicitante.Actividad))
	l.gap()

	// Anexo 2: household members
	l.sectionTitle("Anexo 2 — Integrantes de la unidad familiar")
	if len(data.Integrantes) == 0 {
		l.field("Integrantes", "Sin registros")
	} else {
		widths := []float64{70, 45, 35, 25, 15}
		l.tableHeader(widths, []string{"Nombre", "CURP", "Parentesco", "Ocupación", "Edad"})
		for _, in := range data.Integrantes {
			l.tableRow(widths, []string{
				fmt.Sprintf("%s %s %s", in.Nombre, in.ApellidoPaterno, in.ApellidoMaterno),
				in.Curp,
				in.Parentesco,
				in.Ocupacion,
				fmt.Sprintf("%d", in.Edad),
			})
		}
	}
	l.gap()

	// Conditional technical sections by declared activity
	if data.Solicitante.Actividad.IncludesPesca() {
		l.sectionTitle("Anexo 3 — Datos técnicos de pesca")
		if data.DatosPesca != nil {
			l.field("Especies objetivo", data.DatosPesca.EspeciesObjetivo)
			l.field("Artes de pesca", data.DatosPesca.ArtesPesca)
			l.field("Zona de captura", data.DatosPesca.ZonaCaptura)
			l.field("Sitio de desembarque", data.DatosPesca.SitioDesembarque)
			l.field("Número de permiso", data.DatosPesca.PermisoNumero)
			l.field("Vigencia del permiso", data.DatosPesca.PermisoVigencia)
		} else {
			l.field("Datos técnicos", "Sin registros")
		}
		if data.ActivosPesca != nil {
			l.field("Embarcaciones", fmt.Sprintf("%d", data.ActivosPesca.NumEmbarcaciones))
			l.field("Motores", fmt.Sprintf("%d", data.ActivosPesca.NumMotores))
			l.field("Artes y equipo", data.ActivosPesca.ArtesEquipo)
			l.field("Equipos de conservación", data.ActivosPesca.EquiposConservacion)
		}
		l.gap()
	}

	if data.Solicitante.Actividad.IncludesAcuacultura() {
		l.sectionTitle("Anexo 4 — Datos técnicos de acuacultura")
		if data.DatosAcua != nil {
			l.field("Especies cultivadas", data.DatosAcua.Especies)
			l.field("Tipo de sistema", data.DatosAcua.TipoSistema)
			l.field("Superficie (ha)", fmt.Sprintf("%.2f", data.DatosAcua.SuperficieHectareas))
			l.field("Producción anual (ton)", fmt.Sprintf("%.2f", data.DatosAcua.ProduccionAnualTon))
			l.field("Fuente de agua", data.DatosAcua.FuenteAgua)
		} else {
			l.field("Datos técnicos", "Sin registros")
		}
		if data.Unidad != nil {
			l.field("Unidad de producción", data.Unidad.Nombre)
			l.field("Ubicación", data.Unidad.Ubicacion)
		}
		if data.Estanques != nil {
			l.field("Estanques rústicos", fmt.Sprintf("%d", data.Estanques.Rusticos))
			l.field("Estanques de geomembrana", fmt.Sprintf("%d", data.Estanques.Geomembrana))
			l.field("Estanques de concreto", fmt.Sprintf("%d", data.Estanques.Concreto))
			l.field("Jaulas", fmt.Sprintf("%d", data.Estanques.Jaulas))
		}
		if data.Instrumentos != nil {
			l.field("Instrumentos de medición", fmt.Sprintf("%d oxímetros, %d termómetros, %d potenciómetros",
				data.Instrumentos.Oximetros, data.Instrumentos.Termometros, data.Instrumentos.Phmetros))
		}
		if data.Conservacion != nil {
			l.field("Equipos de conservación", fmt.Sprintf("%d refrigeradores, %d congeladores",
				data.Conservacion.Refrigeradores, data.Conservacion.Congeladores))
		}
		if data.Transporte != nil {
			l.field("Equipo de transporte", fmt.Sprintf("%d camionetas, %d camiones térmicos",
				data.Transporte.Camionetas, data.Transporte.CamionesTermicos))
		}
		if data.Hidraulicas != nil {
			l.field("Instalaciones hidráulicas", fmt.Sprintf("%d bombas, %d aireadores",
				data.Hidraulicas.BombasAgua, data.Hidraulicas.Aireadores))
		}
		l.gap()
	}

	// Anexo 5: vessels
	l.sectionTitle("Anexo 5 — Embarcaciones menores")
	if len(data.Embarcaciones) == 0 {
		l.field("Embarcaciones", "Sin registros")
	} else {
		widths := []float64{50, 30, 30, 25, 35, 20}
		l.tableHeader(widths, []string{"Nombre", "Matrícula", "Casco", "Eslora (m)", "Motor", "HP"})
		for _, e := range data.Embarcaciones {
			l.tableRow(widths, []string{
				e.Nombre,
				e.Matricula,
				e.MaterialCasco,
				fmt.Sprintf("%.1f", e.EsloraMetros),
				e.MotorMarca,
				fmt.Sprintf("%.0f", e.MotorPotenciaHP),
			})
		}
	}

	return pdf.Output(buf)
}
