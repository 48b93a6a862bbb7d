// Package pdf implementa la representación gráfica (PDF) de una propuesta
// comercial.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título de la propuesta  │  Fecha                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MONTO: valor mensual propuesto                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: instrucciones de firma por enlace                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appproposal "github.com/tu-usuario/backoffice-api/internal/application/proposal"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appproposal.PDFGenerator = (*MarotoProposalGenerator)(nil)

// MarotoProposalGenerator implementa proposal.PDFGenerator usando Maroto v2.
type MarotoProposalGenerator struct{}

// NewMarotoProposalGenerator construye el generador.
func NewMarotoProposalGenerator() *MarotoProposalGenerator { return &MarotoProposalGenerator{} }

// GenerateProposalPDF genera el PDF de la propuesta y devuelve sus bytes.
func (g *MarotoProposalGenerator) GenerateProposalPDF(
	_ context.Context,
	proposal *entity.Proposal,
	client *entity.Client,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Propuesta Comercial", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(proposal))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(amountRow(proposal))
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título de la propuesta (izq) y fecha (der).
func headerRow(proposal *entity.Proposal) core.Row {
	fecha := proposal.CreatedAt.Format("02/01/2006")
	return row.New(18).Add(
		col.New(8).Add(
			text.New("PROPUESTA COMERCIAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(proposal.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 7,
			}),
		),
		col.New(4).Add(
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
		),
	)
}

// clientRow: datos del cliente destinatario.
func clientRow(client *entity.Client) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(client.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Contacto: "+nonEmpty(client.ContactEmail, "—"), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// amountRow: monto mensual propuesto.
func amountRow(proposal *entity.Proposal) core.Row {
	return row.New(20).Add(
		col.New(6).Add(
			text.New("VALOR MENSUAL PROPUESTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(6).Add(
			text.New("$"+formatMoney(proposal.Amount.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 1,
			}),
		),
	)
}

// footerRow: instrucciones de firma por enlace.
func footerRow() core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New(
			"Para aceptar esta propuesta utilice el enlace de firma que recibirá por correo. "+
				"La firma por enlace tiene validez de aceptación comercial.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
