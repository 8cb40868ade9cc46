// Package pdf genera el recibo de venta en PDF con Maroto v2.
//
// Layout de la página A5:
//
//	┌──────────────────────────────────────────┐
//	│  HEADER: Farmacia + sucursal + teléfono   │
//	│  ──────────────────────────────────────  │
//	│  Recibo + fecha  |  cajero y cliente      │
//	│  ──────────────────────────────────────  │
//	│  TABLA: Cant | Producto (lote) | PU | Tot │
//	│  ──────────────────────────────────────  │
//	│  TOTAL / recibido / vuelto                │
//	│  Leyenda de pie                           │
//	└──────────────────────────────────────────┘
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

	"github.com/amigopos/amigo-pos/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateReceiptPDF genera el PDF del recibo y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReceiptPDF(_ context.Context, receipt *dto.ReceiptResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de venta", true).
		WithAuthor(receipt.Pharmacy, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(receipt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(saleInfoRow(receipt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(receipt) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(receipt))

	m.AddRows(line.NewRow(2))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: farmacia (izq) y sucursal + teléfono (der).
func headerRow(r *dto.ReceiptResponse) core.Row {
	phone := ""
	if r.BranchPhone != "" {
		phone = "Tel: " + r.BranchPhone
	}
	return row.New(14).Add(
		col.New(7).Add(
			text.New(r.Pharmacy, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(r.BranchName, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New(phone, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// saleInfoRow: número de recibo y fecha (izq), cajero y cliente (der).
func saleInfoRow(r *dto.ReceiptResponse) core.Row {
	attendedBy := "Atendió: " + nonEmpty(r.CashierName, "—")
	customer := "Cliente: " + nonEmpty(r.CustomerName, "mostrador")

	return row.New(12).Add(
		col.New(7).Add(
			text.New("Recibo "+r.SaleID, props.Text{Size: 8, Top: 1}),
			text.New(r.Date, props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(attendedBy, props.Text{Size: 8, Align: align.Right, Top: 1}),
			text.New(customer, props.Text{Size: 8, Align: align.Right, Top: 6, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// tableItemRows: una fila por línea de venta. El lote va junto al nombre para
// la trazabilidad del mostrador.
func tableItemRows(r *dto.ReceiptResponse) []core.Row {
	result := make([]core.Row, 0, len(r.Items))
	for _, it := range r.Items {
		name := it.ProductName
		if it.BatchCode != "" {
			name = fmt.Sprintf("%s (lote %s)", it.ProductName, it.BatchCode)
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				it.LineTotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: total a pagar y, si se capturó efectivo, recibido y vuelto.
func totalsRow(r *dto.ReceiptResponse) core.Row {
	money := func(s string) string { return r.Currency + " " + s }

	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}

	labels := []core.Component{
		text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Right: 2,
		}),
	}
	values := []core.Component{
		text.New(money(r.Total.StringFixed(2)), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Right: 1,
		}),
	}
	height := 10.0
	if !r.CashReceived.IsZero() {
		labels = append(labels, label("Recibido:", 8), label("Vuelto:", 13))
		values = append(values, value(money(r.CashReceived.StringFixed(2)), 8), value(money(r.Change.StringFixed(2)), 13))
		height = 20
	}

	return row.New(height).Add(
		col.New(5),
		col.New(4).Add(labels...),
		col.New(3).Add(values...),
	)
}

// footerRow: leyenda de cierre.
func footerRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Gracias por su compra. Conserve este recibo para cambios o reclamos.",
			props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 2}),
		text.New("Documento no fiscal.",
			props.Text{Size: 6.5, Align: align.Center, Color: colorGray, Top: 6}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
