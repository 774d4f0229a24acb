// Package pdf genera el reporte de ventas en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + rango de fechas │ fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Venta | Cliente | Ítems | Total              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: N° de ventas / TOTAL VENDIDO                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

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

	"github.com/jhoicas/stock-api/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// SalesReportGenerator implementa report.SalesReportGenerator usando Maroto v2.
type SalesReportGenerator struct {
	company string
}

var _ report.SalesReportGenerator = (*SalesReportGenerator)(nil)

// NewSalesReportGenerator construye el generador; company aparece como autor y encabezado.
func NewSalesReportGenerator(company string) *SalesReportGenerator {
	return &SalesReportGenerator{company: company}
}

// GenerateSalesReport genera el PDF y devuelve sus bytes.
func (g *SalesReportGenerator) GenerateSalesReport(ctx context.Context, r *report.SalesReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas", true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(r.Lines)...)
	if len(r.Lines) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin ventas en el rango seleccionado.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company string, r *report.SalesReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(company, "Inventario"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Período: "+periodLabel(r.From, r.To), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+r.GeneratedAt.Format(dateLayout+" 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Venta", 3, align.Left),
		h("Cliente", 4, align.Left),
		h("Ítems", 1, align.Center),
		h("Total", 2, align.Right),
	)
}

// tableRows: una fila por venta.
func tableRows(lines []report.SalesReportLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(7).Add(
			col.New(2).Add(text.New(l.Date.Format(dateLayout), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(shortID(l.SaleID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(nonEmpty(l.Customer, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(l.Items), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New("$"+formatMoney(l.Total.StringFixed(2)), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

func totalsRow(r *report.SalesReport) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Color: colorPrimary})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Color: colorPrimary})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(label("Ventas: "+strconv.Itoa(len(r.Lines)))),
		col.New(3).Add(value("$"+formatMoney(r.Total.StringFixed(2)))),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func periodLabel(from, to *time.Time) string {
	switch {
	case from == nil && to == nil:
		return "todas las fechas"
	case from == nil:
		return "hasta " + to.Format(dateLayout)
	case to == nil:
		return "desde " + from.Format(dateLayout)
	default:
		return from.Format(dateLayout) + " – " + to.Format(dateLayout)
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatMoney inserta puntos de miles en la parte entera y coma decimal.
// Ej: "25000.50" → "25.000,50"
func formatMoney(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if hasFrac {
		buf = append(buf, ',')
		buf = append(buf, frac...)
	}
	return string(buf)
}
