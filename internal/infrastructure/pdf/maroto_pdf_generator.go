// Package pdf implementa el reporte de stock en PDF para el personal.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Karni Fashions + título  │  Fecha de generación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Item | Serie | Categoría | Jaipur | Kolkata | Total  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: suma por bodega y total general                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
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
	"github.com/shopspring/decimal"

	"github.com/karnifashions/catalog-api/internal/application/report"
	"github.com/karnifashions/catalog-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 128, Green: 0, Blue: 64}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorZero    = &props.Color{Red: 190, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.StockReportGenerator = (*MarotoStockReport)(nil)

// MarotoStockReport implementa report.StockReportGenerator usando Maroto v2.
type MarotoStockReport struct {
	company string
}

// NewMarotoStockReport construye el generador; company aparece en el encabezado.
func NewMarotoStockReport(company string) *MarotoStockReport {
	return &MarotoStockReport{company: nonEmpty(company, "Karni Fashions")}
}

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoStockReport) GenerateStockReport(ctx context.Context, rows []entity.StockRow, generatedAt time.Time) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de stock", true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, generatedAt, len(rows)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company string, at time.Time, count int) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Resumen de stock por bodega", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("%d productos", count), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
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
		h("Item", 3, align.Left),
		h("Serie", 2, align.Left),
		h("Categoría", 2, align.Left),
		h(entity.LocationJaipur, 2, align.Right),
		h(entity.LocationKolkata, 2, align.Right),
		h("Total", 1, align.Right),
	)
}

// tableDetailRows: una fila por producto; el total en cero va en rojo.
func tableDetailRows(rows []entity.StockRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		totalStyle := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Style: fontstyle.Bold}
		if !r.TotalQty.IsPositive() {
			totalStyle.Color = colorZero
		}
		result = append(result, row.New(6).Add(
			col.New(3).Add(text.New(r.Item, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(r.SeriesName, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(r.CategoryName, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatQty(r.JaipurQty), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatQty(r.KolkataQty), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(formatQty(r.TotalQty), totalStyle)),
		))
	}
	return result
}

func totalsRow(rows []entity.StockRow) core.Row {
	var jaipur, kolkata decimal.Decimal
	for _, r := range rows {
		jaipur = jaipur.Add(r.JaipurQty)
		kolkata = kolkata.Add(r.KolkataQty)
	}
	bold := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a, Color: colorPrimary, Top: 1, Right: 1,
		})
	}
	return row.New(8).Add(
		col.New(7).Add(bold("TOTAL GENERAL", align.Right)),
		col.New(2).Add(bold(formatQty(jaipur), align.Right)),
		col.New(2).Add(bold(formatQty(kolkata), align.Right)),
		col.New(1).Add(bold(formatQty(jaipur.Add(kolkata)), align.Right)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQty cantidades enteras sin decimales; fraccionarias con dos.
func formatQty(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return formatThousands(d.StringFixed(0))
	}
	return d.StringFixed(2)
}

// formatThousands inserta comas de miles en un entero.
// Ej: "25000" → "25,000", "-1000" → "-1,000"
func formatThousands(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
