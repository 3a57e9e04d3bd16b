// Package pdf genera el comprobante de venta imprimible (A5).
//
// Layout:
//
//	┌───────────────────────────────────────────┐
//	│  Local            │  N° Venta + Fecha      │
//	│  ───────────────────────────────────────  │
//	│  Cliente / Vendedor / Pago                 │
//	│  Cant | Producto | P.Unit | Total          │
//	│  TOTAL                                     │
//	│  Leyenda                                   │
//	└───────────────────────────────────────────┘
//
// El comprobante nunca incluye costo ni utilidad.
package pdf

import (
	"context"
	"fmt"
	"strconv"
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

	"github.com/jhoicas/Phoneshop-api/internal/application/ports"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ ports.ReceiptRenderer = (*ReceiptRenderer)(nil)

// ReceiptRenderer implementa ports.ReceiptRenderer con Maroto v2.
type ReceiptRenderer struct {
	shopName string
	loc      *time.Location
}

// NewReceiptRenderer construye el renderer. loc nil = UTC.
func NewReceiptRenderer(shopName string, loc *time.Location) *ReceiptRenderer {
	if loc == nil {
		loc = time.UTC
	}
	return &ReceiptRenderer{shopName: shopName, loc: loc}
}

// RenderSale genera el PDF de la venta y devuelve sus bytes.
func (g *ReceiptRenderer) RenderSale(_ context.Context, sale *entity.Sale, seller *entity.Actor) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante "+sale.Number, true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(sale, seller))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow(), itemRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale))
	m.AddRows(line.NewRow(4))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Gracias por su compra. Conserve este comprobante para garantía.", props.Text{
			Size: 7, Align: align.Center, Color: colorGray,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptRenderer) headerRow(sale *entity.Sale) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.shopName, "Phoneshop"), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(sale.Number, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
			text.New(sale.CreatedAt.In(g.loc).Format("02/01/2006 15:04"), props.Text{
				Size: 7, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func partiesRow(sale *entity.Sale, seller *entity.Actor) core.Row {
	sellerName := "—"
	if seller != nil {
		sellerName = seller.Name
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Cliente: "+nonEmpty(sale.CustomerName, "Consumidor final"), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1,
			}),
			text.New(fmt.Sprintf("Atendido por: %s   |   Pago: %s", sellerName, paymentLabel(sale.PaymentMethod)),
				props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func itemRow(sale *entity.Sale) core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New(strconv.Itoa(sale.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(5).Add(text.New(sale.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(money(sale.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New(money(sale.TotalPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func totalRow(sale *entity.Sale) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(money(sale.TotalPrice), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func paymentLabel(method string) string {
	switch method {
	case entity.PaymentCash:
		return "Efectivo"
	case entity.PaymentCard:
		return "Tarjeta"
	case entity.PaymentTransfer:
		return "Transferencia"
	}
	return method
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea con separador de miles y dos decimales: 1250000.5 -> "$1.250.000,50".
func money(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	out := "$" + groupThousands(intPart) + "," + frac
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
func groupThousands(s string) string {
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
