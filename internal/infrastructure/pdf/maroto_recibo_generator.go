// Package pdf implementa la representación gráfica del recibo de pago con
// Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del proveedor + NIT  │  RECIBO + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Dirección / Tel / Email                         │
//	│  ABONADO: Nombre + dirección + nodo                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Mes | Valor                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL PAGADO + próximo pago                                │
//	│  QR de verificación                                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotocfg "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appclientes "github.com/alianzanet/gestion-api/internal/application/clientes"
	"github.com/alianzanet/gestion-api/internal/domain/cartera"
	"github.com/alianzanet/gestion-api/internal/domain/entity"
	"github.com/alianzanet/gestion-api/pkg/config"
)

var (
	colorPrimario = &props.Color{Red: 0, Green: 96, Blue: 57}
	colorGris     = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appclientes.ReciboPDFGenerator = (*MarotoReciboGenerator)(nil)

// MarotoReciboGenerator implementa ReciboPDFGenerator usando Maroto v2.
type MarotoReciboGenerator struct {
	empresa config.EmpresaConfig
}

// NewMarotoReciboGenerator construye el generador con la identidad del proveedor.
func NewMarotoReciboGenerator(empresa config.EmpresaConfig) *MarotoReciboGenerator {
	return &MarotoReciboGenerator{empresa: empresa}
}

// GenerarReciboPDF genera el recibo y devuelve sus bytes.
func (g *MarotoReciboGenerator) GenerarReciboPDF(_ context.Context, c *entity.Cliente, datos appclientes.DatosRecibo) ([]byte, error) {
	cfg := marotocfg.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de pago", true).
		WithAuthor(g.empresa.Nombre, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(datos))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.5}))
	m.AddRows(g.proveedorRow())
	m.AddRows(abonadoRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.3}))

	m.AddRows(tablaHeaderRow())
	m.AddRows(conceptoRow(c, datos))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.3}))
	m.AddRows(totalRow(c, datos))

	m.AddRows(line.NewRow(3))
	m.AddRows(qrRow(c, datos))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: proveedor (izq) y número de recibo + fecha (der).
func (g *MarotoReciboGenerator) headerRow(datos appclientes.DatosRecibo) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.empresa.Nombre, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimario, Top: 1,
			}),
			text.New("NIT: "+noVacio(g.empresa.NIT, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGris,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimario, Top: 1,
			}),
			text.New(noVacio(datos.Factura, "Sin factura"), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 8,
			}),
			text.New("Fecha: "+noVacio(datos.FechaPago, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGris,
			}),
		),
	)
}

// proveedorRow: datos de contacto del proveedor.
func (g *MarotoReciboGenerator) proveedorRow() core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PROVEEDOR DEL SERVICIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimario, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				noVacio(g.empresa.Direccion, "—"),
				noVacio(g.empresa.Telefono, "—"),
				noVacio(g.empresa.Correo, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGris}),
		),
	)
}

// abonadoRow: datos del cliente que paga.
func abonadoRow(c *entity.Cliente) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ABONADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimario, Top: 1,
			}),
			text.New(c.Nombre, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Nodo: %s   |   Plan: %s",
				noVacio(c.Direccion, "—"),
				noVacio(c.Nodo, "—"),
				noVacio(c.Plan, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGris}),
		),
	)
}

// tablaHeaderRow: cabecera de la tabla de conceptos.
func tablaHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimario, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Concepto", 6, align.Left),
		h("Mes cubierto", 3, align.Center),
		h("Valor", 3, align.Right),
	)
}

// conceptoRow: la única línea del recibo (la cuota mensual del servicio).
func conceptoRow(c *entity.Cliente, datos appclientes.DatosRecibo) core.Row {
	concepto := "Servicio de internet " + noVacio(c.Plan, "")
	return row.New(7).Add(
		col.New(6).Add(text.New(concepto, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(3).Add(text.New(datos.Mes, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(3).Add(text.New(cartera.FormatCOP(datos.Monto), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// totalRow: total pagado y fecha del próximo pago.
func totalRow(c *entity.Cliente, datos appclientes.DatosRecibo) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("Próximo pago: "+noVacio(c.ProximoPago, "—"), props.Text{
				Size: 9, Top: 4, Color: colorGris,
			}),
		),
		col.New(3).Add(
			text.New("TOTAL PAGADO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimario, Top: 4, Right: 2,
			}),
		),
		col.New(3).Add(
			text.New(cartera.FormatCOP(datos.Monto), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimario, Top: 4, Right: 1,
			}),
		),
	)
}

// qrRow: QR con los datos del pago para verificación rápida.
func qrRow(c *entity.Cliente, datos appclientes.DatosRecibo) core.Row {
	contenido := fmt.Sprintf("%d|%s|%s|%s", c.ID, datos.Mes, datos.Monto.Round(0).String(), datos.FechaPago)
	return row.New(28).Add(
		col.New(3).Add(code.NewQr(contenido, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Verificación del pago", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorGris, Top: 2,
			}),
			text.New("Este recibo fue generado por el sistema de gestión del proveedor y no requiere firma.", props.Text{
				Size: 7, Top: 8, Color: colorGris,
			}),
		),
	)
}

func noVacio(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
