package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de suscripción de un cliente. Los tres primeros son variantes
// activas (el prefijo ACTIVO importa, ver EsActivo).
const (
	EstadoActivo      = "ACTIVO"
	EstadoActivoCable = "ACTIVO CABLE"
	EstadoActivo2     = "ACTIVO 2"
	EstadoSuspendido  = "SUSPENDIDO"
	EstadoInactivo    = "INACTIVO"
)

// Estados enumera los estados válidos de un cliente.
var Estados = []string{EstadoActivo, EstadoActivoCable, EstadoActivo2, EstadoSuspendido, EstadoInactivo}

// Catálogos de servicio de la operación (planes de ancho de banda, nodos de
// red y cuotas mensuales estándar en COP).
var (
	Planes        = []string{"1M", "2M", "3M", "4M", "5M", "10M", "20M", "100M", "250M"}
	Nodos         = []string{"BENJAMIN", "MIRAMONTES", "SANTAFE", "BYZA", "PRIO", "PANAM", "CALLE 16", "URBINA", "RUMICHACA", "FIBRA"}
	OpcionesTVBox = []string{"SI", "NO"}
	ValoresCuota  = []int64{20000, 25000, 30000, 35000, 40000, 50000, 55000, 60000, 90000, 100000, 120000}
)

// Cliente representa un abonado del servicio de internet.
//
// Las fechas de facturación (FechaInstalacion, UltimoPago, ProximoPago) se
// conservan como texto porque los registros migrados de la hoja de cálculo
// traen formato es-CO (d/m/aaaa) y los nuevos se escriben igual; la capa de
// cartera sabe interpretarlos. UltimaNotificacion sí es un timestamp real:
// lo escribe esta aplicación y alimenta el enfriamiento de escalamiento.
type Cliente struct {
	ID                 int64
	Nombre             string
	Direccion          string
	FechaInstalacion   string
	Plan               string
	Valor              decimal.Decimal // cuota mensual en COP
	FechaPago          string          // ventana de pago, ej. "1 al 10"
	MesPagado          string          // uno de cartera.MesesES
	Nodo               string
	TVBox              string // "SI" | "NO"
	Usuario            string // usuario PPPoE
	PIN                string
	Estado             string
	UltimoPago         string
	ProximoPago        string
	Factura            string
	Contacto1          string
	Contacto2          string
	Correo             string
	Whatsapp1          string
	Whatsapp2          string
	Nota               string
	UltimaNotificacion *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// EsEstadoActivo indica si el estado es una variante activa (ACTIVO, ACTIVO CABLE, ACTIVO 2).
func EsEstadoActivo(estado string) bool {
	return strings.HasPrefix(estado, "ACTIVO")
}

// EsActivo indica si el cliente está en una variante activa del servicio.
func (c *Cliente) EsActivo() bool {
	return EsEstadoActivo(c.Estado)
}

// AgregarNota antepone una nota conservando el texto anterior (el campo es
// acumulativo: nunca se reemplaza al registrar un adelanto).
func (c *Cliente) AgregarNota(nota string) {
	if nota == "" {
		return
	}
	if c.Nota == "" {
		c.Nota = nota
		return
	}
	c.Nota = nota + " " + c.Nota
}
