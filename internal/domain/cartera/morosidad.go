package cartera

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alianzanet/gestion-api/internal/domain/entity"
)

// Umbrales de la política de cobranza, en días desde el último pago.
const (
	// UmbralListado: con 30 días o menos el cliente no aparece en el listado
	// de morosos (el límite es exclusivo: 30 queda fuera, 31 entra).
	UmbralListado = 30
	// UmbralCritico: por encima de 60 días el moroso es crítico y candidato
	// a escalamiento automático.
	UmbralCritico = 60
	// DiasEnfriamiento: ventana mínima entre notificaciones de escalamiento
	// al mismo cliente.
	DiasEnfriamiento = 30
	// DiasMaximos es el centinela para registros sin fecha de referencia o
	// con fecha ilegible: se tratan como máximamente vencidos para que
	// siempre aparezcan en las vistas de morosidad.
	DiasMaximos = 9999
)

// formatosFecha acepta ISO y el formato textual es-CO con y sin ceros.
var formatosFecha = []string{"2006-01-02", "2/1/2006", "02/01/2006", "2/1/06"}

// parseFecha interpreta una fecha de referencia; ok=false si no es legible.
func parseFecha(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range formatosFecha {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DiasDesde calcula los días enteros transcurridos entre la fecha de
// referencia y hoy: techo de la diferencia absoluta, de modo que un día
// parcial cuenta completo. Una fecha vacía o ilegible devuelve DiasMaximos.
func DiasDesde(fecha string, hoy time.Time) int {
	ref, ok := parseFecha(fecha)
	if !ok {
		return DiasMaximos
	}
	horas := hoy.Sub(ref).Hours()
	if horas < 0 {
		horas = -horas
	}
	return int(math.Ceil(horas / 24))
}

// EnEnfriamiento indica si el cliente fue notificado hace menos de
// DiasEnfriamiento días. Un cliente notificado hoy queda excluido del
// escalamiento los 29 días siguientes y vuelve a ser elegible el día 30,
// independientemente de si el pago se registró o no.
func EnEnfriamiento(ultimaNotificacion *time.Time, hoy time.Time) bool {
	if ultimaNotificacion == nil {
		return false
	}
	return hoy.Sub(*ultimaNotificacion) < time.Duration(DiasEnfriamiento)*24*time.Hour
}

// Morosidad es el resultado de clasificar a un cliente contra un mes de referencia.
type Morosidad struct {
	Cliente   *entity.Cliente
	DiasMora  int             // días desde el último pago (DiasMaximos si no hay fecha)
	Deuda     decimal.Decimal // cuota mensual normalizada
	Critico   bool            // DiasMora > UmbralCritico
	Escalable bool            // crítico y fuera de la ventana de enfriamiento
}

// Clasificar evalúa a un cliente contra el mes de referencia. Devuelve la
// clasificación y true solo si el cliente es moroso: su mes pagado difiere
// del mes de referencia y lleva más de UmbralListado días sin pagar.
func Clasificar(c *entity.Cliente, mesRef string, hoy time.Time) (Morosidad, bool) {
	if strings.EqualFold(strings.TrimSpace(c.MesPagado), strings.TrimSpace(mesRef)) {
		return Morosidad{}, false
	}
	dias := DiasDesde(c.UltimoPago, hoy)
	if dias <= UmbralListado {
		return Morosidad{}, false
	}
	m := Morosidad{
		Cliente:  c,
		DiasMora: dias,
		Deuda:    c.Valor,
		Critico:  dias > UmbralCritico,
	}
	m.Escalable = m.Critico && !EnEnfriamiento(c.UltimaNotificacion, hoy)
	return m, true
}

// ClasificarTodos aplica Clasificar sobre una lista y devuelve solo los morosos.
func ClasificarTodos(clientes []*entity.Cliente, mesRef string, hoy time.Time) []Morosidad {
	var morosos []Morosidad
	for _, c := range clientes {
		if m, ok := Clasificar(c, mesRef, hoy); ok {
			morosos = append(morosos, m)
		}
	}
	return morosos
}

// DeudaTotal suma la deuda normalizada de un conjunto de morosos.
func DeudaTotal(morosos []Morosidad) decimal.Decimal {
	total := decimal.Zero
	for _, m := range morosos {
		total = total.Add(m.Deuda)
	}
	return total
}
