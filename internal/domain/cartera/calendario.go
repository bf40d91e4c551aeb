// Package cartera contiene la lógica de cobranza del dominio: normalización
// de valores monetarios, calendario de facturación, clasificación de
// morosidad y construcción de enlaces de cobro por WhatsApp.
//
// Todo el paquete es puro (sin I/O): recibe registros y fechas de referencia
// y devuelve valores; la persistencia y el envío viven en otras capas.
package cartera

import (
	"fmt"
	"strings"
	"time"
)

// MesesES es la enumeración fija de los 12 meses en español, en mayúsculas.
// Los campos mes_pagado y mes_ref siempre se expresan con estos valores
// (sin variación de locale).
var MesesES = []string{
	"ENERO", "FEBRERO", "MARZO", "ABRIL", "MAYO", "JUNIO",
	"JULIO", "AGOSTO", "SEPTIEMBRE", "OCTUBRE", "NOVIEMBRE", "DICIEMBRE",
}

// IndiceMes devuelve la posición 0-11 del mes, o -1 si no pertenece a la enumeración.
func IndiceMes(mes string) int {
	mes = strings.ToUpper(strings.TrimSpace(mes))
	for i, m := range MesesES {
		if m == mes {
			return i
		}
	}
	return -1
}

// EsMesValido indica si el texto es uno de los 12 meses de la enumeración.
func EsMesValido(mes string) bool { return IndiceMes(mes) >= 0 }

// MesActual devuelve el mes de la fecha dada según la enumeración.
func MesActual(hoy time.Time) string {
	return MesesES[int(hoy.Month())-1]
}

// FormatoFechaCO formatea una fecha al estilo es-CO: d/m/aaaa sin ceros a la izquierda.
func FormatoFechaCO(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// MesPagadoConAdelanto devuelve el mes que queda cubierto al pagar `mes` más
// `adelanto-1` meses adicionales. Con adelanto 0 o 1 el mes cubierto es el mismo.
func MesPagadoConAdelanto(mes string, adelanto int) string {
	idx := IndiceMes(mes)
	if idx < 0 {
		return mes
	}
	if adelanto > 1 {
		idx = (idx + adelanto - 1) % 12
	}
	return MesesES[idx]
}

// FechaProximoPago calcula la fecha del próximo pago: el día 10 del mes
// siguiente al último mes cubierto. Si el mes cubierto es DICIEMBRE, el
// próximo pago cae en enero del año siguiente.
func FechaProximoPago(mesPagado string, adelanto int, hoy time.Time) time.Time {
	idx := IndiceMes(mesPagado)
	if idx < 0 {
		idx = int(hoy.Month()) - 1
	}
	if adelanto > 1 {
		idx += adelanto - 1
	}
	// Meses transcurridos más allá de diciembre desplazan el año.
	ano := hoy.Year() + (idx+1)/12
	mesSiguiente := time.Month((idx+1)%12 + 1)
	return time.Date(ano, mesSiguiente, 10, 0, 0, 0, 0, hoy.Location())
}
