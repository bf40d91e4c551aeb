package cartera_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/alianzanet/gestion-api/internal/domain/cartera"
)

// ──────────────────────────────────────────────────────────────────────────────
// ParseValor — normalización de moneda de la hoja migrada.
//
// La hoja original mezcla números con textos formateados ("$1.234.000",
// "50.000", "$ 35,000"); la regla es: todo se normaliza a un monto no
// negativo y lo ilegible vale 0 sin levantar error.
// ──────────────────────────────────────────────────────────────────────────────

func TestParseValor_FormatoPesosConPuntos(t *testing.T) {
	got := cartera.ParseValor("$1.234.000")
	assert.True(t, got.Equal(decimal.NewFromInt(1234000)),
		"el formato es-CO con símbolo y puntos debe normalizar a 1234000, obtuvo %s", got)
}

func TestParseValor_TextoIlegibleValeCero(t *testing.T) {
	assert.True(t, cartera.ParseValor("abc").IsZero(),
		"un texto no numérico es condición de calidad de datos: vale 0, no error")
}

func TestParseValor_NumeroPuroPasaIgual(t *testing.T) {
	got := cartera.ParseValor("1234000")
	assert.True(t, got.Equal(decimal.NewFromInt(1234000)))
}

func TestParseValor_Tabla(t *testing.T) {
	casos := []struct {
		nombre string
		in     string
		want   int64
	}{
		{"cuota estándar", "$50.000", 50000},
		{"con espacios", "$ 35 000", 35000},
		{"separador coma", "$35,000", 35000},
		{"vacío", "", 0},
		{"solo símbolo", "$", 0},
		{"negativo se descarta", "-5000", 0},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			got := cartera.ParseValor(c.in)
			assert.True(t, got.Equal(decimal.NewFromInt(c.want)),
				"%q debe valer %d, obtuvo %s", c.in, c.want, got)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// FormatCOP — presentación es-CO con agrupación de miles.
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatCOP_AgrupaMiles(t *testing.T) {
	assert.Equal(t, "$1.234.000", cartera.FormatCOP(decimal.NewFromInt(1234000)))
	assert.Equal(t, "$50.000", cartera.FormatCOP(decimal.NewFromInt(50000)))
	assert.Equal(t, "$0", cartera.FormatCOP(decimal.Zero))
}

func TestFormatCOP_RedondeaDecimales(t *testing.T) {
	// Las cuotas no manejan centavos: se redondea al peso.
	got := cartera.FormatCOP(decimal.NewFromFloat(50000.49))
	assert.Equal(t, "$50.000", got)
}
