package cartera_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alianzanet/gestion-api/internal/domain/cartera"
)

// Reglas de prefijo de la zona de operación: celulares colombianos (10
// dígitos, inician en 3) → 57; ecuatorianos (09xxxxxxxx o 9xxxxxxxx) → 593.

func TestMakeWhatsAppLink_PrefijoColombia(t *testing.T) {
	link := cartera.MakeWhatsAppLink("3117894455", "Maria Urbina")
	require.NotEmpty(t, link)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/573117894455?text="),
		"celular colombiano de 10 dígitos debe llevar prefijo 57: %s", link)
}

func TestMakeWhatsAppLink_PrefijoEcuadorConCero(t *testing.T) {
	link := cartera.MakeWhatsAppLink("0991234567", "Juan")
	assert.True(t, strings.HasPrefix(link, "https://wa.me/593991234567?text="),
		"número ecuatoriano 09x pierde el cero y lleva 593: %s", link)
}

func TestMakeWhatsAppLink_PrefijoEcuadorNueveDigitos(t *testing.T) {
	link := cartera.MakeWhatsAppLink("991234567", "Juan")
	assert.True(t, strings.HasPrefix(link, "https://wa.me/593991234567?text="))
}

func TestMakeWhatsAppLink_LimpiaFormato(t *testing.T) {
	// Los contactos migrados traen guiones, espacios y paréntesis.
	link := cartera.MakeWhatsAppLink("311-789-4455", "Maria")
	assert.Contains(t, link, "wa.me/573117894455")
}

func TestMakeWhatsAppLink_SinNumeroDevuelveVacio(t *testing.T) {
	assert.Empty(t, cartera.MakeWhatsAppLink("", "Maria"))
	assert.Empty(t, cartera.MakeWhatsAppLink("sin teléfono", "Maria"))
}

func TestMakeWhatsAppLink_NombreEnMayusculas(t *testing.T) {
	link := cartera.MakeWhatsAppLink("3117894455", "maria urbina")
	assert.Contains(t, link, "MARIA+URBINA",
		"el mensaje saluda con el nombre en mayúsculas, URL-escapado")
}
