package cartera

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ParseValor normaliza un valor monetario que puede venir como número o como
// texto con formato es-CO ("$1.234.000", "50.000", "$ 35,000"). Quita el
// símbolo de pesos, separadores de miles y espacios. Un valor que no se puede
// interpretar, o negativo, vale 0: es una condición de calidad de datos de la
// hoja migrada, no un error.
func ParseValor(v string) decimal.Decimal {
	limpio := strings.NewReplacer("$", "", ".", "", ",", "", " ", "").Replace(v)
	if limpio == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(limpio)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// impresoraES agrupa miles con punto, como es-CO.
var impresoraES = message.NewPrinter(language.Spanish)

// FormatCOP formatea un monto en pesos colombianos sin decimales: "$1.234.000".
// El separador de miles lo aporta el locale español de x/text.
func FormatCOP(monto decimal.Decimal) string {
	entero := monto.Round(0).IntPart()
	return impresoraES.Sprintf("$%d", entero)
}
