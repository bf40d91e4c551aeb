package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cierre es el corte financiero mensual: ingresos, gastos y utilidad del
// periodo. Es un registro de solo-inserción: una vez guardado nunca se
// modifica ni se elimina desde la aplicación.
type Cierre struct {
	ID            int64
	MesRef        string // uno de cartera.MesesES
	AnoRef        int
	Ingresos      decimal.Decimal
	Gastos        decimal.Decimal
	Utilidad      decimal.Decimal
	Notas         string
	FechaRegistro time.Time
}
