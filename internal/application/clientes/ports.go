package clientes

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/alianzanet/gestion-api/internal/domain/entity"
	"github.com/alianzanet/gestion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con el repositorio
// de clientes ligado a ella. Si fn retorna error, se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.ClienteRepository) error) error
}

// DatosRecibo es la información del pago que va en el recibo.
type DatosRecibo struct {
	Mes       string
	Monto     decimal.Decimal
	FechaPago string
	Factura   string
}

// ReciboPDFGenerator define el puerto de salida para la representación
// gráfica del recibo de pago.
type ReciboPDFGenerator interface {
	GenerarReciboPDF(ctx context.Context, c *entity.Cliente, datos DatosRecibo) ([]byte, error)
}
