package clientes

import (
	"context"

	"github.com/alianzanet/gestion-api/internal/domain"
)

// GenerarRecibo produce el PDF del recibo del último pago asentado del
// cliente. Los datos salen del registro mismo (mes pagado, último pago,
// cuota y factura vigentes).
func (uc *UseCase) GenerarRecibo(ctx context.Context, id int64) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, domain.ErrNotFound
	}
	c, err := uc.clienteRepo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	datos := DatosRecibo{
		Mes:       c.MesPagado,
		Monto:     c.Valor,
		FechaPago: c.UltimoPago,
		Factura:   c.Factura,
	}
	return uc.pdfGen.GenerarReciboPDF(ctx, c, datos)
}
