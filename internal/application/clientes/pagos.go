package clientes

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alianzanet/gestion-api/internal/application/dto"
	"github.com/alianzanet/gestion-api/internal/application/ports"
	"github.com/alianzanet/gestion-api/internal/domain"
	"github.com/alianzanet/gestion-api/internal/domain/cartera"
	"github.com/alianzanet/gestion-api/internal/domain/entity"
	"github.com/alianzanet/gestion-api/internal/domain/repository"
)

// adelantosValidos son los únicos paquetes de pago aceptados: mes corriente
// (0 o 1) o pago adelantado de 3 o 6 meses.
var adelantosValidos = map[int]bool{0: true, 1: true, 3: true, 6: true}

// RegistrarPago asienta un pago en una sola transacción: actualiza mes_pagado,
// estampa ultimo_pago con la fecha de hoy, recalcula proximo_pago (día 10 del
// mes siguiente al último mes cubierto) y, si hay adelanto, deja constancia en
// la nota del cliente.
func (uc *UseCase) RegistrarPago(ctx context.Context, id int64, in dto.RegistrarPagoRequest) (*dto.PagoResponse, error) {
	mes := strings.ToUpper(strings.TrimSpace(in.Mes))
	if !cartera.EsMesValido(mes) {
		return nil, domain.ErrInvalidInput
	}
	if !adelantosValidos[in.Adelanto] {
		return nil, domain.ErrInvalidInput
	}

	hoy := uc.ahora()
	var c *entity.Cliente
	var monto decimal.Decimal

	err := uc.txRunner.Run(ctx, func(repo repository.ClienteRepository) error {
		var err error
		c, err = repo.ObtenerPorID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}

		c.MesPagado = cartera.MesPagadoConAdelanto(mes, in.Adelanto)
		c.UltimoPago = cartera.FormatoFechaCO(hoy)
		c.ProximoPago = cartera.FormatoFechaCO(cartera.FechaProximoPago(mes, in.Adelanto, hoy))
		if in.Factura != "" {
			c.Factura = in.Factura
		}

		monto = in.Monto.Decimal
		if monto.IsZero() {
			monto = c.Valor
		}

		if in.Adelanto > 1 {
			c.AgregarNota(fmt.Sprintf("Pago adelantado por %d meses.", in.Adelanto))
		}
		c.UpdatedAt = hoy

		return repo.Guardar(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	// El recibo es de mejor esfuerzo: el pago ya quedó asentado.
	if in.EnviarRecibo && c.Correo != "" {
		cuerpo := map[string]any{
			"nombre":       c.Nombre,
			"correo":       c.Correo,
			"plan":         c.Plan,
			"mes":          mes,
			"adelanto":     in.Adelanto,
			"monto":        cartera.FormatCOP(monto),
			"ultimo_pago":  c.UltimoPago,
			"proximo_pago": c.ProximoPago,
			"factura":      c.Factura,
		}
		if err := uc.notificador.Enviar(ctx, ports.AccionRecibo, cuerpo); err != nil {
			uc.log.Warn().Err(err).Int64("cliente_id", c.ID).Msg("no se pudo enviar el recibo de pago")
		}
	}

	uc.log.Info().
		Int64("cliente_id", c.ID).
		Str("mes", mes).
		Int("adelanto", in.Adelanto).
		Str("monto", monto.String()).
		Msg("pago registrado")

	return &dto.PagoResponse{
		Cliente:     dto.ToClienteResponse(c),
		MesPagado:   c.MesPagado,
		UltimoPago:  c.UltimoPago,
		ProximoPago: c.ProximoPago,
		Monto:       monto,
	}, nil
}
