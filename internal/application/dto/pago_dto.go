package dto

import "github.com/shopspring/decimal"

// RegistrarPagoRequest body para POST /api/clientes/:id/pagos.
// Adelanto: 0 o 1 registran el mes en curso; 3 o 6 cubren meses por adelantado.
type RegistrarPagoRequest struct {
	Mes          string `json:"mes" validate:"required"`
	Adelanto     int    `json:"adelanto" validate:"oneof=0 1 3 6"`
	Monto        Monto  `json:"monto"`
	Factura      string `json:"factura"`
	EnviarRecibo bool   `json:"enviar_recibo"`
}

// PagoResponse resultado del registro de un pago.
type PagoResponse struct {
	Cliente     ClienteResponse `json:"cliente"`
	MesPagado   string          `json:"mes_pagado"`
	UltimoPago  string          `json:"ultimo_pago"`
	ProximoPago string          `json:"proximo_pago"`
	Monto       decimal.Decimal `json:"monto"`
	ReciboURL   string          `json:"recibo_url,omitempty"`
}
