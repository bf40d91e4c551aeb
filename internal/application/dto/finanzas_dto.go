package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alianzanet/gestion-api/internal/domain/entity"
)

// CrearCierreRequest body para POST /api/cierres.
// Si Ingresos viene en cero se calcula con la suma de cuotas de clientes activos.
type CrearCierreRequest struct {
	Mes      string `json:"mes" validate:"required"`
	Ano      int    `json:"ano" validate:"required,min=2000"`
	Ingresos Monto  `json:"ingresos"`
	Gastos   Monto  `json:"gastos"`
	Notas    string `json:"notas"`
}

// CierreResponse un cierre mensual en respuestas.
type CierreResponse struct {
	ID            int64           `json:"id"`
	Mes           string          `json:"mes"`
	Ano           int             `json:"ano"`
	Ingresos      decimal.Decimal `json:"ingresos"`
	Gastos        decimal.Decimal `json:"gastos"`
	Utilidad      decimal.Decimal `json:"utilidad"`
	Notas         string          `json:"notas"`
	FechaRegistro time.Time       `json:"fecha_registro"`
}

// ToCierreResponse mapea la entidad a su representación HTTP.
func ToCierreResponse(c *entity.Cierre) CierreResponse {
	return CierreResponse{
		ID:            c.ID,
		Mes:           c.MesRef,
		Ano:           c.AnoRef,
		Ingresos:      c.Ingresos,
		Gastos:        c.Gastos,
		Utilidad:      c.Utilidad,
		Notas:         c.Notas,
		FechaRegistro: c.FechaRegistro,
	}
}
