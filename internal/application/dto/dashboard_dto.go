package dto

import "github.com/shopspring/decimal"

// DashboardResponse métricas agregadas para el tablero principal.
type DashboardResponse struct {
	TotalClientes     int             `json:"total_clientes"`
	ClientesActivos   int             `json:"clientes_activos"`
	PorEstado         map[string]int  `json:"por_estado"`
	PorNodo           map[string]int  `json:"por_nodo"`
	IngresoProyectado decimal.Decimal `json:"ingreso_proyectado"`
	Morosos           int             `json:"morosos"`
	MesReferencia     string          `json:"mes_referencia"`
}
