package dto

import (
	"github.com/shopspring/decimal"

	"github.com/alianzanet/gestion-api/internal/domain/cartera"
)

// MorosoResponse un cliente moroso en el listado de cartera.
type MorosoResponse struct {
	Cliente      ClienteResponse `json:"cliente"`
	DiasMora     int             `json:"dias_mora"`
	Deuda        decimal.Decimal `json:"deuda"`
	Critico      bool            `json:"critico"`
	WhatsAppLink string          `json:"whatsapp_link,omitempty"`
}

// MorososResponse listado de morosos para un mes de referencia.
type MorososResponse struct {
	Mes        string           `json:"mes"`
	Total      int              `json:"total"`
	DeudaTotal decimal.Decimal  `json:"deuda_total"`
	Morosos    []MorosoResponse `json:"morosos"`
}

// ToMorosoResponse mapea la clasificación de cartera a su representación HTTP.
func ToMorosoResponse(m cartera.Morosidad) MorosoResponse {
	return MorosoResponse{
		Cliente:      ToClienteResponse(m.Cliente),
		DiasMora:     m.DiasMora,
		Deuda:        m.Deuda,
		Critico:      m.Critico,
		WhatsAppLink: cartera.MakeWhatsAppLink(m.Cliente.Whatsapp1, m.Cliente.Nombre),
	}
}

// EnviarRecordatoriosRequest body para POST /api/cobranza/recordatorios.
// Confirmado debe venir en true; de lo contrario el despacho se rechaza.
// ClienteIDs vacío significa todos los morosos del mes.
// Forzar ignora el período de enfriamiento de 30 días.
type EnviarRecordatoriosRequest struct {
	Mes        string  `json:"mes" validate:"required"`
	Confirmado bool    `json:"confirmado"`
	ClienteIDs []int64 `json:"cliente_ids,omitempty"`
	Forzar     bool    `json:"forzar,omitempty"`
}

// EnviarReporteRequest body para POST /api/cobranza/reporte.
type EnviarReporteRequest struct {
	Mes        string `json:"mes" validate:"required"`
	Confirmado bool   `json:"confirmado"`
}

// ResultadoEnvio resultado por destinatario de un despacho masivo.
type ResultadoEnvio struct {
	ClienteID int64  `json:"cliente_id"`
	Nombre    string `json:"nombre"`
	Enviado   bool   `json:"enviado"`
	Omitido   bool   `json:"omitido,omitempty"` // en enfriamiento o sin correo
	Motivo    string `json:"motivo,omitempty"`
}

// ResultadoDispatch resumen de un despacho masivo.
type ResultadoDispatch struct {
	Mes      string           `json:"mes"`
	Total    int              `json:"total"`
	Enviados int              `json:"enviados"`
	Omitidos int              `json:"omitidos"`
	Fallidos int              `json:"fallidos"`
	Detalle  []ResultadoEnvio `json:"detalle"`
}
