package dto

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alianzanet/gestion-api/internal/domain/cartera"
	"github.com/alianzanet/gestion-api/internal/domain/entity"
)

// Monto acepta en JSON tanto números como strings con formato de moneda
// ("$1.234.000", "50.000"). Valores no numéricos o negativos se normalizan a cero.
type Monto struct {
	decimal.Decimal
}

// UnmarshalJSON normaliza el valor recibido a pesos enteros.
func (m *Monto) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.Decimal = cartera.ParseValor(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		m.Decimal = decimal.Zero
		return nil
	}
	if n < 0 {
		m.Decimal = decimal.Zero
		return nil
	}
	m.Decimal = decimal.NewFromFloat(n)
	return nil
}

// MarshalJSON emite el monto como número entero.
func (m Monto) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.Decimal.Round(0).IntPart(), 10)), nil
}

// CrearClienteRequest body para POST /api/clientes.
// Valor admite string con formato de moneda o número.
type CrearClienteRequest struct {
	Nombre           string `json:"nombre" validate:"required,min=1,max=200"`
	Direccion        string `json:"direccion"`
	Plan             string `json:"plan"`
	Valor            Monto  `json:"valor"`
	FechaPago        string `json:"fecha_pago"`
	Nodo             string `json:"nodo"`
	TVBox            string `json:"tvbox"`
	Usuario          string `json:"usuario"`
	PIN              string `json:"pin"`
	Contacto1        string `json:"contacto1"`
	Contacto2        string `json:"contacto2"`
	Correo           string `json:"correo"`
	Whatsapp1        string `json:"whatsapp1"`
	Whatsapp2        string `json:"whatsapp2"`
	Nota             string `json:"nota"`
	EnviarBienvenida bool   `json:"enviar_bienvenida"`
}

// ActualizarClienteRequest body para PUT /api/clientes/:id.
// Los campos de texto van completos (no es un PATCH parcial).
type ActualizarClienteRequest struct {
	Nombre           string `json:"nombre" validate:"required,min=1,max=200"`
	Direccion        string `json:"direccion"`
	FechaInstalacion string `json:"fecha_instalacion"`
	Plan             string `json:"plan"`
	Valor            Monto  `json:"valor"`
	FechaPago        string `json:"fecha_pago"`
	MesPagado        string `json:"mes_pagado"`
	Nodo             string `json:"nodo"`
	TVBox            string `json:"tvbox"`
	Usuario          string `json:"usuario"`
	PIN              string `json:"pin"`
	Estado           string `json:"estado"`
	UltimoPago       string `json:"ultimo_pago"`
	ProximoPago      string `json:"proximo_pago"`
	Factura          string `json:"factura"`
	Contacto1        string `json:"contacto1"`
	Contacto2        string `json:"contacto2"`
	Correo           string `json:"correo"`
	Whatsapp1        string `json:"whatsapp1"`
	Whatsapp2        string `json:"whatsapp2"`
	Nota             string `json:"nota"`
}

// ClienteResponse cliente en respuestas.
type ClienteResponse struct {
	ID               int64           `json:"id"`
	Nombre           string          `json:"nombre"`
	Direccion        string          `json:"direccion"`
	FechaInstalacion string          `json:"fecha_instalacion"`
	Plan             string          `json:"plan"`
	Valor            decimal.Decimal `json:"valor"`
	FechaPago        string          `json:"fecha_pago"`
	MesPagado        string          `json:"mes_pagado"`
	Nodo             string          `json:"nodo"`
	TVBox            string          `json:"tvbox"`
	Usuario          string          `json:"usuario"`
	PIN              string          `json:"pin"`
	Estado           string          `json:"estado"`
	UltimoPago       string          `json:"ultimo_pago"`
	ProximoPago      string          `json:"proximo_pago"`
	Factura          string          `json:"factura"`
	Contacto1        string          `json:"contacto1"`
	Contacto2        string          `json:"contacto2"`
	Correo           string          `json:"correo"`
	Whatsapp1        string          `json:"whatsapp1"`
	Whatsapp2        string          `json:"whatsapp2"`
	Nota             string          `json:"nota"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToClienteResponse mapea la entidad a su representación HTTP.
func ToClienteResponse(c *entity.Cliente) ClienteResponse {
	return ClienteResponse{
		ID:               c.ID,
		Nombre:           c.Nombre,
		Direccion:        c.Direccion,
		FechaInstalacion: c.FechaInstalacion,
		Plan:             c.Plan,
		Valor:            c.Valor,
		FechaPago:        c.FechaPago,
		MesPagado:        c.MesPagado,
		Nodo:             c.Nodo,
		TVBox:            c.TVBox,
		Usuario:          c.Usuario,
		PIN:              c.PIN,
		Estado:           c.Estado,
		UltimoPago:       c.UltimoPago,
		ProximoPago:      c.ProximoPago,
		Factura:          c.Factura,
		Contacto1:        c.Contacto1,
		Contacto2:        c.Contacto2,
		Correo:           c.Correo,
		Whatsapp1:        c.Whatsapp1,
		Whatsapp2:        c.Whatsapp2,
		Nota:             c.Nota,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// ToClienteResponses mapea una lista de entidades.
func ToClienteResponses(cs []*entity.Cliente) []ClienteResponse {
	out := make([]ClienteResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToClienteResponse(c))
	}
	return out
}

// CatalogosResponse catálogos de captura para el formulario de clientes.
type CatalogosResponse struct {
	Planes  []string `json:"planes"`
	Nodos   []string `json:"nodos"`
	TVBox   []string `json:"tvbox"`
	Estados []string `json:"estados"`
	Cuotas  []int64  `json:"cuotas"`
	Meses   []string `json:"meses"`
}
