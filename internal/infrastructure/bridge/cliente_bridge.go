// Package bridge implementa el puerto Notificador contra el puente de
// correos: un servicio HTTP externo que recibe la acción por query string y
// el cuerpo como JSON, y redacta y envía el correo correspondiente.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/alianzanet/gestion-api/internal/application/ports"
	"github.com/alianzanet/gestion-api/pkg/logger"
)

// Verificar en tiempo de compilación que Cliente implementa Notificador.
var _ ports.Notificador = (*Cliente)(nil)

// Cliente adaptador HTTP del puente de notificaciones.
// Usa net/http de la librería estándar; el protocolo es un POST simple.
type Cliente struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logger.Logger
}

// New construye el adaptador. timeout acota cada envío individual.
func New(baseURL, token string, timeout time.Duration, log *logger.Logger) *Cliente {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Cliente{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Componente("bridge"),
	}
}

// respuesta del puente: {"status":"ok"} o {"status":"error","message":"..."}.
type respuestaPuente struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Enviar despacha la acción al puente. La acción y el token viajan en la
// query string y el token se repite dentro del cuerpo JSON (el puente valida
// ambos).
func (c *Cliente) Enviar(ctx context.Context, accion string, cuerpo map[string]any) error {
	if c.baseURL == "" {
		return fmt.Errorf("bridge: BRIDGE_URL no configurado")
	}

	payload := make(map[string]any, len(cuerpo)+1)
	for k, v := range cuerpo {
		payload[k] = v
	}
	payload["token"] = c.token

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("bridge: serializar cuerpo: %w", err)
	}

	endpoint := fmt.Sprintf("%s?action=%s&token=%s", c.baseURL, url.QueryEscape(accion), url.QueryEscape(c.token))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("bridge: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("bridge: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("bridge: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("bridge: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bridge: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var r respuestaPuente
	if err := json.Unmarshal(rawBody, &r); err == nil && r.Status == "error" {
		return fmt.Errorf("bridge: %s", r.Message)
	}

	c.log.Debug().Str("accion", accion).Msg("notificación despachada")
	return nil
}

// Nulo es la implementación sin-operación que se usa cuando el puente no está
// configurado: registra la acción y la descarta.
type Nulo struct {
	log *logger.Logger
}

// NewNulo construye el notificador nulo.
func NewNulo(log *logger.Logger) *Nulo {
	return &Nulo{log: log.Componente("bridge")}
}

var _ ports.Notificador = (*Nulo)(nil)

// Enviar descarta la notificación dejando rastro en el log.
func (n *Nulo) Enviar(ctx context.Context, accion string, cuerpo map[string]any) error {
	n.log.Info().Str("accion", accion).Msg("puente deshabilitado: notificación descartada")
	return nil
}
