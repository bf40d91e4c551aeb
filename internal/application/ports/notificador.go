package ports

import "context"

// Acciones soportadas por el puente de notificaciones.
const (
	AccionRecordatorio = "sendReminder"
	AccionReporteAdmin = "sendAdminReport"
	AccionSuspension   = "sendSuspension"
	AccionBienvenida   = "sendWelcome"
	AccionReconexion   = "sendReconnection"
	AccionBaja         = "sendDeactivation"
	AccionRecibo       = "sendReceipt"
)

// Notificador define el puerto de salida hacia el servicio de correos.
// Cualquier adaptador (puente HTTP, mock) debe implementar esta interfaz.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type Notificador interface {
	// Enviar despacha una acción con el cuerpo indicado. El cuerpo se
	// serializa como JSON; el adaptador agrega las credenciales.
	Enviar(ctx context.Context, accion string, cuerpo map[string]any) error
}
