package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alianzanet/gestion-api/internal/application/auth"
	"github.com/alianzanet/gestion-api/internal/application/clientes"
	"github.com/alianzanet/gestion-api/internal/application/cobranza"
	"github.com/alianzanet/gestion-api/internal/application/finanzas"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClienteUC   *clientes.UseCase
	CobranzaUC  *cobranza.UseCase
	CierreUC    *finanzas.CierreUseCase
	DashboardUC *finanzas.DashboardUseCase
	AuthUC      *auth.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, registro solo para admin
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole("admin"), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Clientes (protegido)
	clientesGroup := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientesGroup.Get("/catalogos", clienteHandler.Catalogos)
	clientesGroup.Get("/", clienteHandler.List)
	clientesGroup.Post("/", clienteHandler.Create)
	clientesGroup.Get("/:id", clienteHandler.GetByID)
	clientesGroup.Put("/:id", clienteHandler.Update)
	clientesGroup.Delete("/:id", clienteHandler.Delete)
	clientesGroup.Post("/:id/pagos", clienteHandler.RegistrarPago)
	clientesGroup.Get("/:id/recibo", clienteHandler.Recibo)

	// Cobranza (protegido)
	cobranzaHandler := NewCobranzaHandler(deps.CobranzaUC)
	protected.Get("/morosos", cobranzaHandler.Morosos)
	cobranzaGroup := protected.Group("/cobranza")
	cobranzaGroup.Post("/recordatorios", cobranzaHandler.Recordatorios)
	cobranzaGroup.Post("/reporte", cobranzaHandler.Reporte)

	// Finanzas (protegido)
	finanzasHandler := NewFinanzasHandler(deps.CierreUC, deps.DashboardUC)
	cierres := protected.Group("/finanzas/cierres")
	cierres.Post("/", finanzasHandler.CrearCierre)
	cierres.Get("/", finanzasHandler.Historial)
	protected.Get("/dashboard", finanzasHandler.Dashboard)
}
