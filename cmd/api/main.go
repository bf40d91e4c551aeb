package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/alianzanet/gestion-api/internal/application/auth"
	"github.com/alianzanet/gestion-api/internal/application/clientes"
	"github.com/alianzanet/gestion-api/internal/application/cobranza"
	"github.com/alianzanet/gestion-api/internal/application/finanzas"
	"github.com/alianzanet/gestion-api/internal/application/ports"
	"github.com/alianzanet/gestion-api/internal/infrastructure/bridge"
	infrapdf "github.com/alianzanet/gestion-api/internal/infrastructure/pdf"
	"github.com/alianzanet/gestion-api/internal/infrastructure/postgres"
	httpRouter "github.com/alianzanet/gestion-api/internal/interfaces/http"
	"github.com/alianzanet/gestion-api/internal/scheduler"
	"github.com/alianzanet/gestion-api/pkg/config"
	"github.com/alianzanet/gestion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	clienteRepo := postgres.NewClienteRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	cierreRepo := postgres.NewCierreRepository(pool)
	metricasRepo := postgres.NewMetricasRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Puente de notificaciones (correo / WhatsApp). Sin BRIDGE_URL los envíos
	// quedan deshabilitados y se registran en el log.
	var notificador ports.Notificador
	if cfg.Bridge.URL != "" {
		notificador = bridge.New(cfg.Bridge.URL, cfg.Bridge.Token,
			time.Duration(cfg.Bridge.TimeoutSeconds)*time.Second, log)
	} else {
		log.Warn().Msg("BRIDGE_URL no configurado, las notificaciones quedan deshabilitadas")
		notificador = bridge.NewNulo(log)
	}

	pdfGenerator := infrapdf.NewMarotoReciboGenerator(cfg.Empresa)

	clienteUC := clientes.NewUseCase(clienteRepo, txRunner, notificador, pdfGenerator, log)
	cobranzaUC := cobranza.NewUseCase(clienteRepo, notificador, log, cfg.Cobranza.Concurrencia)
	cierreUC := finanzas.NewCierreUseCase(cierreRepo, metricasRepo, log)
	dashboardUC := finanzas.NewDashboardUseCase(metricasRepo)
	authUC := auth.NewUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Escalamiento automático de críticos (cron, opcional)
	escalamiento := scheduler.NewEscalamientoService(cobranzaUC, cfg.Cobranza, log)
	schedCtx, schedCancel := context.WithCancel(ctx)
	defer schedCancel()
	if err := escalamiento.Start(schedCtx); err != nil {
		log.Fatal().Err(err).Msg("iniciar el escalamiento programado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AlianzaNet Gestión API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClienteUC:   clienteUC,
		CobranzaUC:  cobranzaUC,
		CierreUC:    cierreUC,
		DashboardUC: dashboardUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	schedCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
