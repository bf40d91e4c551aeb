// Package scheduler agenda el escalamiento automático de morosos críticos.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/alianzanet/gestion-api/internal/application/cobranza"
	"github.com/alianzanet/gestion-api/pkg/config"
	"github.com/alianzanet/gestion-api/pkg/logger"
)

// EscalamientoService ejecuta diariamente el escalamiento de morosos críticos
// (más de 60 días) respetando el enfriamiento de 30 días entre notificaciones.
type EscalamientoService struct {
	scheduler  *gocron.Scheduler
	cfg        config.CobranzaConfig
	cobranzaUC *cobranza.UseCase
	log        *logger.Logger

	mu            sync.Mutex
	enEjecucion   bool
	ultimaCorrida time.Time
}

// NewEscalamientoService construye el servicio de escalamiento.
func NewEscalamientoService(cobranzaUC *cobranza.UseCase, cfg config.CobranzaConfig, log *logger.Logger) *EscalamientoService {
	return &EscalamientoService{
		scheduler:  gocron.NewScheduler(time.Local),
		cfg:        cfg,
		cobranzaUC: cobranzaUC,
		log:        log.Componente("scheduler"),
	}
}

// Start agenda la corrida según ESCALAMIENTO_CRON y arranca el scheduler.
// Cuando el contexto se cancela, el scheduler se detiene.
func (s *EscalamientoService) Start(ctx context.Context) error {
	if !s.cfg.EscalamientoEnabled {
		s.log.Info().Msg("escalamiento automático deshabilitado por configuración")
		return nil
	}

	s.log.Info().Str("cron", s.cfg.EscalamientoCron).Msg("iniciando agendador de escalamiento")

	_, err := s.scheduler.Cron(s.cfg.EscalamientoCron).Do(func() {
		s.correr(ctx)
	})
	if err != nil {
		return fmt.Errorf("agendar escalamiento: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		s.log.Info().Msg("deteniendo agendador de escalamiento")
		s.scheduler.Stop()
	}()

	return nil
}

// correr ejecuta una pasada de escalamiento. Si ya hay una en curso la ignora.
func (s *EscalamientoService) correr(ctx context.Context) {
	s.mu.Lock()
	if s.enEjecucion {
		s.mu.Unlock()
		s.log.Info().Msg("escalamiento ya en curso, corrida ignorada")
		return
	}
	s.enEjecucion = true
	s.ultimaCorrida = time.Now()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.enEjecucion = false
		s.mu.Unlock()
	}()

	res, err := s.cobranzaUC.EscalarCriticos(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("falló la corrida de escalamiento")
		return
	}
	s.log.Info().
		Int("enviados", res.Enviados).
		Int("omitidos", res.Omitidos).
		Int("fallidos", res.Fallidos).
		Msg("corrida de escalamiento completada")
}
