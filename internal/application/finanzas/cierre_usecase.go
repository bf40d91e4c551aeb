// Package finanzas contiene los casos de uso del historial financiero y del
// tablero de métricas.
package finanzas

import (
	"context"
	"strings"
	"time"

	"github.com/alianzanet/gestion-api/internal/application/dto"
	"github.com/alianzanet/gestion-api/internal/domain"
	"github.com/alianzanet/gestion-api/internal/domain/cartera"
	"github.com/alianzanet/gestion-api/internal/domain/entity"
	"github.com/alianzanet/gestion-api/internal/domain/repository"
	"github.com/alianzanet/gestion-api/pkg/logger"
)

// CierreUseCase registra y consulta los cierres mensuales. El historial es de
// solo-inserción: no hay edición ni borrado de períodos ya cerrados.
type CierreUseCase struct {
	cierreRepo   repository.CierreRepository
	metricasRepo repository.ClienteMetricasRepository
	log          *logger.Logger
	ahora        func() time.Time
}

// NewCierreUseCase construye el caso de uso.
func NewCierreUseCase(cierreRepo repository.CierreRepository, metricasRepo repository.ClienteMetricasRepository, log *logger.Logger) *CierreUseCase {
	return &CierreUseCase{
		cierreRepo:   cierreRepo,
		metricasRepo: metricasRepo,
		log:          log,
		ahora:        time.Now,
	}
}

// Registrar asienta el cierre de un período. Si los ingresos vienen en cero se
// calculan con la suma de cuotas mensuales de la base de clientes. Devuelve
// ErrDuplicate si el período ya fue cerrado.
func (uc *CierreUseCase) Registrar(ctx context.Context, in dto.CrearCierreRequest) (*dto.CierreResponse, error) {
	mes := strings.ToUpper(strings.TrimSpace(in.Mes))
	if !cartera.EsMesValido(mes) {
		return nil, domain.ErrInvalidInput
	}
	if in.Ano < 2000 {
		return nil, domain.ErrInvalidInput
	}

	existe, err := uc.cierreRepo.ExistePeriodo(ctx, mes, in.Ano)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, domain.ErrDuplicate
	}

	ingresos := in.Ingresos.Decimal
	if ingresos.IsZero() {
		total, clientes, err := uc.metricasRepo.IngresoProyectado(ctx)
		if err != nil {
			return nil, err
		}
		ingresos = total
		uc.log.Debug().Int("clientes", clientes).Str("total", total.String()).
			Msg("ingresos del cierre calculados desde la base de clientes")
	}
	gastos := in.Gastos.Decimal

	c := &entity.Cierre{
		MesRef:        mes,
		AnoRef:        in.Ano,
		Ingresos:      ingresos,
		Gastos:        gastos,
		Utilidad:      ingresos.Sub(gastos),
		Notas:         in.Notas,
		FechaRegistro: uc.ahora(),
	}
	id, err := uc.cierreRepo.Crear(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id

	uc.log.Info().Str("mes", mes).Int("ano", in.Ano).Str("utilidad", c.Utilidad.String()).Msg("cierre mensual registrado")
	resp := dto.ToCierreResponse(c)
	return &resp, nil
}

// Historial devuelve los cierres del más reciente al más antiguo.
func (uc *CierreUseCase) Historial(ctx context.Context) ([]dto.CierreResponse, error) {
	cierres, err := uc.cierreRepo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CierreResponse, 0, len(cierres))
	for _, c := range cierres {
		out = append(out, dto.ToCierreResponse(c))
	}
	return out, nil
}
