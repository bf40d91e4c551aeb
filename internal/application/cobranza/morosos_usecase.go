// Package cobranza implementa los casos de uso de cartera: listado de
// morosos, despacho masivo de recordatorios y escalamiento de críticos.
package cobranza

import (
	"context"
	"strings"
	"time"

	"github.com/alianzanet/gestion-api/internal/application/dto"
	"github.com/alianzanet/gestion-api/internal/application/ports"
	"github.com/alianzanet/gestion-api/internal/domain"
	"github.com/alianzanet/gestion-api/internal/domain/cartera"
	"github.com/alianzanet/gestion-api/internal/domain/repository"
	"github.com/alianzanet/gestion-api/pkg/logger"
)

// UseCase casos de uso de cobranza.
type UseCase struct {
	clienteRepo  repository.ClienteRepository
	notificador  ports.Notificador
	log          *logger.Logger
	concurrencia int64
	ahora        func() time.Time
}

// NewUseCase construye el caso de uso. concurrencia limita los envíos
// simultáneos de un despacho masivo; valores menores a 1 se ajustan a 1.
func NewUseCase(clienteRepo repository.ClienteRepository, notificador ports.Notificador, log *logger.Logger, concurrencia int) *UseCase {
	if concurrencia < 1 {
		concurrencia = 1
	}
	return &UseCase{
		clienteRepo:  clienteRepo,
		notificador:  notificador,
		log:          log,
		concurrencia: int64(concurrencia),
		ahora:        time.Now,
	}
}

// ListarMorosos devuelve la cartera morosa del mes de referencia: clientes
// cuyo mes_pagado difiere del mes y llevan más de 30 días sin pagar. Con mes
// vacío se usa el mes en curso.
func (uc *UseCase) ListarMorosos(ctx context.Context, mes string) (*dto.MorososResponse, error) {
	mes, err := uc.mesReferencia(mes)
	if err != nil {
		return nil, err
	}

	hoy := uc.ahora()
	morosos, err := uc.clasificar(ctx, mes, hoy)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MorosoResponse, 0, len(morosos))
	for _, m := range morosos {
		out = append(out, dto.ToMorosoResponse(m))
	}

	return &dto.MorososResponse{
		Mes:        mes,
		Total:      len(out),
		DeudaTotal: cartera.DeudaTotal(morosos),
		Morosos:    out,
	}, nil
}

// mesReferencia normaliza el mes pedido; vacío significa el mes en curso.
func (uc *UseCase) mesReferencia(mes string) (string, error) {
	mes = strings.ToUpper(strings.TrimSpace(mes))
	if mes == "" {
		return cartera.MesActual(uc.ahora()), nil
	}
	if !cartera.EsMesValido(mes) {
		return "", domain.ErrInvalidInput
	}
	return mes, nil
}

// clasificar trae los candidatos de la base y aplica la clasificación de mora.
func (uc *UseCase) clasificar(ctx context.Context, mes string, hoy time.Time) ([]cartera.Morosidad, error) {
	candidatos, err := uc.clienteRepo.ListarPorMesNoPagado(ctx, mes)
	if err != nil {
		return nil, err
	}
	return cartera.ClasificarTodos(candidatos, mes, hoy), nil
}
