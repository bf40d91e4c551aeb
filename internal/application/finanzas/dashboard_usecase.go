package finanzas

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alianzanet/gestion-api/internal/application/dto"
	"github.com/alianzanet/gestion-api/internal/domain/cartera"
	"github.com/alianzanet/gestion-api/internal/domain/entity"
	"github.com/alianzanet/gestion-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen del tablero principal.
//
// Fuente de datos: ClienteMetricasRepository (consultas read-only).
// No recorre la tabla de clientes en memoria; delega los agregados en SQL.
type DashboardUseCase struct {
	metricasRepo repository.ClienteMetricasRepository
	ahora        func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(metricasRepo repository.ClienteMetricasRepository) *DashboardUseCase {
	return &DashboardUseCase{metricasRepo: metricasRepo, ahora: time.Now}
}

// Resumen construye el DashboardResponse del mes en curso.
//
// Cuatro llamadas en paralelo:
//  1. ContarPorEstado     → totales y activos
//  2. ContarPorNodo       → distribución por nodo de red
//  3. IngresoProyectado   → suma de cuotas mensuales
//  4. ContarMorosos(mes)  → cartera vencida del mes
func (uc *DashboardUseCase) Resumen(ctx context.Context) (*dto.DashboardResponse, error) {
	mes := cartera.MesActual(uc.ahora())

	type conteoResult struct {
		conteo map[string]int
		err    error
	}
	type ingresoResult struct {
		total    decimal.Decimal
		clientes int
		err      error
	}
	type morososResult struct {
		n   int
		err error
	}

	estadoCh := make(chan conteoResult, 1)
	nodoCh := make(chan conteoResult, 1)
	ingresoCh := make(chan ingresoResult, 1)
	morososCh := make(chan morososResult, 1)

	go func() {
		m, err := uc.metricasRepo.ContarPorEstado(ctx)
		estadoCh <- conteoResult{m, err}
	}()
	go func() {
		m, err := uc.metricasRepo.ContarPorNodo(ctx)
		nodoCh <- conteoResult{m, err}
	}()
	go func() {
		total, clientes, err := uc.metricasRepo.IngresoProyectado(ctx)
		ingresoCh <- ingresoResult{total, clientes, err}
	}()
	go func() {
		n, err := uc.metricasRepo.ContarMorosos(ctx, mes)
		morososCh <- morososResult{n, err}
	}()

	estados := <-estadoCh
	nodos := <-nodoCh
	ingreso := <-ingresoCh
	morosos := <-morososCh

	if estados.err != nil {
		return nil, fmt.Errorf("dashboard: conteo por estado: %w", estados.err)
	}
	if nodos.err != nil {
		return nil, fmt.Errorf("dashboard: conteo por nodo: %w", nodos.err)
	}
	if ingreso.err != nil {
		return nil, fmt.Errorf("dashboard: ingreso proyectado: %w", ingreso.err)
	}
	if morosos.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de morosos: %w", morosos.err)
	}

	total := 0
	activos := 0
	for estado, n := range estados.conteo {
		total += n
		if entity.EsEstadoActivo(estado) {
			activos += n
		}
	}

	return &dto.DashboardResponse{
		TotalClientes:     total,
		ClientesActivos:   activos,
		PorEstado:         estados.conteo,
		PorNodo:           nodos.conteo,
		IngresoProyectado: ingreso.total,
		Morosos:           morosos.n,
		MesReferencia:     mes,
	}, nil
}
