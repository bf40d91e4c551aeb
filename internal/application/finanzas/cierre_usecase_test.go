package finanzas

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alianzanet/gestion-api/internal/application/dto"
	"github.com/alianzanet/gestion-api/internal/domain"
	"github.com/alianzanet/gestion-api/internal/domain/entity"
	"github.com/alianzanet/gestion-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

type fakeCierreRepo struct {
	cierres []*entity.Cierre
	nextID  int64
}

func (r *fakeCierreRepo) Crear(ctx context.Context, c *entity.Cierre) (int64, error) {
	r.nextID++
	cc := *c
	cc.ID = r.nextID
	r.cierres = append(r.cierres, &cc)
	return r.nextID, nil
}

func (r *fakeCierreRepo) Listar(ctx context.Context) ([]*entity.Cierre, error) {
	// Del más reciente al más antiguo
	out := make([]*entity.Cierre, len(r.cierres))
	for i, c := range r.cierres {
		out[len(r.cierres)-1-i] = c
	}
	return out, nil
}

func (r *fakeCierreRepo) ExistePeriodo(ctx context.Context, mes string, ano int) (bool, error) {
	for _, c := range r.cierres {
		if c.MesRef == mes && c.AnoRef == ano {
			return true, nil
		}
	}
	return false, nil
}

type fakeMetricasRepo struct {
	porEstado map[string]int
	porNodo   map[string]int
	ingreso   decimal.Decimal
	clientes  int
	morosos   int
}

func (r *fakeMetricasRepo) ContarPorEstado(ctx context.Context) (map[string]int, error) {
	return r.porEstado, nil
}

func (r *fakeMetricasRepo) ContarPorNodo(ctx context.Context) (map[string]int, error) {
	return r.porNodo, nil
}

func (r *fakeMetricasRepo) IngresoProyectado(ctx context.Context) (decimal.Decimal, int, error) {
	return r.ingreso, r.clientes, nil
}

func (r *fakeMetricasRepo) ContarMorosos(ctx context.Context, mes string) (int, error) {
	return r.morosos, nil
}

func newTestCierreUseCase(repo *fakeCierreRepo, metricas *fakeMetricasRepo) *CierreUseCase {
	uc := NewCierreUseCase(repo, metricas, logger.New(logger.Config{Env: "development", Level: "error"}))
	uc.ahora = func() time.Time { return time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC) }
	return uc
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de cierres
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrar_CalculaUtilidad(t *testing.T) {
	repo := &fakeCierreRepo{}
	uc := newTestCierreUseCase(repo, &fakeMetricasRepo{})

	resp, err := uc.Registrar(context.Background(), dto.CrearCierreRequest{
		Mes:      "febrero",
		Ano:      2025,
		Ingresos: dto.Monto{Decimal: decimal.NewFromInt(5000000)},
		Gastos:   dto.Monto{Decimal: decimal.NewFromInt(1200000)},
		Notas:    "Cierre normal",
	})
	require.NoError(t, err)

	assert.Equal(t, "FEBRERO", resp.Mes, "el mes se normaliza a mayúsculas")
	assert.True(t, resp.Utilidad.Equal(decimal.NewFromInt(3800000)))
	assert.NotZero(t, resp.ID)
}

func TestRegistrar_IngresosCeroSeCalculanDeLaBase(t *testing.T) {
	repo := &fakeCierreRepo{}
	metricas := &fakeMetricasRepo{ingreso: decimal.NewFromInt(7500000), clientes: 150}
	uc := newTestCierreUseCase(repo, metricas)

	resp, err := uc.Registrar(context.Background(), dto.CrearCierreRequest{
		Mes:    "MARZO",
		Ano:    2025,
		Gastos: dto.Monto{Decimal: decimal.NewFromInt(500000)},
	})
	require.NoError(t, err)
	assert.True(t, resp.Ingresos.Equal(decimal.NewFromInt(7500000)), "sin ingresos explícitos se suma la cuota de la base")
	assert.True(t, resp.Utilidad.Equal(decimal.NewFromInt(7000000)))
}

func TestRegistrar_PeriodoDuplicadoRechazado(t *testing.T) {
	repo := &fakeCierreRepo{}
	uc := newTestCierreUseCase(repo, &fakeMetricasRepo{})

	in := dto.CrearCierreRequest{
		Mes:      "MARZO",
		Ano:      2025,
		Ingresos: dto.Monto{Decimal: decimal.NewFromInt(100)},
	}
	_, err := uc.Registrar(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Registrar(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el historial es de solo-inserción: un período no se cierra dos veces")
}

func TestRegistrar_MesInvalidoRechazado(t *testing.T) {
	uc := newTestCierreUseCase(&fakeCierreRepo{}, &fakeMetricasRepo{})

	_, err := uc.Registrar(context.Background(), dto.CrearCierreRequest{Mes: "MARCH", Ano: 2025})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistorial_DelMasRecienteAlMasAntiguo(t *testing.T) {
	repo := &fakeCierreRepo{}
	uc := newTestCierreUseCase(repo, &fakeMetricasRepo{})

	for _, mes := range []string{"ENERO", "FEBRERO", "MARZO"} {
		_, err := uc.Registrar(context.Background(), dto.CrearCierreRequest{
			Mes:      mes,
			Ano:      2025,
			Ingresos: dto.Monto{Decimal: decimal.NewFromInt(100)},
		})
		require.NoError(t, err)
	}

	hist, err := uc.Historial(context.Background())
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, "MARZO", hist[0].Mes)
	assert.Equal(t, "ENERO", hist[2].Mes)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestResumen_AgregaMetricas(t *testing.T) {
	metricas := &fakeMetricasRepo{
		porEstado: map[string]int{
			entity.EstadoActivo:      80,
			entity.EstadoActivoCable: 10,
			entity.EstadoSuspendido:  7,
			entity.EstadoInactivo:    3,
		},
		porNodo: map[string]int{"URBINA": 40, "FIBRA": 60},
		ingreso: decimal.NewFromInt(4500000),
		morosos: 12,
	}
	uc := NewDashboardUseCase(metricas)
	uc.ahora = func() time.Time { return time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC) }

	resp, err := uc.Resumen(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 100, resp.TotalClientes)
	assert.Equal(t, 90, resp.ClientesActivos, "las variantes ACTIVO* cuentan como activas")
	assert.Equal(t, 12, resp.Morosos)
	assert.Equal(t, "MARZO", resp.MesReferencia)
	assert.True(t, resp.IngresoProyectado.Equal(decimal.NewFromInt(4500000)))
}
