package clientes

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alianzanet/gestion-api/internal/application/dto"
	"github.com/alianzanet/gestion-api/internal/domain"
	"github.com/alianzanet/gestion-api/internal/domain/entity"
	"github.com/alianzanet/gestion-api/internal/domain/repository"
	"github.com/alianzanet/gestion-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba: repositorio en memoria, tx runner directo y notificador
// que registra las acciones enviadas.
// ──────────────────────────────────────────────────────────────────────────────

type fakeClienteRepo struct {
	mu        sync.Mutex
	clientes  map[int64]*entity.Cliente
	nextID    int64
	failCrear error
}

func newFakeClienteRepo() *fakeClienteRepo {
	return &fakeClienteRepo{clientes: make(map[int64]*entity.Cliente), nextID: 1}
}

func (r *fakeClienteRepo) Listar(ctx context.Context) ([]*entity.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		cc := *c
		out = append(out, &cc)
	}
	return out, nil
}

func (r *fakeClienteRepo) ObtenerPorID(ctx context.Context, id int64) (*entity.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clientes[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *fakeClienteRepo) Crear(ctx context.Context, c *entity.Cliente) (int64, error) {
	if r.failCrear != nil {
		return 0, r.failCrear
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	cc := *c
	cc.ID = id
	r.clientes[id] = &cc
	return id, nil
}

func (r *fakeClienteRepo) Guardar(ctx context.Context, c *entity.Cliente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cc := *c
	r.clientes[c.ID] = &cc
	return nil
}

func (r *fakeClienteRepo) Eliminar(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clientes, id)
	return nil
}

func (r *fakeClienteRepo) ListarPorMesNoPagado(ctx context.Context, mes string) ([]*entity.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Cliente
	for _, c := range r.clientes {
		if c.MesPagado != mes {
			cc := *c
			out = append(out, &cc)
		}
	}
	return out, nil
}

func (r *fakeClienteRepo) MarcarNotificado(ctx context.Context, id int64, cuando time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.clientes[id]; ok {
		t := cuando
		c.UltimaNotificacion = &t
	}
	return nil
}

type fakeTxRunner struct {
	repo *fakeClienteRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(repo repository.ClienteRepository) error) error {
	return fn(f.repo)
}

type envio struct {
	accion string
	cuerpo map[string]any
}

type fakeNotificador struct {
	mu      sync.Mutex
	envios  []envio
	failErr error
}

func (n *fakeNotificador) Enviar(ctx context.Context, accion string, cuerpo map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failErr != nil {
		return n.failErr
	}
	n.envios = append(n.envios, envio{accion: accion, cuerpo: cuerpo})
	return nil
}

func (n *fakeNotificador) acciones() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.envios))
	for _, e := range n.envios {
		out = append(out, e.accion)
	}
	return out
}

// fechaFija: 15 de marzo de 2025, la referencia de todos los tests.
var fechaFija = time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

func newTestUseCase(repo *fakeClienteRepo, notif *fakeNotificador) *UseCase {
	uc := NewUseCase(repo, &fakeTxRunner{repo: repo}, notif, nil, logger.New(logger.Config{Env: "development", Level: "error"}))
	uc.ahora = func() time.Time { return fechaFija }
	return uc
}

// ──────────────────────────────────────────────────────────────────────────────
// Altas
// ──────────────────────────────────────────────────────────────────────────────

func TestCrear_AplicaDefaultsDeAlta(t *testing.T) {
	repo := newFakeClienteRepo()
	notif := &fakeNotificador{}
	uc := newTestUseCase(repo, notif)

	resp, err := uc.Crear(context.Background(), dto.CrearClienteRequest{
		Nombre:    "maria urbina",
		Direccion: "cll 5 # 3-21",
		Plan:      "30 MEGAS",
	})
	require.NoError(t, err)

	// Defaults de un servicio recién instalado
	assert.Equal(t, "MARIA URBINA", resp.Nombre, "el nombre se guarda en mayúsculas")
	assert.Equal(t, "CLL 5 # 3-21", resp.Direccion)
	assert.Equal(t, entity.EstadoActivo, resp.Estado)
	assert.Equal(t, "MARZO", resp.MesPagado, "el mes en curso queda como pagado")
	assert.Equal(t, "15/3/2025", resp.FechaInstalacion)
	assert.Equal(t, "10/4/2025", resp.ProximoPago, "próximo pago el 10 del mes siguiente")
	assert.NotZero(t, resp.ID)
}

func TestCrear_NombreVacioRechazado(t *testing.T) {
	uc := newTestUseCase(newFakeClienteRepo(), &fakeNotificador{})

	_, err := uc.Crear(context.Background(), dto.CrearClienteRequest{Nombre: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCrear_BienvenidaSoloConCorreo(t *testing.T) {
	repo := newFakeClienteRepo()
	notif := &fakeNotificador{}
	uc := newTestUseCase(repo, notif)

	// Sin correo: no se envía aunque se pida
	_, err := uc.Crear(context.Background(), dto.CrearClienteRequest{Nombre: "SIN CORREO", EnviarBienvenida: true})
	require.NoError(t, err)
	assert.Empty(t, notif.acciones())

	// Con correo: se envía sendWelcome
	_, err = uc.Crear(context.Background(), dto.CrearClienteRequest{
		Nombre:           "CON CORREO",
		Correo:           "cliente@example.com",
		EnviarBienvenida: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"sendWelcome"}, notif.acciones())
}

func TestCrear_FalloDeBienvenidaNoRevierteAlta(t *testing.T) {
	repo := newFakeClienteRepo()
	notif := &fakeNotificador{failErr: assert.AnError}
	uc := newTestUseCase(repo, notif)

	resp, err := uc.Crear(context.Background(), dto.CrearClienteRequest{
		Nombre:           "RESILIENTE",
		Correo:           "r@example.com",
		EnviarBienvenida: true,
	})
	require.NoError(t, err, "el alta no depende del envío de bienvenida")

	guardado, _ := repo.ObtenerPorID(context.Background(), resp.ID)
	require.NotNil(t, guardado)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ediciones y transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func clientePrevio(repo *fakeClienteRepo, estado string) int64 {
	id, _ := repo.Crear(context.Background(), &entity.Cliente{
		Nombre:    "PEDRO PEREZ",
		Estado:    estado,
		MesPagado: "MARZO",
		Correo:    "pedro@example.com",
		Valor:     decimal.NewFromInt(50000),
	})
	return id
}

func TestActualizar_SuspendidoAActivoEnviaReconexion(t *testing.T) {
	repo := newFakeClienteRepo()
	notif := &fakeNotificador{}
	uc := newTestUseCase(repo, notif)
	id := clientePrevio(repo, entity.EstadoSuspendido)

	_, err := uc.Actualizar(context.Background(), id, dto.ActualizarClienteRequest{
		Nombre: "PEDRO PEREZ",
		Estado: entity.EstadoActivo,
		Correo: "pedro@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"sendReconnection"}, notif.acciones())
}

func TestActualizar_AInactivoEnviaBaja(t *testing.T) {
	repo := newFakeClienteRepo()
	notif := &fakeNotificador{}
	uc := newTestUseCase(repo, notif)
	id := clientePrevio(repo, entity.EstadoActivo)

	_, err := uc.Actualizar(context.Background(), id, dto.ActualizarClienteRequest{
		Nombre: "PEDRO PEREZ",
		Estado: entity.EstadoInactivo,
		Correo: "pedro@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"sendDeactivation"}, notif.acciones())
}

func TestActualizar_MismoEstadoNoNotifica(t *testing.T) {
	repo := newFakeClienteRepo()
	notif := &fakeNotificador{}
	uc := newTestUseCase(repo, notif)
	id := clientePrevio(repo, entity.EstadoActivo)

	_, err := uc.Actualizar(context.Background(), id, dto.ActualizarClienteRequest{
		Nombre: "PEDRO PEREZ",
		Estado: entity.EstadoActivo,
		Correo: "pedro@example.com",
	})
	require.NoError(t, err)
	assert.Empty(t, notif.acciones())
}

func TestActualizar_CambioManualDeMesRecalculaProximoPago(t *testing.T) {
	repo := newFakeClienteRepo()
	uc := newTestUseCase(repo, &fakeNotificador{})
	id := clientePrevio(repo, entity.EstadoActivo)

	resp, err := uc.Actualizar(context.Background(), id, dto.ActualizarClienteRequest{
		Nombre:    "PEDRO PEREZ",
		Estado:    entity.EstadoActivo,
		MesPagado: "MAYO",
	})
	require.NoError(t, err)
	assert.Equal(t, "MAYO", resp.MesPagado)
	assert.Equal(t, "10/6/2025", resp.ProximoPago, "próximo pago recalculado al 10 del mes siguiente al nuevo mes")
}

func TestActualizar_EstadoInvalidoRechazado(t *testing.T) {
	repo := newFakeClienteRepo()
	uc := newTestUseCase(repo, &fakeNotificador{})
	id := clientePrevio(repo, entity.EstadoActivo)

	_, err := uc.Actualizar(context.Background(), id, dto.ActualizarClienteRequest{
		Nombre: "PEDRO PEREZ",
		Estado: "CONGELADO",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestActualizar_NoExisteRetornaNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeClienteRepo(), &fakeNotificador{})

	_, err := uc.Actualizar(context.Background(), 999, dto.ActualizarClienteRequest{Nombre: "NADIE"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bajas confirmadas
// ──────────────────────────────────────────────────────────────────────────────

func TestEliminar_SinConfirmacionRechazado(t *testing.T) {
	repo := newFakeClienteRepo()
	uc := newTestUseCase(repo, &fakeNotificador{})
	id := clientePrevio(repo, entity.EstadoActivo)

	err := uc.Eliminar(context.Background(), id, false)
	assert.ErrorIs(t, err, domain.ErrConfirmacionRequerida)

	c, _ := repo.ObtenerPorID(context.Background(), id)
	assert.NotNil(t, c, "sin confirmación el cliente sigue existiendo")
}

func TestEliminar_ConConfirmacionBorra(t *testing.T) {
	repo := newFakeClienteRepo()
	uc := newTestUseCase(repo, &fakeNotificador{})
	id := clientePrevio(repo, entity.EstadoActivo)

	err := uc.Eliminar(context.Background(), id, true)
	require.NoError(t, err)

	c, _ := repo.ObtenerPorID(context.Background(), id)
	assert.Nil(t, c)
}

func TestEliminar_NoExisteRetornaNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeClienteRepo(), &fakeNotificador{})

	err := uc.Eliminar(context.Background(), 12345, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogos
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogos_IncluyeMesesYEstados(t *testing.T) {
	uc := newTestUseCase(newFakeClienteRepo(), &fakeNotificador{})

	cat := uc.Catalogos()
	assert.Len(t, cat.Meses, 12)
	assert.Contains(t, cat.Estados, entity.EstadoSuspendido)
	assert.NotEmpty(t, cat.Cuotas)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado con filtros
// ──────────────────────────────────────────────────────────────────────────────

func TestListar_AplicaFiltros(t *testing.T) {
	repo := newFakeClienteRepo()
	repo.clientes[1] = &entity.Cliente{ID: 1, Nombre: "ANA TORRES", Estado: "ACTIVO", Nodo: "SANTAFE"}
	repo.clientes[2] = &entity.Cliente{ID: 2, Nombre: "LUIS PEREZ", Estado: "SUSPENDIDO", Nodo: "SANTAFE"}
	repo.clientes[3] = &entity.Cliente{ID: 3, Nombre: "ANA MARIA RUIZ", Estado: "ACTIVO", Nodo: "FIBRA"}
	uc := newTestUseCase(repo, &fakeNotificador{})

	todos, err := uc.Listar(context.Background(), FiltroClientes{})
	require.NoError(t, err)
	assert.Len(t, todos, 3)

	porNodo, err := uc.Listar(context.Background(), FiltroClientes{Nodo: "santafe"})
	require.NoError(t, err)
	assert.Len(t, porNodo, 2, "el filtro de nodo no distingue mayúsculas")

	porEstado, err := uc.Listar(context.Background(), FiltroClientes{Estado: "SUSPENDIDO"})
	require.NoError(t, err)
	require.Len(t, porEstado, 1)
	assert.Equal(t, "LUIS PEREZ", porEstado[0].Nombre)

	porTexto, err := uc.Listar(context.Background(), FiltroClientes{Busqueda: "ana"})
	require.NoError(t, err)
	assert.Len(t, porTexto, 2, "la búsqueda por texto compara contra el nombre")

	combinado, err := uc.Listar(context.Background(), FiltroClientes{Busqueda: "ana", Nodo: "FIBRA"})
	require.NoError(t, err)
	require.Len(t, combinado, 1)
	assert.Equal(t, "ANA MARIA RUIZ", combinado[0].Nombre)
}
