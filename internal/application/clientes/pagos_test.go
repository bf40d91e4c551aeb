package clientes

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alianzanet/gestion-api/internal/application/dto"
	"github.com/alianzanet/gestion-api/internal/domain"
	"github.com/alianzanet/gestion-api/internal/domain/entity"
)

func clienteConDeuda(repo *fakeClienteRepo) int64 {
	id, _ := repo.Crear(context.Background(), &entity.Cliente{
		Nombre:    "LUIS GOMEZ",
		Estado:    entity.EstadoActivo,
		MesPagado: "ENERO",
		Valor:     decimal.NewFromInt(50000),
		Correo:    "luis@example.com",
		Nota:      "Nota previa",
	})
	return id
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de pagos (fecha de referencia: 15/3/2025)
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarPago_MesCorriente(t *testing.T) {
	repo := newFakeClienteRepo()
	uc := newTestUseCase(repo, &fakeNotificador{})
	id := clienteConDeuda(repo)

	resp, err := uc.RegistrarPago(context.Background(), id, dto.RegistrarPagoRequest{
		Mes:      "MARZO",
		Adelanto: 0,
	})
	require.NoError(t, err)

	assert.Equal(t, "MARZO", resp.MesPagado)
	assert.Equal(t, "15/3/2025", resp.UltimoPago)
	assert.Equal(t, "10/4/2025", resp.ProximoPago)
	assert.True(t, resp.Monto.Equal(decimal.NewFromInt(50000)), "sin monto explícito se usa la cuota del cliente")

	guardado, _ := repo.ObtenerPorID(context.Background(), id)
	assert.Equal(t, "MARZO", guardado.MesPagado, "el pago queda persistido")
	assert.Equal(t, "Nota previa", guardado.Nota, "sin adelanto la nota no cambia")
}

func TestRegistrarPago_AdelantoTresMeses(t *testing.T) {
	repo := newFakeClienteRepo()
	uc := newTestUseCase(repo, &fakeNotificador{})
	id := clienteConDeuda(repo)

	resp, err := uc.RegistrarPago(context.Background(), id, dto.RegistrarPagoRequest{
		Mes:      "MARZO",
		Adelanto: 3,
	})
	require.NoError(t, err)

	// Marzo + 2 meses adicionales cubre hasta mayo; el próximo pago es el 10 de junio.
	assert.Equal(t, "MAYO", resp.MesPagado)
	assert.Equal(t, "10/6/2025", resp.ProximoPago)

	guardado, _ := repo.ObtenerPorID(context.Background(), id)
	assert.True(t, strings.HasPrefix(guardado.Nota, "Pago adelantado por 3 meses."), "el adelanto deja constancia en la nota")
	assert.Contains(t, guardado.Nota, "Nota previa", "la nota anterior se conserva")
}

func TestRegistrarPago_DiciembreConAdelantoCruzaAno(t *testing.T) {
	repo := newFakeClienteRepo()
	uc := newTestUseCase(repo, &fakeNotificador{})
	id := clienteConDeuda(repo)

	resp, err := uc.RegistrarPago(context.Background(), id, dto.RegistrarPagoRequest{
		Mes:      "DICIEMBRE",
		Adelanto: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, "10/1/2026", resp.ProximoPago, "diciembre desplaza el próximo pago a enero del año siguiente")
}

func TestRegistrarPago_MontoExplicitoYFactura(t *testing.T) {
	repo := newFakeClienteRepo()
	uc := newTestUseCase(repo, &fakeNotificador{})
	id := clienteConDeuda(repo)

	resp, err := uc.RegistrarPago(context.Background(), id, dto.RegistrarPagoRequest{
		Mes:      "MARZO",
		Adelanto: 1,
		Monto:    dto.Monto{Decimal: decimal.NewFromInt(45000)},
		Factura:  "FV-0042",
	})
	require.NoError(t, err)
	assert.True(t, resp.Monto.Equal(decimal.NewFromInt(45000)))

	guardado, _ := repo.ObtenerPorID(context.Background(), id)
	assert.Equal(t, "FV-0042", guardado.Factura)
}

func TestRegistrarPago_ReciboDeMejorEsfuerzo(t *testing.T) {
	repo := newFakeClienteRepo()
	notif := &fakeNotificador{}
	uc := newTestUseCase(repo, notif)
	id := clienteConDeuda(repo)

	_, err := uc.RegistrarPago(context.Background(), id, dto.RegistrarPagoRequest{
		Mes:          "MARZO",
		Adelanto:     1,
		EnviarRecibo: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"sendReceipt"}, notif.acciones())

	// Si el envío falla, el pago igual queda registrado
	repo2 := newFakeClienteRepo()
	uc2 := newTestUseCase(repo2, &fakeNotificador{failErr: assert.AnError})
	id2 := clienteConDeuda(repo2)

	resp, err := uc2.RegistrarPago(context.Background(), id2, dto.RegistrarPagoRequest{
		Mes:          "MARZO",
		Adelanto:     1,
		EnviarRecibo: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "MARZO", resp.MesPagado)
}

func TestRegistrarPago_MesInvalidoRechazado(t *testing.T) {
	repo := newFakeClienteRepo()
	uc := newTestUseCase(repo, &fakeNotificador{})
	id := clienteConDeuda(repo)

	_, err := uc.RegistrarPago(context.Background(), id, dto.RegistrarPagoRequest{Mes: "MARCH"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrarPago_AdelantoInvalidoRechazado(t *testing.T) {
	repo := newFakeClienteRepo()
	uc := newTestUseCase(repo, &fakeNotificador{})
	id := clienteConDeuda(repo)

	_, err := uc.RegistrarPago(context.Background(), id, dto.RegistrarPagoRequest{Mes: "MARZO", Adelanto: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrarPago_ClienteInexistente(t *testing.T) {
	uc := newTestUseCase(newFakeClienteRepo(), &fakeNotificador{})

	_, err := uc.RegistrarPago(context.Background(), 999, dto.RegistrarPagoRequest{Mes: "MARZO", Adelanto: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
