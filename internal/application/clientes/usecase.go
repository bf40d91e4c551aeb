package clientes

import (
	"context"
	"strings"
	"time"

	"github.com/alianzanet/gestion-api/internal/application/dto"
	"github.com/alianzanet/gestion-api/internal/application/ports"
	"github.com/alianzanet/gestion-api/internal/domain"
	"github.com/alianzanet/gestion-api/internal/domain/cartera"
	"github.com/alianzanet/gestion-api/internal/domain/entity"
	"github.com/alianzanet/gestion-api/internal/domain/repository"
	"github.com/alianzanet/gestion-api/pkg/logger"
)

// UseCase casos de uso del directorio de clientes: altas, ediciones,
// cambios de estado y bajas confirmadas.
type UseCase struct {
	clienteRepo repository.ClienteRepository
	txRunner    TxRunner
	notificador ports.Notificador
	pdfGen      ReciboPDFGenerator
	log         *logger.Logger
	ahora       func() time.Time
}

// NewUseCase construye el caso de uso de clientes.
func NewUseCase(clienteRepo repository.ClienteRepository, txRunner TxRunner, notificador ports.Notificador, pdfGen ReciboPDFGenerator, log *logger.Logger) *UseCase {
	return &UseCase{
		clienteRepo: clienteRepo,
		txRunner:    txRunner,
		notificador: notificador,
		pdfGen:      pdfGen,
		log:         log,
		ahora:       time.Now,
	}
}

// FiltroClientes filtros opcionales del listado. Busqueda compara contra
// nombre, dirección y usuario sin distinguir mayúsculas.
type FiltroClientes struct {
	Busqueda string
	Estado   string
	Nodo     string
}

// Listar devuelve el directorio ordenado por ID, aplicando los filtros.
func (uc *UseCase) Listar(ctx context.Context, filtro FiltroClientes) ([]dto.ClienteResponse, error) {
	cs, err := uc.clienteRepo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	if filtro == (FiltroClientes{}) {
		return dto.ToClienteResponses(cs), nil
	}

	busqueda := strings.ToUpper(strings.TrimSpace(filtro.Busqueda))
	estado := strings.ToUpper(strings.TrimSpace(filtro.Estado))
	nodo := strings.ToUpper(strings.TrimSpace(filtro.Nodo))

	filtrados := make([]*entity.Cliente, 0, len(cs))
	for _, c := range cs {
		if estado != "" && c.Estado != estado {
			continue
		}
		if nodo != "" && c.Nodo != nodo {
			continue
		}
		if busqueda != "" &&
			!strings.Contains(strings.ToUpper(c.Nombre), busqueda) &&
			!strings.Contains(strings.ToUpper(c.Direccion), busqueda) &&
			!strings.Contains(strings.ToUpper(c.Usuario), busqueda) {
			continue
		}
		filtrados = append(filtrados, c)
	}
	return dto.ToClienteResponses(filtrados), nil
}

// Obtener devuelve un cliente por ID. ErrNotFound si no existe.
func (uc *UseCase) Obtener(ctx context.Context, id int64) (*dto.ClienteResponse, error) {
	c, err := uc.clienteRepo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToClienteResponse(c)
	return &resp, nil
}

// Catalogos devuelve los catálogos de captura del formulario.
func (uc *UseCase) Catalogos() dto.CatalogosResponse {
	return dto.CatalogosResponse{
		Planes:  entity.Planes,
		Nodos:   entity.Nodos,
		TVBox:   entity.OpcionesTVBox,
		Estados: entity.Estados,
		Cuotas:  entity.ValoresCuota,
		Meses:   cartera.MesesES,
	}
}

// Crear da de alta un cliente con los valores por defecto de un servicio
// recién instalado: estado ACTIVO, mes en curso como pagado, fecha de
// instalación hoy y próximo pago el 10 del mes siguiente.
func (uc *UseCase) Crear(ctx context.Context, in dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return nil, domain.ErrInvalidInput
	}

	hoy := uc.ahora()
	mes := cartera.MesActual(hoy)

	c := &entity.Cliente{
		Nombre:           strings.ToUpper(strings.TrimSpace(in.Nombre)),
		Direccion:        strings.ToUpper(strings.TrimSpace(in.Direccion)),
		FechaInstalacion: cartera.FormatoFechaCO(hoy),
		Plan:             in.Plan,
		Valor:            in.Valor.Decimal,
		FechaPago:        in.FechaPago,
		MesPagado:        mes,
		Nodo:             in.Nodo,
		TVBox:            in.TVBox,
		Usuario:          in.Usuario,
		PIN:              in.PIN,
		Estado:           entity.EstadoActivo,
		ProximoPago:      cartera.FormatoFechaCO(cartera.FechaProximoPago(mes, 0, hoy)),
		Contacto1:        in.Contacto1,
		Contacto2:        in.Contacto2,
		Correo:           in.Correo,
		Whatsapp1:        in.Whatsapp1,
		Whatsapp2:        in.Whatsapp2,
		Nota:             in.Nota,
		CreatedAt:        hoy,
		UpdatedAt:        hoy,
	}

	id, err := uc.clienteRepo.Crear(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id

	// La bienvenida es de mejor esfuerzo: el alta no se revierte si el envío falla.
	if in.EnviarBienvenida && c.Correo != "" {
		uc.notificarEstado(ctx, ports.AccionBienvenida, c)
	}

	resp := dto.ToClienteResponse(c)
	return &resp, nil
}

// Actualizar reemplaza los datos del cliente. Si el estado cambia, dispara la
// notificación de transición (reconexión o baja). Si mes_pagado cambia a mano,
// recalcula el próximo pago.
func (uc *UseCase) Actualizar(ctx context.Context, id int64, in dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Estado != "" && !esEstadoValido(in.Estado) {
		return nil, domain.ErrInvalidInput
	}
	if in.MesPagado != "" && !cartera.EsMesValido(in.MesPagado) {
		return nil, domain.ErrInvalidInput
	}

	c, err := uc.clienteRepo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}

	estadoPrevio := c.Estado
	mesPrevio := c.MesPagado
	hoy := uc.ahora()

	c.Nombre = strings.ToUpper(strings.TrimSpace(in.Nombre))
	c.Direccion = strings.ToUpper(strings.TrimSpace(in.Direccion))
	c.FechaInstalacion = in.FechaInstalacion
	c.Plan = in.Plan
	c.Valor = in.Valor.Decimal
	c.FechaPago = in.FechaPago
	if in.MesPagado != "" {
		c.MesPagado = strings.ToUpper(strings.TrimSpace(in.MesPagado))
	}
	c.Nodo = in.Nodo
	c.TVBox = in.TVBox
	c.Usuario = in.Usuario
	c.PIN = in.PIN
	if in.Estado != "" {
		c.Estado = in.Estado
	}
	c.UltimoPago = in.UltimoPago
	c.Factura = in.Factura
	c.Contacto1 = in.Contacto1
	c.Contacto2 = in.Contacto2
	c.Correo = in.Correo
	c.Whatsapp1 = in.Whatsapp1
	c.Whatsapp2 = in.Whatsapp2
	c.Nota = in.Nota
	c.UpdatedAt = hoy

	// Cambio manual de mes_pagado: el próximo pago se recalcula salvo que
	// venga explícito en la petición.
	if in.ProximoPago != "" {
		c.ProximoPago = in.ProximoPago
	} else if !strings.EqualFold(mesPrevio, c.MesPagado) {
		c.ProximoPago = cartera.FormatoFechaCO(cartera.FechaProximoPago(c.MesPagado, 0, hoy))
	}

	if err := uc.clienteRepo.Guardar(ctx, c); err != nil {
		return nil, err
	}

	uc.notificarTransicion(ctx, estadoPrevio, c)

	resp := dto.ToClienteResponse(c)
	return &resp, nil
}

// Eliminar borra un cliente de forma permanente. Requiere confirmación
// explícita (?confirmar=true) para evitar bajas accidentales.
func (uc *UseCase) Eliminar(ctx context.Context, id int64, confirmado bool) error {
	if !confirmado {
		return domain.ErrConfirmacionRequerida
	}
	c, err := uc.clienteRepo.ObtenerPorID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if err := uc.clienteRepo.Eliminar(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("cliente_id", id).Str("nombre", c.Nombre).Msg("cliente eliminado")
	return nil
}

// notificarTransicion dispara el correo correspondiente al cambio de estado:
// suspendido -> activo envía reconexión, cualquier estado -> inactivo envía baja.
func (uc *UseCase) notificarTransicion(ctx context.Context, estadoPrevio string, c *entity.Cliente) {
	if estadoPrevio == c.Estado || c.Correo == "" {
		return
	}
	switch {
	case estadoPrevio == entity.EstadoSuspendido && c.EsActivo():
		uc.notificarEstado(ctx, ports.AccionReconexion, c)
	case c.Estado == entity.EstadoInactivo:
		uc.notificarEstado(ctx, ports.AccionBaja, c)
	case c.Estado == entity.EstadoSuspendido:
		uc.notificarEstado(ctx, ports.AccionSuspension, c)
	}
}

func (uc *UseCase) notificarEstado(ctx context.Context, accion string, c *entity.Cliente) {
	cuerpo := map[string]any{
		"nombre":  c.Nombre,
		"correo":  c.Correo,
		"plan":    c.Plan,
		"valor":   cartera.FormatCOP(c.Valor),
		"usuario": c.Usuario,
		"pin":     c.PIN,
	}
	if err := uc.notificador.Enviar(ctx, accion, cuerpo); err != nil {
		uc.log.Warn().Err(err).
			Int64("cliente_id", c.ID).
			Str("accion", accion).
			Msg("no se pudo enviar la notificación de estado")
	}
}

func esEstadoValido(estado string) bool {
	for _, e := range entity.Estados {
		if e == estado {
			return true
		}
	}
	return false
}
