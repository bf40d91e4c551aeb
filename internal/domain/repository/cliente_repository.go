package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alianzanet/gestion-api/internal/domain/entity"
)

// ClienteRepository define el puerto de persistencia para Cliente.
type ClienteRepository interface {
	// Listar devuelve todos los clientes ordenados por ID ascendente.
	Listar(ctx context.Context) ([]*entity.Cliente, error)
	ObtenerPorID(ctx context.Context, id int64) (*entity.Cliente, error)
	// Crear inserta un cliente nuevo; el ID lo asigna la base de datos.
	Crear(ctx context.Context, c *entity.Cliente) (int64, error)
	// Guardar hace upsert por identidad (INSERT ... ON CONFLICT (id) DO UPDATE).
	Guardar(ctx context.Context, c *entity.Cliente) error
	Eliminar(ctx context.Context, id int64) error
	// ListarPorMesNoPagado devuelve los clientes cuyo mes_pagado difiere del mes dado.
	ListarPorMesNoPagado(ctx context.Context, mes string) ([]*entity.Cliente, error)
	// MarcarNotificado estampa ultima_notificacion (alimenta el enfriamiento de escalamiento).
	MarcarNotificado(ctx context.Context, id int64, cuando time.Time) error
}

// ClienteMetricasRepository consultas agregadas de solo lectura para el dashboard.
type ClienteMetricasRepository interface {
	ContarPorEstado(ctx context.Context) (map[string]int, error)
	ContarPorNodo(ctx context.Context) (map[string]int, error)
	// IngresoProyectado suma las cuotas mensuales de todos los clientes.
	IngresoProyectado(ctx context.Context) (total decimal.Decimal, clientes int, err error)
	ContarMorosos(ctx context.Context, mes string) (int, error)
}
