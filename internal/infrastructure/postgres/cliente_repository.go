package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/alianzanet/gestion-api/internal/domain"
	"github.com/alianzanet/gestion-api/internal/domain/entity"
	"github.com/alianzanet/gestion-api/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación de ClienteRepository sobre PostgreSQL (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador de clientes. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteColumnas = `
	id, nombre, direccion, fecha_instalacion, plan, valor, fecha_pago,
	mes_pagado, nodo, tvbox, usuario, pin, estado, ultimo_pago, proximo_pago,
	factura, contacto1, contacto2, correo, whatsapp1, whatsapp2, nota,
	ultima_notificacion, created_at, updated_at`

func scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	err := row.Scan(
		&c.ID, &c.Nombre, &c.Direccion, &c.FechaInstalacion, &c.Plan, &c.Valor, &c.FechaPago,
		&c.MesPagado, &c.Nodo, &c.TVBox, &c.Usuario, &c.PIN, &c.Estado, &c.UltimoPago, &c.ProximoPago,
		&c.Factura, &c.Contacto1, &c.Contacto2, &c.Correo, &c.Whatsapp1, &c.Whatsapp2, &c.Nota,
		&c.UltimaNotificacion, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Listar devuelve todos los clientes ordenados por ID.
func (r *ClienteRepo) Listar(ctx context.Context) ([]*entity.Cliente, error) {
	query := `SELECT ` + clienteColumnas + ` FROM clientes ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	defer rows.Close()
	return collectClientes(rows)
}

// ObtenerPorID obtiene un cliente por ID; nil si no existe.
func (r *ClienteRepo) ObtenerPorID(ctx context.Context, id int64) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumnas + ` FROM clientes WHERE id = $1`
	c, err := scanCliente(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener cliente %d: %w", id, err)
	}
	return c, nil
}

// Crear inserta un cliente nuevo y devuelve el ID asignado por la base.
func (r *ClienteRepo) Crear(ctx context.Context, c *entity.Cliente) (int64, error) {
	query := `
		INSERT INTO clientes (
			nombre, direccion, fecha_instalacion, plan, valor, fecha_pago,
			mes_pagado, nodo, tvbox, usuario, pin, estado, ultimo_pago, proximo_pago,
			factura, contacto1, contacto2, correo, whatsapp1, whatsapp2, nota,
			ultima_notificacion, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		) RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		c.Nombre, c.Direccion, c.FechaInstalacion, c.Plan, c.Valor, c.FechaPago,
		c.MesPagado, c.Nodo, c.TVBox, c.Usuario, c.PIN, c.Estado, c.UltimoPago, c.ProximoPago,
		c.Factura, c.Contacto1, c.Contacto2, c.Correo, c.Whatsapp1, c.Whatsapp2, c.Nota,
		c.UltimaNotificacion, c.CreatedAt, c.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert cliente: %w", err)
	}
	return id, nil
}

// Guardar hace upsert por ID: inserta los registros migrados con ID propio y
// actualiza los existentes.
func (r *ClienteRepo) Guardar(ctx context.Context, c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (
			id, nombre, direccion, fecha_instalacion, plan, valor, fecha_pago,
			mes_pagado, nodo, tvbox, usuario, pin, estado, ultimo_pago, proximo_pago,
			factura, contacto1, contacto2, correo, whatsapp1, whatsapp2, nota,
			ultima_notificacion, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25
		)
		ON CONFLICT (id) DO UPDATE SET
			nombre = EXCLUDED.nombre,
			direccion = EXCLUDED.direccion,
			fecha_instalacion = EXCLUDED.fecha_instalacion,
			plan = EXCLUDED.plan,
			valor = EXCLUDED.valor,
			fecha_pago = EXCLUDED.fecha_pago,
			mes_pagado = EXCLUDED.mes_pagado,
			nodo = EXCLUDED.nodo,
			tvbox = EXCLUDED.tvbox,
			usuario = EXCLUDED.usuario,
			pin = EXCLUDED.pin,
			estado = EXCLUDED.estado,
			ultimo_pago = EXCLUDED.ultimo_pago,
			proximo_pago = EXCLUDED.proximo_pago,
			factura = EXCLUDED.factura,
			contacto1 = EXCLUDED.contacto1,
			contacto2 = EXCLUDED.contacto2,
			correo = EXCLUDED.correo,
			whatsapp1 = EXCLUDED.whatsapp1,
			whatsapp2 = EXCLUDED.whatsapp2,
			nota = EXCLUDED.nota,
			ultima_notificacion = EXCLUDED.ultima_notificacion,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Nombre, c.Direccion, c.FechaInstalacion, c.Plan, c.Valor, c.FechaPago,
		c.MesPagado, c.Nodo, c.TVBox, c.Usuario, c.PIN, c.Estado, c.UltimoPago, c.ProximoPago,
		c.Factura, c.Contacto1, c.Contacto2, c.Correo, c.Whatsapp1, c.Whatsapp2, c.Nota,
		c.UltimaNotificacion, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("guardar cliente %d: %w", c.ID, err)
	}
	return nil
}

// Eliminar borra un cliente de forma permanente.
func (r *ClienteRepo) Eliminar(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar cliente %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListarPorMesNoPagado devuelve los clientes cuyo mes_pagado difiere del mes dado.
func (r *ClienteRepo) ListarPorMesNoPagado(ctx context.Context, mes string) ([]*entity.Cliente, error) {
	query := `SELECT ` + clienteColumnas + ` FROM clientes WHERE UPPER(mes_pagado) <> $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, mes)
	if err != nil {
		return nil, fmt.Errorf("listar por mes no pagado: %w", err)
	}
	defer rows.Close()
	return collectClientes(rows)
}

// MarcarNotificado estampa ultima_notificacion.
func (r *ClienteRepo) MarcarNotificado(ctx context.Context, id int64, cuando time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE clientes SET ultima_notificacion = $2 WHERE id = $1`, id, cuando)
	if err != nil {
		return fmt.Errorf("marcar notificado %d: %w", id, err)
	}
	return nil
}

func collectClientes(rows pgx.Rows) ([]*entity.Cliente, error) {
	var out []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar clientes: %w", err)
	}
	return out, nil
}
