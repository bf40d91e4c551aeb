package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alianzanet/gestion-api/internal/domain"
	"github.com/alianzanet/gestion-api/internal/domain/entity"
	"github.com/alianzanet/gestion-api/internal/domain/repository"
)

var _ repository.CierreRepository = (*CierreRepo)(nil)

// CierreRepo implementación de CierreRepository sobre PostgreSQL.
// La tabla historial es de solo-inserción; el constraint único (mes_ref,
// ano_ref) respalda la regla de un cierre por período.
type CierreRepo struct {
	q Querier
}

// NewCierreRepository construye el adaptador del historial financiero.
func NewCierreRepository(q Querier) *CierreRepo {
	return &CierreRepo{q: q}
}

// Crear inserta un cierre y devuelve el ID asignado.
func (r *CierreRepo) Crear(ctx context.Context, c *entity.Cierre) (int64, error) {
	query := `
		INSERT INTO historial (mes_ref, ano_ref, ingresos, gastos, utilidad, notas, fecha_registro)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		c.MesRef, c.AnoRef, c.Ingresos, c.Gastos, c.Utilidad, c.Notas, c.FechaRegistro,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert cierre: %w", err)
	}
	return id, nil
}

// Listar devuelve los cierres del más reciente al más antiguo.
func (r *CierreRepo) Listar(ctx context.Context) ([]*entity.Cierre, error) {
	query := `
		SELECT id, mes_ref, ano_ref, ingresos, gastos, utilidad, notas, fecha_registro
		FROM historial ORDER BY fecha_registro DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar historial: %w", err)
	}
	defer rows.Close()

	var out []*entity.Cierre
	for rows.Next() {
		var c entity.Cierre
		if err := rows.Scan(&c.ID, &c.MesRef, &c.AnoRef, &c.Ingresos, &c.Gastos, &c.Utilidad, &c.Notas, &c.FechaRegistro); err != nil {
			return nil, fmt.Errorf("scan cierre: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar historial: %w", err)
	}
	return out, nil
}

// ExistePeriodo indica si ya hay un cierre para (mes, año).
func (r *CierreRepo) ExistePeriodo(ctx context.Context, mes string, ano int) (bool, error) {
	var uno int
	err := r.q.QueryRow(ctx, `SELECT 1 FROM historial WHERE mes_ref = $1 AND ano_ref = $2`, mes, ano).Scan(&uno)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("existe período: %w", err)
	}
	return true, nil
}
