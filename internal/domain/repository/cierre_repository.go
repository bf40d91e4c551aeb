package repository

import (
	"context"

	"github.com/alianzanet/gestion-api/internal/domain/entity"
)

// CierreRepository define el puerto de persistencia para el historial
// financiero. No hay Update ni Delete: los cierres son de solo-inserción.
type CierreRepository interface {
	Crear(ctx context.Context, c *entity.Cierre) (int64, error)
	// Listar devuelve los cierres ordenados por fecha_registro descendente.
	Listar(ctx context.Context) ([]*entity.Cierre, error)
	// ExistePeriodo indica si ya hay un cierre para (mes, año).
	ExistePeriodo(ctx context.Context, mes string, ano int) (bool, error)
}
