package repository

import (
	"context"

	"github.com/alianzanet/gestion-api/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para los operadores del panel.
type UsuarioRepository interface {
	Crear(ctx context.Context, u *entity.Usuario) error
	BuscarPorUsername(ctx context.Context, username string) (*entity.Usuario, error)
}
