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

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación de UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de usuarios del panel.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// Crear persiste un nuevo usuario.
func (r *UsuarioRepo) Crear(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, username, password_hash, nombre, rol, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Username, u.PasswordHash, u.Nombre, u.Rol, u.Estado, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// BuscarPorUsername obtiene un usuario por username; nil si no existe.
func (r *UsuarioRepo) BuscarPorUsername(ctx context.Context, username string) (*entity.Usuario, error) {
	query := `
		SELECT id, username, password_hash, nombre, rol, estado, created_at, updated_at
		FROM usuarios WHERE username = $1`
	var u entity.Usuario
	err := r.q.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Nombre, &u.Rol, &u.Estado, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar usuario %s: %w", username, err)
	}
	return &u, nil
}
