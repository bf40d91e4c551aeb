package dto

import (
	"time"

	"github.com/alianzanet/gestion-api/internal/domain/entity"
)

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest entrada para registrar un usuario del panel (solo admin).
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Nombre   string `json:"nombre" validate:"omitempty,max=200"`
	Rol      string `json:"rol" validate:"omitempty,oneof=admin operador"`
}

// UsuarioResponse salida de un usuario (sin password).
type UsuarioResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Nombre    string    `json:"nombre"`
	Rol       string    `json:"rol"`
	Estado    string    `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}

// ToUsuarioResponse mapea la entidad a su representación HTTP.
func ToUsuarioResponse(u *entity.Usuario) UsuarioResponse {
	return UsuarioResponse{
		ID:        u.ID,
		Username:  u.Username,
		Nombre:    u.Nombre,
		Rol:       u.Rol,
		Estado:    u.Estado,
		CreatedAt: u.CreatedAt,
	}
}
