package entity

import "time"

// Roles de los usuarios del panel.
const (
	RolAdmin    = "admin"
	RolOperador = "operador"
)

// Usuario es un operador del panel de gestión. Reemplaza la lista de
// credenciales embebida del sistema anterior: el hash bcrypt vive en la DB y
// la sesión es un JWT con expiración, no una bandera local permanente.
type Usuario struct {
	ID           string // UUID
	Username     string
	PasswordHash string
	Nombre       string
	Rol          string // "admin" | "operador"
	Estado       string // "active" | "disabled"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
