package entity

import "time"

// Roles de usuario. El rol admin se asigna en login si el email está en la
// lista de administradores configurada (ADMIN_EMAILS).
const (
	RoleCustomer = "cliente"
	RoleAdmin    = "admin"
)

// User cuenta de cliente o administrador.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
