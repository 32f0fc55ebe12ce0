package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
	RoleCobrador = "cobrador"
)

// User representa un operador del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, vendedor, cobrador
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
