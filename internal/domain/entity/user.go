package entity

import "time"

// Roles válidos para User.
const (
	RoleAgent   = "Agent"
	RoleManager = "Manager"
	RoleAdmin   = "Admin"
)

// ValidRole indica si el rol pertenece a la taxonomía conocida.
func ValidRole(role string) bool {
	switch role {
	case RoleAgent, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User representa un usuario del sistema. BrandIDs es su conjunto de marcas
// habilitadas (Admin accede a todas sin importar la lista). Nunca se elimina:
// solo se desactiva (IsActive = false).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // Agent, Manager, Admin
	BrandIDs     []string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
