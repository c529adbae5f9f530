package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User cuenta de la aplicación. El password nunca sale del dominio: solo el hash.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // "admin" | "user"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
