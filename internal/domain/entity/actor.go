package entity

import (
	"time"

	"github.com/jhoicas/Phoneshop-api/internal/domain"
)

// Actor representa a un miembro del personal autenticado.
// El rol se fija al crear la cuenta; Active se puede alternar.
type Actor struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string // hash producido por el PasswordHasher, nunca texto plano
	Role         domain.Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanSee aplica la regla de visibilidad del actor sobre un registro.
func (a *Actor) CanSee(ownerID, assigneeID string) bool {
	return a != nil && domain.CanSee(a.Role, a.ID, ownerID, assigneeID)
}

// EnsureActive rechaza actores nulos (ErrUnauthorized) o desactivados (ErrForbidden).
func (a *Actor) EnsureActive() error {
	if a == nil || a.ID == "" {
		return domain.ErrUnauthorized
	}
	if !a.Active {
		return domain.ErrForbidden
	}
	return nil
}
