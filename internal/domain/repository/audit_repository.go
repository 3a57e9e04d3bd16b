package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
)

// AuditKey llave estrictamente monótona de paginación (CreatedAt, Seq).
type AuditKey struct {
	CreatedAt time.Time
	Seq       int64
}

// AuditFilter filtros de consulta del registro de auditoría. Campos vacíos no filtran.
type AuditFilter struct {
	EntityType domain.EntityType
	EntityID   string
	ActorID    string
	Action     string
	Since      *time.Time
	Before     *AuditKey // keyset: solo eventos estrictamente anteriores a la llave
}

// AuditRepository registro append-only. No expone Update ni Delete.
type AuditRepository interface {
	// Append inserta el evento y asigna Seq. Un fallo aquí debe abortar la mutación.
	Append(ctx context.Context, event *entity.AuditEvent) error
	// List devuelve hasta limit eventos, del más reciente al más antiguo.
	List(ctx context.Context, filter AuditFilter, limit int) ([]*entity.AuditEvent, error)
	// CountFor cuenta eventos de un registro (reconciliación y pruebas).
	CountFor(ctx context.Context, entityType domain.EntityType, entityID string) (int, error)
}
