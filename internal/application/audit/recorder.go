// Package audit registra y consulta el historial inmutable de acciones.
package audit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/Phoneshop-api/internal/application/ports"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

// Entry datos de un evento a registrar.
type Entry struct {
	ActorID    string
	Action     string
	EntityType domain.EntityType
	EntityID   string
	Detail     string
	At         time.Time
}

// Recorder escribe eventos de auditoría con el Store de la transacción en curso.
type Recorder struct {
	metrics ports.WorkflowMetrics
}

// NewRecorder construye el registrador. metrics nil = sin métricas.
func NewRecorder(metrics ports.WorkflowMetrics) *Recorder {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Recorder{metrics: metrics}
}

// Record agrega el evento. Cualquier fallo se reporta como ErrStoreUnavailable
// (o ErrConflict) y debe abortar la transacción que lo contiene.
func (r *Recorder) Record(ctx context.Context, store repository.Store, in Entry) (*entity.AuditEvent, error) {
	if strings.TrimSpace(in.ActorID) == "" || strings.TrimSpace(in.Action) == "" {
		return nil, domain.NewValidationError("action", "evento sin actor o acción")
	}
	ev := &entity.AuditEvent{
		ActorID:    in.ActorID,
		Action:     in.Action,
		EntityType: in.EntityType,
		EntityID:   in.EntityID,
		Detail:     in.Detail,
		CreatedAt:  in.At,
	}
	if err := store.Audit().Append(ctx, ev); err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) || errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, domain.Unavailable("audit append", err)
	}
	return ev, nil
}

// Committed publica las métricas de eventos ya confirmados.
func (r *Recorder) Committed(events ...*entity.AuditEvent) {
	for _, ev := range events {
		if ev != nil {
			r.metrics.AuditRecorded(ev.Action)
		}
	}
}
