// Package workflow contiene los casos de uso que crean y mutan registros de negocio:
// alta con número consecutivo, transiciones de estado y asignaciones. Cada mutación
// escribe su evento de auditoría en la misma transacción.
package workflow

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Phoneshop-api/internal/application/audit"
	"github.com/jhoicas/Phoneshop-api/internal/application/ports"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
	"github.com/jhoicas/Phoneshop-api/pkg/clock"
	"github.com/jhoicas/Phoneshop-api/pkg/logger"
)

// UseCase lado de escritura de trade-ins, reparaciones, leads, domicilios y ventas.
type UseCase struct {
	tx       ports.TxRunner
	recorder *audit.Recorder
	clock    clock.Clock
	metrics  ports.WorkflowMetrics
	log      *logger.Logger
}

// NewUseCase construye el caso de uso. metrics nil = sin métricas.
func NewUseCase(tx ports.TxRunner, recorder *audit.Recorder, clk clock.Clock, metrics ports.WorkflowMetrics, log *logger.Logger) *UseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &UseCase{tx: tx, recorder: recorder, clock: clk, metrics: metrics, log: log}
}

// nextNumber reserva el siguiente número de negocio del tipo dentro de la transacción.
func nextNumber(ctx context.Context, s repository.Store, t domain.EntityType) (string, error) {
	issued, err := s.Sequences().Next(ctx, t)
	if err != nil {
		return "", err
	}
	return domain.FormatBusinessNumber(t, issued)
}

// checkAssignee valida una asignación: solo roles con CanAssignWork asignan a
// otros, cualquiera puede tomar el registro para sí. El asignado debe estar activo.
func checkAssignee(ctx context.Context, s repository.Store, actor *entity.Actor, assigneeID string) error {
	if assigneeID == "" {
		return nil
	}
	if assigneeID != actor.ID && !domain.CanAssignWork(actor.Role) {
		return domain.ErrForbidden
	}
	assignee, err := s.Actors().GetByID(ctx, assigneeID)
	if err != nil {
		return err
	}
	if assignee == nil || !assignee.Active {
		return domain.NewValidationError("assignee_id", "el asignado debe ser un actor activo")
	}
	return nil
}

func nonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return domain.NewValidationError(field, "no puede ser negativo")
	}
	return nil
}

func transitionDetail(number, from, to, note string) string {
	d := fmt.Sprintf("%s: %s -> %s", number, from, to)
	if note != "" {
		d += " (" + note + ")"
	}
	return d
}
