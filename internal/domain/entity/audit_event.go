package entity

import (
	"time"

	"github.com/jhoicas/Phoneshop-api/internal/domain"
)

// Acciones de auditoría registradas por el núcleo. Action es una etiqueta libre;
// estas constantes cubren las mutaciones propias del sistema.
const (
	ActionLogin              = "auth.login"
	ActionLogout             = "auth.logout"
	ActionActorCreated       = "actor.created"
	ActionActorDeactivated   = "actor.deactivated"
	ActionActorReactivated   = "actor.reactivated"
	ActionCreated            = "created"             // <tipo>.created
	ActionTransitioned       = "transitioned"        // <tipo>.transitioned
	ActionTransitionRepeated = "transition_repeated" // <tipo>.transition_repeated
	ActionAssigned           = "assigned"            // <tipo>.assigned
)

// EntityAction compone la etiqueta "<tipo>.<acción>" (ej. "trade_in.created").
func EntityAction(t domain.EntityType, action string) string {
	return string(t) + "." + action
}

// AuditEvent registro inmutable de una acción. Nunca se actualiza ni se borra.
// Orden: CreatedAt, desempate por Seq (orden de inserción).
type AuditEvent struct {
	Seq        int64
	ActorID    string
	Action     string
	EntityType domain.EntityType // "" si la acción no refiere a un registro
	EntityID   string            // "" si no aplica
	Detail     string
	CreatedAt  time.Time
}
