package domain

import "strings"

// Role rol de un actor; fijo desde su creación.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// ParseRole valida un rol recibido como texto.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleOwner, RoleManager, RoleStaff:
		return r, nil
	}
	return "", NewValidationError("role", "debe ser owner, manager o staff")
}

// Predicados de capacidad. No se deducen de un ordinal: Manager asigna
// trabajo pero no administra cuentas, y solo Owner ve utilidades.

// CanViewAllEntities ver registros de todos los actores.
func CanViewAllEntities(r Role) bool { return r == RoleOwner || r == RoleManager }

// CanViewFinancials ver utilidades (profit).
func CanViewFinancials(r Role) bool { return r == RoleOwner }

// CanManageActors administrar cuentas del personal y consultar la auditoría.
func CanManageActors(r Role) bool { return r == RoleOwner }

// CanAssignWork aprobar/rechazar trade-ins y cambiar asignaciones.
func CanAssignWork(r Role) bool { return r == RoleOwner || r == RoleManager }

// CanViewStaffMetrics ver el desglose por empleado del dashboard.
func CanViewStaffMetrics(r Role) bool { return r == RoleOwner || r == RoleManager }

// CanSee regla única de visibilidad para listados, detalle, transiciones y dashboard.
// assigneeID vacío significa sin asignar.
func CanSee(r Role, actorID, ownerID, assigneeID string) bool {
	if CanViewAllEntities(r) {
		return true
	}
	return actorID != "" && (ownerID == actorID || assigneeID == actorID)
}
