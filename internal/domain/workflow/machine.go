// Package workflow define las máquinas de estado de los registros de negocio.
// Cada tabla es un mapa tipado: un estado fuera del enum no compila.
package workflow

import (
	"github.com/jhoicas/Phoneshop-api/internal/domain"
)

// Machine tabla de transiciones dirigida para un tipo de estado.
type Machine[S ~string] struct {
	entity  domain.EntityType
	initial S
	edges   map[S][]S
}

func newMachine[S ~string](entity domain.EntityType, initial S, edges map[S][]S) Machine[S] {
	return Machine[S]{entity: entity, initial: initial, edges: edges}
}

// Entity tipo de registro que gobierna la máquina.
func (m Machine[S]) Entity() domain.EntityType { return m.entity }

// Initial estado con el que se crea todo registro.
func (m Machine[S]) Initial() S { return m.initial }

// Known informa si s pertenece al enum.
func (m Machine[S]) Known(s S) bool {
	_, ok := m.edges[s]
	return ok
}

// IsTerminal un estado sin salidas.
func (m Machine[S]) IsTerminal(s S) bool {
	next, ok := m.edges[s]
	return ok && len(next) == 0
}

// CanTransition true si la arista from -> to existe en la tabla.
func (m Machine[S]) CanTransition(from, to S) bool {
	for _, n := range m.edges[from] {
		if n == to {
			return true
		}
	}
	return false
}

// Check devuelve *domain.TransitionError si la arista no existe.
// from == to no es arista salvo que la tabla lo declare (seguimiento recurrente de leads).
func (m Machine[S]) Check(from, to S) error {
	if !m.Known(to) || !m.CanTransition(from, to) {
		return &domain.TransitionError{Entity: m.entity, From: string(from), To: string(to)}
	}
	return nil
}

// Parse convierte texto en estado validando que pertenezca al enum.
func (m Machine[S]) Parse(s string) (S, error) {
	st := S(s)
	if !m.Known(st) {
		return "", domain.NewValidationError("status", "estado desconocido para "+string(m.entity)+": "+s)
	}
	return st, nil
}

// States devuelve los estados declarados (orden no garantizado).
func (m Machine[S]) States() []S {
	out := make([]S, 0, len(m.edges))
	for s := range m.edges {
		out = append(out, s)
	}
	return out
}

// Open estados no terminales.
func (m Machine[S]) Open() []S {
	var out []S
	for s, next := range m.edges {
		if len(next) > 0 {
			out = append(out, s)
		}
	}
	return out
}
