package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrValidation        = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrConflict          = errors.New("conflicto con el estado actual, reintente")
	ErrStoreUnavailable  = errors.New("almacenamiento no disponible")
)

// ValidationError detalla los campos inválidos de una petición.
// errors.Is(err, ErrValidation) es true.
type ValidationError struct {
	Fields map[string]string // campo -> motivo
}

// NewValidationError crea un error con un único campo.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// TransitionError describe una transición rechazada por la máquina de estados.
// errors.Is(err, ErrInvalidTransition) es true.
type TransitionError struct {
	Entity EntityType
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s: %s", e.Entity, e.From, e.To, ErrInvalidTransition.Error())
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// Unavailable envuelve un fallo de infraestructura como ErrStoreUnavailable conservando la causa.
func Unavailable(op string, cause error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, cause)
}
