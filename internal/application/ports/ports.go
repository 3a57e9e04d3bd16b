// Package ports define los puertos de salida que usan los casos de uso.
// Los adaptadores concretos viven en internal/infrastructure.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/ports_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción del almacenamiento, pasando
// repositorios atados a esa transacción. Si fn devuelve error se hace Rollback:
// el registro de negocio y su evento de auditoría se confirman juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(store repository.Store) error) error
}

// PasswordHasher verificación de credenciales intercambiable.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare devuelve error si el password no corresponde al hash.
	Compare(hash, password string) error
}

// TokenIssuer emite el token de sesión de un actor autenticado.
type TokenIssuer interface {
	Issue(actor *entity.Actor) (token string, expiresAt time.Time, err error)
}

// WorkflowMetrics contadores operativos de las mutaciones.
type WorkflowMetrics interface {
	EntityCreated(t domain.EntityType)
	Transitioned(t domain.EntityType, from, to string)
	TransitionRejected(t domain.EntityType, reason string)
	AuditRecorded(action string)
}

// ReceiptRenderer genera el comprobante imprimible de una venta.
type ReceiptRenderer interface {
	RenderSale(ctx context.Context, sale *entity.Sale, seller *entity.Actor) ([]byte, error)
}

// NopMetrics implementación vacía para pruebas y herramientas de línea de comandos.
type NopMetrics struct{}

func (NopMetrics) EntityCreated(domain.EntityType)                {}
func (NopMetrics) Transitioned(domain.EntityType, string, string) {}
func (NopMetrics) TransitionRejected(domain.EntityType, string)   {}
func (NopMetrics) AuditRecorded(string)                           {}
