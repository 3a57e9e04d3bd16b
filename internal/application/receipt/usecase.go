// Package receipt genera el comprobante imprimible de una venta.
package receipt

import (
	"context"

	"github.com/jhoicas/Phoneshop-api/internal/application/ports"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
	"github.com/jhoicas/Phoneshop-api/internal/domain/entity"
	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

// ReceiptUseCase orquesta la lectura de la venta y la generación del PDF.
type ReceiptUseCase struct {
	store    repository.Store
	renderer ports.ReceiptRenderer
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(store repository.Store, renderer ports.ReceiptRenderer) *ReceiptUseCase {
	return &ReceiptUseCase{store: store, renderer: renderer}
}

// SaleReceipt devuelve el PDF y el número de la venta. Aplica la regla de visibilidad.
func (uc *ReceiptUseCase) SaleReceipt(ctx context.Context, actor *entity.Actor, saleID string) ([]byte, string, error) {
	if err := actor.EnsureActive(); err != nil {
		return nil, "", err
	}
	sale, err := uc.store.Sales().GetByID(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}
	if !actor.CanSee(sale.OwnerID, "") {
		return nil, "", domain.ErrForbidden
	}
	seller, err := uc.store.Actors().GetByID(ctx, sale.OwnerID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.renderer.RenderSale(ctx, sale, seller)
	if err != nil {
		return nil, "", err
	}
	return pdf, sale.Number, nil
}
