package purchasing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ordenes-inventario/internal/application/dto"
	"github.com/jhoicas/ordenes-inventario/internal/application/ports"
	"github.com/jhoicas/ordenes-inventario/internal/domain"
	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
	"github.com/jhoicas/ordenes-inventario/internal/domain/repository"
)

// SupplierProductUseCase mantiene el vínculo proveedor-producto (último precio y fecha de compra).
type SupplierProductUseCase struct {
	store repository.Store
	clock ports.Clock
}

// NewSupplierProductUseCase construye el caso de uso.
func NewSupplierProductUseCase(store repository.Store, clock ports.Clock) *SupplierProductUseCase {
	return &SupplierProductUseCase{store: store, clock: clock}
}

// UpsertLink crea o actualiza el vínculo del par (proveedor, producto).
func (uc *SupplierProductUseCase) UpsertLink(ctx context.Context, in dto.UpsertSupplierProductRequest) (*dto.SupplierProductResponse, error) {
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.NewError(domain.ErrInvalidInput, in.ProductID, "el precio no puede ser negativo")
	}
	supplier, err := uc.store.Suppliers().GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.NewError(domain.ErrNotFound, in.SupplierID, "proveedor no encontrado")
	}
	product, err := uc.store.Products().GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewError(domain.ErrProductNotFound, in.ProductID, "el producto no existe")
	}
	link := &entity.SupplierProduct{
		SupplierID:       in.SupplierID,
		ProductID:        in.ProductID,
		Price:            in.Price,
		LastPurchaseDate: in.LastPurchaseDate,
		UpdatedAt:        uc.clock.Now(),
	}
	if err := uc.store.SupplierProducts().Upsert(ctx, link); err != nil {
		return nil, err
	}
	return toSupplierProductResponse(link), nil
}

// GetLink obtiene el vínculo del par.
func (uc *SupplierProductUseCase) GetLink(ctx context.Context, supplierID, productID string) (*dto.SupplierProductResponse, error) {
	link, err := uc.store.SupplierProducts().Get(ctx, supplierID, productID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.NewError(domain.ErrNotFound, productID, "el producto no está vinculado al proveedor")
	}
	return toSupplierProductResponse(link), nil
}

// ListBySupplier productos vinculados a un proveedor.
func (uc *SupplierProductUseCase) ListBySupplier(ctx context.Context, supplierID string) ([]*dto.SupplierProductResponse, error) {
	list, err := uc.store.SupplierProducts().ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return toSupplierProductList(list), nil
}

// ListByProduct proveedores vinculados a un producto.
func (uc *SupplierProductUseCase) ListByProduct(ctx context.Context, productID string) ([]*dto.SupplierProductResponse, error) {
	list, err := uc.store.SupplierProducts().ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toSupplierProductList(list), nil
}
