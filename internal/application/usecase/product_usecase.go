package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ordenes-inventario/internal/application/dto"
	"github.com/jhoicas/ordenes-inventario/internal/application/ports"
	"github.com/jhoicas/ordenes-inventario/internal/domain"
	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
	"github.com/jhoicas/ordenes-inventario/internal/domain/repository"
)

const defaultUnitMeasure = "UN"

// ProductUseCase casos de uso CRUD para productos. La cantidad se maneja vía el libro de stock.
type ProductUseCase struct {
	store repository.Store
	clock ports.Clock
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(store repository.Store, clock ports.Clock) *ProductUseCase {
	return &ProductUseCase{store: store, clock: clock}
}

// Create crea un nuevo producto con cantidad 0. El SKU es único sin distinguir mayúsculas.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	if in.SKU == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "", "sku y name son requeridos")
	}
	if in.PurchasePrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.NewError(domain.ErrInvalidInput, in.SKU, "los precios no pueden ser negativos")
	}
	existing, err := uc.store.Products().GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewError(domain.ErrDuplicate, existing.ID, "SKU %q ya existe", in.SKU)
	}
	if err := uc.checkRefs(ctx, in.SupplierID, in.LocationID); err != nil {
		return nil, err
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = defaultUnitMeasure
	}
	now := uc.clock.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		UnitMeasure:   in.UnitMeasure,
		SupplierID:    in.SupplierID,
		LocationID:    in.LocationID,
		Quantity:      decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.store.Products().Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewError(domain.ErrProductNotFound, id, "el producto no existe")
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar la cantidad.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewError(domain.ErrProductNotFound, id, "el producto no existe")
	}
	if err := uc.checkRefs(ctx, in.SupplierID, in.LocationID); err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return nil, domain.NewError(domain.ErrInvalidInput, id, "purchase_price no puede ser negativo")
		}
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.NewError(domain.ErrInvalidInput, id, "sale_price no puede ser negativo")
		}
		product.SalePrice = *in.SalePrice
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	if in.SupplierID != nil {
		product.SupplierID = in.SupplierID
	}
	if in.LocationID != nil {
		product.LocationID = in.LocationID
	}
	product.UpdatedAt = uc.clock.Now()
	if err := uc.store.Products().Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.store.Products().List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func (uc *ProductUseCase) checkRefs(ctx context.Context, supplierID, locationID *string) error {
	if supplierID != nil {
		s, err := uc.store.Suppliers().GetByID(ctx, *supplierID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NewError(domain.ErrNotFound, *supplierID, "proveedor no encontrado")
		}
	}
	if locationID != nil {
		l, err := uc.store.Locations().GetByID(ctx, *locationID)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.NewError(domain.ErrNotFound, *locationID, "ubicación no encontrada")
		}
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		UnitMeasure:   p.UnitMeasure,
		SupplierID:    p.SupplierID,
		LocationID:    p.LocationID,
		Quantity:      p.Quantity,
		CreatedAt:     p.CreatedAt,
	}
}
