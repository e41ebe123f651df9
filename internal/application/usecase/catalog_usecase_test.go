package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ordenes-inventario/internal/application/dto"
	"github.com/jhoicas/ordenes-inventario/internal/application/ports"
	"github.com/jhoicas/ordenes-inventario/internal/application/usecase"
	"github.com/jhoicas/ordenes-inventario/internal/domain"
	"github.com/jhoicas/ordenes-inventario/internal/infrastructure/memory"
)

var clock = ports.FixedClock{At: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}

func strPtr(s string) *string { return &s }

func TestProductCreate_SKUDuplicadoSinMayusculas(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.New().Store(), clock)

	p, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "tor-01", Name: "Tornillo", SalePrice: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.True(t, p.Quantity.IsZero(), "todo producto nace sin stock")
	assert.Equal(t, "UN", p.UnitMeasure)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "  TOR-01 ", Name: "Otro"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	assert.Equal(t, p.ID, domain.ResourceID(err))
}

func TestProductCreate_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.New().Store(), clock)

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Sin SKU"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "X", Name: "X", SalePrice: decimal.NewFromInt(-1)})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "X", Name: "X", LocationID: strPtr("nope")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "nope", domain.ResourceID(err))
}

func TestProductUpdate_NoTocaCantidad(t *testing.T) {
	ctx := context.Background()
	store := memory.New().Store()
	products := usecase.NewProductUseCase(store, clock)
	locations := usecase.NewLocationUseCase(store, clock)

	loc, err := locations.Create(ctx, dto.CreateLocationRequest{Name: "Bodega"})
	require.NoError(t, err)
	p, err := products.Create(ctx, dto.CreateProductRequest{SKU: "A", Name: "A"})
	require.NoError(t, err)
	require.NoError(t, store.Products().UpdateQuantity(ctx, p.ID, decimal.NewFromInt(7), clock.Now()))

	name := "Nuevo nombre"
	out, err := products.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name, LocationID: &loc.ID})
	require.NoError(t, err)
	assert.Equal(t, name, out.Name)
	require.NotNil(t, out.LocationID)
	assert.Equal(t, loc.ID, *out.LocationID)
	assert.True(t, out.Quantity.Equal(decimal.NewFromInt(7)))

	_, err = products.Update(ctx, "nope", dto.UpdateProductRequest{Name: &name})
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
}

func TestSuppliersYClientes(t *testing.T) {
	ctx := context.Background()
	store := memory.New().Store()
	suppliers := usecase.NewSupplierUseCase(store, clock)
	customers := usecase.NewCustomerUseCase(store, clock)

	s, err := suppliers.Create(ctx, dto.CreatePartyRequest{Name: "Ferretería Sur", TaxID: "76.123.456-7"})
	require.NoError(t, err)
	got, err := suppliers.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ferretería Sur", got.Name)

	_, err = customers.Create(ctx, dto.CreatePartyRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = customers.Create(ctx, dto.CreatePartyRequest{Name: "Cliente"})
	require.NoError(t, err)
	list, err := customers.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = customers.GetByID(ctx, "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
