package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ordenes-inventario/internal/domain"
	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
	"github.com/jhoicas/ordenes-inventario/internal/domain/repository"
	"github.com/jhoicas/ordenes-inventario/internal/infrastructure/memory"
)

func TestRun_RollbackRestauraEstado(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	store := db.Store()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", SKU: "A-1", Quantity: decimal.NewFromInt(3)}))

	boom := errors.New("boom")
	err := db.Run(ctx, func(tx repository.Store) error {
		if err := tx.Products().UpdateQuantity(ctx, "p1", decimal.NewFromInt(99), time.Now()); err != nil {
			return err
		}
		if err := tx.Movements().Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "p1"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.Quantity.Equal(decimal.NewFromInt(3)), "el rollback debe restaurar la cantidad")
	m, err := store.Movements().GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Nil(t, m, "el movimiento no debe persistir tras rollback")
}

func TestRun_CommitPersiste(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	require.NoError(t, db.Run(ctx, func(tx repository.Store) error {
		return tx.Suppliers().Create(ctx, &entity.Supplier{ID: "s1", Name: "Proveedor"})
	}))
	s, err := db.Store().Suppliers().GetByID(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Proveedor", s.Name)
}

func TestProducts_SKUUnicoSinMayusculas(t *testing.T) {
	ctx := context.Background()
	store := memory.New().Store()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", SKU: "abc-1"}))
	err := store.Products().Create(ctx, &entity.Product{ID: "p2", SKU: "ABC-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	found, err := store.Products().GetBySKU(ctx, "Abc-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "p1", found.ID)
}

func TestProducts_UpdateNoTocaCantidad(t *testing.T) {
	ctx := context.Background()
	store := memory.New().Store()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", SKU: "X", Quantity: decimal.NewFromInt(7)}))
	require.NoError(t, store.Products().Update(ctx, &entity.Product{ID: "p1", SKU: "X", Name: "nuevo", Quantity: decimal.Zero}))

	p, _ := store.Products().GetByID(ctx, "p1")
	assert.Equal(t, "nuevo", p.Name)
	assert.True(t, p.Quantity.Equal(decimal.NewFromInt(7)))
}

func TestMovements_ListByProductMasRecientesPrimero(t *testing.T) {
	ctx := context.Background()
	store := memory.New().Store()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"m1", "m2", "m3"} {
		require.NoError(t, store.Movements().Create(ctx, &entity.StockMovement{
			ID: id, ProductID: "p1", Date: base.AddDate(0, 0, i), Quantity: decimal.NewFromInt(1),
		}))
	}
	list, err := store.Movements().ListByProduct(ctx, "p1", nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "m3", list[0].ID)
	assert.Equal(t, "m1", list[2].ID)

	from := base.AddDate(0, 0, 1)
	list, err = store.Movements().ListByProduct(ctx, "p1", &from, nil, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestPurchaseOrders_DeleteBorraLineas(t *testing.T) {
	ctx := context.Background()
	store := memory.New().Store()
	require.NoError(t, store.PurchaseOrders().Create(ctx, &entity.PurchaseOrder{ID: "po1"}))
	require.NoError(t, store.PurchaseOrders().CreateLine(ctx, &entity.PurchaseOrderLine{ID: "l1", OrderID: "po1"}))

	po, _ := store.PurchaseOrders().GetByID(ctx, "po1")
	require.Len(t, po.Lines, 1)

	require.NoError(t, store.PurchaseOrders().Delete(ctx, "po1"))
	po, _ = store.PurchaseOrders().GetByID(ctx, "po1")
	assert.Nil(t, po)
}
