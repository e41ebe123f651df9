package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ordenes-inventario/internal/application/dto"
	"github.com/jhoicas/ordenes-inventario/internal/application/inventory"
	"github.com/jhoicas/ordenes-inventario/internal/application/ports"
	"github.com/jhoicas/ordenes-inventario/internal/application/sales"
	"github.com/jhoicas/ordenes-inventario/internal/domain"
	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
	"github.com/jhoicas/ordenes-inventario/internal/infrastructure/memory"
	"github.com/jhoicas/ordenes-inventario/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	db     *memory.DB
	ledger *inventory.StockLedger
	uc     *sales.SalesOrderUseCase
}

// newFixture crea un cliente c1 y los productos p1 (stock 10) y p2 (stock 2).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memory.New()
	clock := ports.FixedClock{At: testNow}
	ledger := inventory.NewStockLedger(db, db.Store(), clock, nil, logger.Nop())
	ctx := context.Background()
	require.NoError(t, db.Store().Customers().Create(ctx, &entity.Customer{ID: "c1", Name: "Cliente Uno"}))
	require.NoError(t, db.Store().Products().Create(ctx, &entity.Product{ID: "p1", SKU: "A-1", Name: "Tornillo"}))
	require.NoError(t, db.Store().Products().Create(ctx, &entity.Product{ID: "p2", SKU: "A-2", Name: "Tuerca"}))
	for id, n := range map[string]int64{"p1": 10, "p2": 2} {
		_, err := ledger.RegisterEntry(ctx, inventory.EntryInput{ProductID: id, Quantity: qty(n), Reason: "Inventario inicial"})
		require.NoError(t, err)
	}
	return &fixture{
		db:     db,
		ledger: ledger,
		uc:     sales.NewSalesOrderUseCase(db, db.Store(), ledger, clock, logger.Nop()),
	}
}

func (f *fixture) stock(t *testing.T, productID string) decimal.Decimal {
	t.Helper()
	q, err := f.ledger.GetStock(context.Background(), productID)
	require.NoError(t, err)
	return q
}

func (f *fixture) exits(t *testing.T, productID string) int {
	t.Helper()
	movs, err := f.ledger.ListMovements(context.Background(), productID, nil, nil, 100, 0)
	require.NoError(t, err)
	n := 0
	for _, m := range movs {
		if m.Kind == entity.MovementExit {
			n++
		}
	}
	return n
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func boolPtr(b bool) *bool { return &b }

func line(productID string, n int64) dto.OrderLineRequest {
	return dto.OrderLineRequest{ProductID: productID, Quantity: qty(n), UnitPrice: decimal.NewFromInt(250)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ConfirmadaDescuentaStock(t *testing.T) {
	f := newFixture(t)

	res, err := f.uc.Create(context.Background(), dto.CreateSalesOrderRequest{
		CustomerID: "c1",
		Lines:      []dto.OrderLineRequest{line("p1", 5)},
	})
	require.NoError(t, err)

	assert.Equal(t, "CONFIRMED", res.Status)
	assert.True(t, res.StockApplied)
	assert.True(t, res.Total.Equal(decimal.NewFromInt(1250)))
	assert.True(t, f.stock(t, "p1").Equal(qty(5)))
	assert.Equal(t, 1, f.exits(t, "p1"))
}

func TestCreate_StockInsuficienteNoPersisteNada(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), dto.CreateSalesOrderRequest{
		CustomerID: "c1",
		Lines:      []dto.OrderLineRequest{line("p1", 3), line("p2", 999)},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, "p2", domain.ResourceID(err))

	assert.True(t, f.stock(t, "p1").Equal(qty(10)), "la salida de p1 debe deshacerse")
	assert.True(t, f.stock(t, "p2").Equal(qty(2)))
	list, err := f.uc.ListByCustomer(context.Background(), "c1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list, "no debe quedar ninguna orden de venta")
}

func TestCreate_PendienteOSinApplyNoMueveStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending, err := f.uc.Create(ctx, dto.CreateSalesOrderRequest{
		CustomerID: "c1", Status: "Pendiente", Lines: []dto.OrderLineRequest{line("p1", 4)},
	})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", pending.Status)
	assert.False(t, pending.StockApplied)

	paid, err := f.uc.Create(ctx, dto.CreateSalesOrderRequest{
		CustomerID: "c1", Status: "PAID", ApplyToStock: boolPtr(false), Lines: []dto.OrderLineRequest{line("p1", 4)},
	})
	require.NoError(t, err)
	assert.False(t, paid.StockApplied)

	assert.True(t, f.stock(t, "p1").Equal(qty(10)))
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateSalesOrderRequest
		id   string
	}{
		{"cliente inexistente", dto.CreateSalesOrderRequest{CustomerID: "nope", Lines: []dto.OrderLineRequest{line("p1", 1)}}, "nope"},
		{"sin líneas", dto.CreateSalesOrderRequest{CustomerID: "c1"}, ""},
		{"cantidad cero", dto.CreateSalesOrderRequest{CustomerID: "c1", Lines: []dto.OrderLineRequest{line("p1", 0)}}, "p1"},
		{"precio cero", dto.CreateSalesOrderRequest{CustomerID: "c1", Lines: []dto.OrderLineRequest{{ProductID: "p1", Quantity: qty(1)}}}, "p1"},
		{"producto inexistente", dto.CreateSalesOrderRequest{CustomerID: "c1", Lines: []dto.OrderLineRequest{line("px", 1)}}, "px"},
		{"estado no creable", dto.CreateSalesOrderRequest{CustomerID: "c1", Status: "CANCELLED", Lines: []dto.OrderLineRequest{line("p1", 1)}}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, tc.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrSales), "esperado ErrSales, obtenido %v", err)
			assert.Equal(t, tc.id, domain.ResourceID(err))
		})
	}
	assert.True(t, f.stock(t, "p1").Equal(qty(10)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancel / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_DevuelveStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	so, err := f.uc.Create(ctx, dto.CreateSalesOrderRequest{CustomerID: "c1", Lines: []dto.OrderLineRequest{line("p1", 5)}})
	require.NoError(t, err)
	require.True(t, f.stock(t, "p1").Equal(qty(5)))

	res, err := f.uc.Cancel(ctx, so.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", res.Status)
	assert.False(t, res.StockApplied)
	assert.True(t, f.stock(t, "p1").Equal(qty(10)))

	// Segunda anulación: no-op, no vuelve a sumar.
	_, err = f.uc.Cancel(ctx, so.ID, true)
	require.NoError(t, err)
	assert.True(t, f.stock(t, "p1").Equal(qty(10)))
}

func TestCancel_SinRevertirOSinStockAplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	confirmed, err := f.uc.Create(ctx, dto.CreateSalesOrderRequest{CustomerID: "c1", Lines: []dto.OrderLineRequest{line("p1", 5)}})
	require.NoError(t, err)
	_, err = f.uc.Cancel(ctx, confirmed.ID, false)
	require.NoError(t, err)
	assert.True(t, f.stock(t, "p1").Equal(qty(5)), "sin revertir el stock queda descontado")

	notApplied, err := f.uc.Create(ctx, dto.CreateSalesOrderRequest{
		CustomerID: "c1", ApplyToStock: boolPtr(false), Lines: []dto.OrderLineRequest{line("p1", 3)},
	})
	require.NoError(t, err)
	_, err = f.uc.Cancel(ctx, notApplied.ID, true)
	require.NoError(t, err)
	assert.True(t, f.stock(t, "p1").Equal(qty(5)), "no se devuelve lo que nunca salió")
}

func TestCancel_OrdenInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Cancel(context.Background(), "nope", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSales))
	assert.Equal(t, "nope", domain.ResourceID(err))
}

func TestDelete_BorradoLogicoConReversion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	so, err := f.uc.Create(ctx, dto.CreateSalesOrderRequest{CustomerID: "c1", Lines: []dto.OrderLineRequest{line("p1", 4)}})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(ctx, so.ID, true))
	assert.True(t, f.stock(t, "p1").Equal(qty(10)))

	got, err := f.uc.GetByID(ctx, so.ID)
	require.NoError(t, err, "la fila se conserva")
	assert.Equal(t, "ELIMINATED", got.Status)

	// Idempotente: ni la orden eliminada ni una inexistente fallan ni mueven stock.
	require.NoError(t, f.uc.Delete(ctx, so.ID, true))
	require.NoError(t, f.uc.Delete(ctx, "nope", true))
	assert.True(t, f.stock(t, "p1").Equal(qty(10)))
}

func TestDelete_AnuladaNoSePuedeEliminar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	so, err := f.uc.Create(ctx, dto.CreateSalesOrderRequest{CustomerID: "c1", Lines: []dto.OrderLineRequest{line("p1", 1)}})
	require.NoError(t, err)
	_, err = f.uc.Cancel(ctx, so.ID, true)
	require.NoError(t, err)

	err = f.uc.Delete(ctx, so.ID, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSales))
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirm / RegisterPayment
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirm_DescuentaUnaSolaVez(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	so, err := f.uc.Create(ctx, dto.CreateSalesOrderRequest{CustomerID: "c1", Status: "RESERVED", Lines: []dto.OrderLineRequest{line("p1", 6)}})
	require.NoError(t, err)
	require.True(t, f.stock(t, "p1").Equal(qty(10)))

	res, err := f.uc.Confirm(ctx, so.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", res.Status)
	assert.True(t, f.stock(t, "p1").Equal(qty(4)))

	res, err = f.uc.RegisterPayment(ctx, so.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "PAID", res.Status)
	assert.True(t, f.stock(t, "p1").Equal(qty(4)), "el pago no vuelve a descontar")
	assert.Equal(t, 1, f.exits(t, "p1"))
}

func TestConfirm_StockInsuficienteMantieneEstado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	so, err := f.uc.Create(ctx, dto.CreateSalesOrderRequest{CustomerID: "c1", Status: "PENDING", Lines: []dto.OrderLineRequest{line("p2", 5)}})
	require.NoError(t, err)

	_, err = f.uc.Confirm(ctx, so.ID, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	got, err := f.uc.GetByID(ctx, so.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", got.Status)
	assert.True(t, f.stock(t, "p2").Equal(qty(2)))
}

func TestRegisterPayment_DesdeAnuladaFalla(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	so, err := f.uc.Create(ctx, dto.CreateSalesOrderRequest{CustomerID: "c1", Lines: []dto.OrderLineRequest{line("p1", 1)}})
	require.NoError(t, err)
	_, err = f.uc.Cancel(ctx, so.ID, true)
	require.NoError(t, err)

	_, err = f.uc.RegisterPayment(ctx, so.ID, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSales))
}

func TestListByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Create(ctx, dto.CreateSalesOrderRequest{CustomerID: "c1", Status: "Reservada", Lines: []dto.OrderLineRequest{line("p1", 1)}})
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, dto.CreateSalesOrderRequest{CustomerID: "c1", Lines: []dto.OrderLineRequest{line("p1", 1)}})
	require.NoError(t, err)

	reserved, err := f.uc.ListByStatus(ctx, "reserved", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, reserved, 1)

	_, err = f.uc.ListByStatus(ctx, "desconocido", dto.PageRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	inRange, err := f.uc.ListByDateRange(ctx, testNow.Add(-time.Hour), testNow.Add(time.Hour), dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, inRange, 2)
}
