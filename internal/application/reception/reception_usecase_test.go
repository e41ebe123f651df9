package reception_test

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
	"github.com/jhoicas/ordenes-inventario/internal/application/purchasing"
	"github.com/jhoicas/ordenes-inventario/internal/application/reception"
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
	db         *memory.DB
	ledger     *inventory.StockLedger
	purchases  *purchasing.PurchaseOrderUseCase
	receptions *reception.ReceptionUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memory.New()
	clock := ports.FixedClock{At: testNow}
	ledger := inventory.NewStockLedger(db, db.Store(), clock, nil, logger.Nop())
	ctx := context.Background()
	loc := "loc-1"
	require.NoError(t, db.Store().Suppliers().Create(ctx, &entity.Supplier{ID: "s1", Name: "Proveedor Uno"}))
	require.NoError(t, db.Store().Locations().Create(ctx, &entity.Location{ID: loc, Name: "Bodega central"}))
	require.NoError(t, db.Store().Locations().Create(ctx, &entity.Location{ID: "loc-2", Name: "Estante B"}))
	require.NoError(t, db.Store().Products().Create(ctx, &entity.Product{ID: "p1", SKU: "A-1", Name: "Tornillo", LocationID: &loc}))
	require.NoError(t, db.Store().Products().Create(ctx, &entity.Product{ID: "p2", SKU: "A-2", Name: "Tuerca"}))
	return &fixture{
		db:         db,
		ledger:     ledger,
		purchases:  purchasing.NewPurchaseOrderUseCase(db, db.Store(), ledger, clock, logger.Nop()),
		receptions: reception.NewReceptionUseCase(db, db.Store(), ledger, clock, logger.Nop()),
	}
}

func (f *fixture) pendingOrder(t *testing.T, applyToStock bool, lines ...dto.OrderLineRequest) *dto.PurchaseOrderResponse {
	t.Helper()
	po, err := f.purchases.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: "s1", Status: "PENDING", Lines: lines, ApplyToStock: &applyToStock,
	})
	require.NoError(t, err)
	return po
}

func (f *fixture) stock(t *testing.T, productID string) decimal.Decimal {
	t.Helper()
	q, err := f.ledger.GetStock(context.Background(), productID)
	require.NoError(t, err)
	return q
}

func (f *fixture) order(t *testing.T, id string) *dto.PurchaseOrderResponse {
	t.Helper()
	po, err := f.purchases.GetByID(context.Background(), id)
	require.NoError(t, err)
	return po
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func line(productID string, n int64) dto.OrderLineRequest {
	return dto.OrderLineRequest{ProductID: productID, Quantity: qty(n), UnitPrice: decimal.NewFromInt(10)}
}

func item(productID string, n int64) dto.ReceptionItemRequest {
	return dto.ReceptionItemRequest{ProductID: productID, Quantity: qty(n)}
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyReception
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyReception_ParcialLuegoFactura(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po := f.pendingOrder(t, true, line("p1", 10))

	res, err := f.receptions.ApplyReception(ctx, po.ID, dto.ApplyReceptionRequest{
		Items: []dto.ReceptionItemRequest{item("p1", 4)}, DocumentType: "Factura", DocumentNumber: "F-100",
	})
	require.NoError(t, err)
	assert.Equal(t, "INCOMPLETE", res.PurchaseOrderStatus)
	assert.True(t, res.StockMoved)
	assert.True(t, f.stock(t, "p1").Equal(qty(4)))
	got := f.order(t, po.ID)
	assert.True(t, got.Lines[0].ReceivedQuantity.Equal(qty(4)))

	res, err = f.receptions.ApplyReception(ctx, po.ID, dto.ApplyReceptionRequest{
		Items: []dto.ReceptionItemRequest{item("p1", 6)}, DocumentType: "INVOICE", DocumentNumber: "F-101",
	})
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", res.PurchaseOrderStatus)
	assert.Equal(t, "INVOICE", res.DocumentType)
	assert.True(t, f.stock(t, "p1").Equal(qty(10)))
}

func TestApplyReception_GuiaDejaPorPagar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po := f.pendingOrder(t, true, line("p1", 10))

	_, err := f.receptions.ApplyReception(ctx, po.ID, dto.ApplyReceptionRequest{
		Items: []dto.ReceptionItemRequest{item("p1", 4)}, DocumentType: "Guía",
	})
	require.NoError(t, err)
	res, err := f.receptions.ApplyReception(ctx, po.ID, dto.ApplyReceptionRequest{
		Items: []dto.ReceptionItemRequest{item("p1", 6)}, DocumentType: "Guía",
	})
	require.NoError(t, err)
	assert.Equal(t, "AWAITING_PAYMENT", res.PurchaseOrderStatus)
	assert.Equal(t, "DELIVERY_NOTE", res.DocumentType)

	paid, err := f.purchases.RegisterPayment(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", paid.Status)
}

func TestApplyReception_OtroDocumento(t *testing.T) {
	t.Run("con stock queda por pagar", func(t *testing.T) {
		f := newFixture(t)
		po := f.pendingOrder(t, true, line("p1", 2))
		res, err := f.receptions.ApplyReception(context.Background(), po.ID, dto.ApplyReceptionRequest{
			Items: []dto.ReceptionItemRequest{item("p1", 2)}, DocumentType: "boleta",
		})
		require.NoError(t, err)
		assert.Equal(t, "OTHER", res.DocumentType)
		assert.Equal(t, "AWAITING_PAYMENT", res.PurchaseOrderStatus)
	})
	t.Run("sin stock queda completada", func(t *testing.T) {
		f := newFixture(t)
		po := f.pendingOrder(t, false, line("p1", 2))
		res, err := f.receptions.ApplyReception(context.Background(), po.ID, dto.ApplyReceptionRequest{
			Items: []dto.ReceptionItemRequest{item("p1", 2)},
		})
		require.NoError(t, err)
		assert.False(t, res.StockMoved)
		assert.Equal(t, "COMPLETED", res.PurchaseOrderStatus)
		assert.True(t, f.stock(t, "p1").IsZero())
	})
}

func TestApplyReception_ApplyToStockFalseNoMueveStock(t *testing.T) {
	f := newFixture(t)
	po := f.pendingOrder(t, true, line("p1", 5))
	no := false

	res, err := f.receptions.ApplyReception(context.Background(), po.ID, dto.ApplyReceptionRequest{
		Items: []dto.ReceptionItemRequest{item("p1", 3)}, ApplyToStock: &no,
	})
	require.NoError(t, err)
	assert.False(t, res.StockMoved)
	assert.Nil(t, res.Items[0].MovementID)
	assert.True(t, f.stock(t, "p1").IsZero())
	assert.True(t, f.order(t, po.ID).Lines[0].ReceivedQuantity.Equal(qty(3)))
}

func TestApplyReception_ExcesoEsAtomico(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po := f.pendingOrder(t, true, line("p1", 10), line("p2", 5))

	// el primer ítem es válido, el segundo excede: nada se aplica
	_, err := f.receptions.ApplyReception(ctx, po.ID, dto.ApplyReceptionRequest{
		Items: []dto.ReceptionItemRequest{item("p1", 3), item("p2", 6)},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrReception))
	assert.Equal(t, po.Lines[1].ID, domain.ResourceID(err))

	got := f.order(t, po.ID)
	assert.Equal(t, "PENDING", got.Status)
	assert.True(t, got.Lines[0].ReceivedQuantity.IsZero())
	assert.True(t, f.stock(t, "p1").IsZero())

	list, err := f.receptions.ListByPurchaseOrder(ctx, po.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestApplyReception_ExcesoAcumuladoEnLaMismaLlamada(t *testing.T) {
	f := newFixture(t)
	po := f.pendingOrder(t, true, line("p1", 5))

	_, err := f.receptions.ApplyReception(context.Background(), po.ID, dto.ApplyReceptionRequest{
		Items: []dto.ReceptionItemRequest{item("p1", 3), {ProductID: "p1", LineID: po.Lines[0].ID, Quantity: qty(3)}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrReception))
	assert.True(t, f.stock(t, "p1").IsZero())
}

func TestApplyReception_Rechazos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po := f.pendingOrder(t, true, line("p1", 5))

	_, err := f.receptions.ApplyReception(ctx, "nope", dto.ApplyReceptionRequest{Items: []dto.ReceptionItemRequest{item("p1", 1)}})
	assert.True(t, errors.Is(err, domain.ErrReception))
	assert.Equal(t, "nope", domain.ResourceID(err))

	_, err = f.receptions.ApplyReception(ctx, po.ID, dto.ApplyReceptionRequest{})
	assert.True(t, errors.Is(err, domain.ErrReception))

	_, err = f.receptions.ApplyReception(ctx, po.ID, dto.ApplyReceptionRequest{Items: []dto.ReceptionItemRequest{item("p2", 1)}})
	assert.True(t, errors.Is(err, domain.ErrReception))
	assert.Equal(t, "p2", domain.ResourceID(err))

	_, err = f.receptions.ApplyReception(ctx, po.ID, dto.ApplyReceptionRequest{Items: []dto.ReceptionItemRequest{item("p1", 0)}})
	assert.True(t, errors.Is(err, domain.ErrReception))

	_, err = f.purchases.Cancel(ctx, po.ID, false)
	require.NoError(t, err)
	_, err = f.receptions.ApplyReception(ctx, po.ID, dto.ApplyReceptionRequest{Items: []dto.ReceptionItemRequest{item("p1", 1)}})
	assert.True(t, errors.Is(err, domain.ErrReception), "orden cerrada")
}

func TestApplyReception_TrazabilidadYUbicacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po := f.pendingOrder(t, true, line("p1", 5))
	exp := testNow.AddDate(1, 0, 0)

	res, err := f.receptions.ApplyReception(ctx, po.ID, dto.ApplyReceptionRequest{
		Items: []dto.ReceptionItemRequest{{ProductID: "p1", Quantity: qty(5), Lot: "L-9", Serial: "S-9", ExpiryDate: &exp}},
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	it := res.Items[0]
	assert.Equal(t, "L-9", it.Lot)
	assert.Empty(t, it.Serial)
	require.NotNil(t, it.LocationID)
	assert.Equal(t, "loc-1", *it.LocationID, "ubicación por defecto del producto")
	require.NotNil(t, it.MovementID)

	movs, err := f.ledger.ListMovements(ctx, "p1", nil, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, *it.MovementID, movs[0].ID)
	require.NotNil(t, movs[0].ReceptionID)
	assert.Equal(t, res.ID, *movs[0].ReceptionID)
	assert.Equal(t, po.ID, movs[0].Reference)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateItemTrace
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateItemTrace_ActualizaItemYMovimiento(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po := f.pendingOrder(t, true, line("p1", 5))
	res, err := f.receptions.ApplyReception(ctx, po.ID, dto.ApplyReceptionRequest{Items: []dto.ReceptionItemRequest{item("p1", 5)}})
	require.NoError(t, err)
	loc := "loc-2"

	serial := "SN-1"
	updated, err := f.receptions.UpdateItemTrace(ctx, res.ID, res.Items[0].ID, dto.UpdateReceptionItemRequest{
		Serial: &serial, LocationID: &loc,
	})
	require.NoError(t, err)
	assert.Equal(t, "SN-1", updated.Serial)
	assert.True(t, updated.Quantity.Equal(qty(5)), "la cantidad no cambia")

	movs, err := f.ledger.ListMovements(ctx, "p1", nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "SN-1", movs[0].Serial)
	require.NotNil(t, movs[0].LocationID)
	assert.Equal(t, "loc-2", *movs[0].LocationID)
	assert.True(t, f.stock(t, "p1").Equal(qty(5)))

	bad := "ghost"
	_, err = f.receptions.UpdateItemTrace(ctx, res.ID, res.Items[0].ID, dto.UpdateReceptionItemRequest{LocationID: &bad})
	assert.True(t, errors.Is(err, domain.ErrReception))
	_, err = f.receptions.UpdateItemTrace(ctx, res.ID, "nope", dto.UpdateReceptionItemRequest{})
	assert.True(t, errors.Is(err, domain.ErrReception))
}

func TestUpdateItemTrace_CamposOmitidosSeConservan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po := f.pendingOrder(t, true, line("p1", 5))
	expiry := testNow.AddDate(1, 0, 0)
	res, err := f.receptions.ApplyReception(ctx, po.ID, dto.ApplyReceptionRequest{Items: []dto.ReceptionItemRequest{{
		ProductID: "p1", Quantity: qty(5), Lot: "L-1", ExpiryDate: &expiry,
	}}})
	require.NoError(t, err)
	require.NotNil(t, res.Items[0].LocationID, "hereda la ubicación del producto")

	newExpiry := testNow.AddDate(2, 0, 0)
	updated, err := f.receptions.UpdateItemTrace(ctx, res.ID, res.Items[0].ID, dto.UpdateReceptionItemRequest{ExpiryDate: &newExpiry})
	require.NoError(t, err)
	assert.Equal(t, "L-1", updated.Lot)
	require.NotNil(t, updated.LocationID)
	assert.Equal(t, "loc-1", *updated.LocationID)
	require.NotNil(t, updated.ExpiryDate)
	assert.True(t, updated.ExpiryDate.Equal(newExpiry))

	movs, err := f.ledger.ListMovements(ctx, "p1", nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "L-1", movs[0].Lot)
	require.NotNil(t, movs[0].LocationID)
	assert.Equal(t, "loc-1", *movs[0].LocationID)

	empty := ""
	updated, err = f.receptions.UpdateItemTrace(ctx, res.ID, res.Items[0].ID, dto.UpdateReceptionItemRequest{Lot: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Lot, "cadena vacía borra el lote")
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación de la orden con recepciones
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteOrden_RevierteRecepciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po := f.pendingOrder(t, true, line("p1", 10))
	_, err := f.receptions.ApplyReception(ctx, po.ID, dto.ApplyReceptionRequest{Items: []dto.ReceptionItemRequest{item("p1", 4)}})
	require.NoError(t, err)
	_, err = f.receptions.ApplyReception(ctx, po.ID, dto.ApplyReceptionRequest{Items: []dto.ReceptionItemRequest{item("p1", 6)}, DocumentType: "factura"})
	require.NoError(t, err)
	require.True(t, f.stock(t, "p1").Equal(qty(10)))

	require.NoError(t, f.purchases.Delete(ctx, po.ID, true))
	assert.True(t, f.stock(t, "p1").IsZero(), "vuelve al stock previo a la orden")

	movs, err := f.ledger.ListMovements(ctx, "p1", nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movs, "los movimientos de las recepciones se eliminan")
}

func TestDeleteOrden_SinRevertirDesligaMovimientos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po := f.pendingOrder(t, true, line("p1", 10))
	_, err := f.receptions.ApplyReception(ctx, po.ID, dto.ApplyReceptionRequest{Items: []dto.ReceptionItemRequest{item("p1", 4)}})
	require.NoError(t, err)

	require.NoError(t, f.purchases.Delete(ctx, po.ID, false))
	assert.True(t, f.stock(t, "p1").Equal(qty(4)))

	movs, err := f.ledger.ListMovements(ctx, "p1", nil, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1, "el stock sigue respaldado por su movimiento")
	assert.Nil(t, movs[0].ReceptionID)
}

func TestDeleteOrden_MercaderiaYaVendidaAborta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po := f.pendingOrder(t, true, line("p1", 10))
	_, err := f.receptions.ApplyReception(ctx, po.ID, dto.ApplyReceptionRequest{Items: []dto.ReceptionItemRequest{item("p1", 10)}, DocumentType: "factura"})
	require.NoError(t, err)
	_, err = f.ledger.RegisterExit(ctx, inventory.ExitInput{ProductID: "p1", Quantity: qty(7), Reason: "venta"})
	require.NoError(t, err)

	err = f.purchases.Delete(ctx, po.ID, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, f.stock(t, "p1").Equal(qty(3)))
	assert.Equal(t, "COMPLETED", f.order(t, po.ID).Status)
}

func TestDeleteOrden_RecepcionLuegoAnulacionLuegoEliminacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.ledger.RegisterEntry(ctx, inventory.EntryInput{ProductID: "p1", Quantity: qty(10), Reason: "ajuste"})
	require.NoError(t, err)
	po := f.pendingOrder(t, true, line("p1", 10))
	_, err = f.receptions.ApplyReception(ctx, po.ID, dto.ApplyReceptionRequest{Items: []dto.ReceptionItemRequest{item("p1", 10)}, DocumentType: "factura"})
	require.NoError(t, err)
	require.True(t, f.stock(t, "p1").Equal(qty(20)))

	_, err = f.purchases.Cancel(ctx, po.ID, true)
	require.NoError(t, err)
	require.True(t, f.stock(t, "p1").Equal(qty(10)))

	require.NoError(t, f.purchases.Delete(ctx, po.ID, true))
	assert.True(t, f.stock(t, "p1").Equal(qty(10)), "lo revertido al anular no se descuenta de nuevo")

	_, err = f.purchases.GetByID(ctx, po.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
