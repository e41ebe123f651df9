package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ordenes-inventario/internal/application/dto"
	"github.com/jhoicas/ordenes-inventario/internal/application/inventory"
	"github.com/jhoicas/ordenes-inventario/internal/application/ports"
	"github.com/jhoicas/ordenes-inventario/internal/application/purchasing"
	"github.com/jhoicas/ordenes-inventario/internal/application/reception"
	"github.com/jhoicas/ordenes-inventario/internal/application/sales"
	"github.com/jhoicas/ordenes-inventario/internal/application/usecase"
	"github.com/jhoicas/ordenes-inventario/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/ordenes-inventario/internal/interfaces/http"
	"github.com/jhoicas/ordenes-inventario/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre el store en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db := memory.New()
	store := db.Store()
	clock := ports.FixedClock{At: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
	log := logger.Nop()
	ledger := inventory.NewStockLedger(db, store, clock, nil, log)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:         usecase.NewProductUseCase(store, clock),
		SupplierUC:        usecase.NewSupplierUseCase(store, clock),
		CustomerUC:        usecase.NewCustomerUseCase(store, clock),
		LocationUC:        usecase.NewLocationUseCase(store, clock),
		Ledger:            ledger,
		PurchaseOrderUC:   purchasing.NewPurchaseOrderUseCase(db, store, ledger, clock, log),
		SupplierProductUC: purchasing.NewSupplierProductUseCase(store, clock),
		ReceptionUC:       reception.NewReceptionUseCase(db, store, ledger, clock, log),
		SalesOrderUC:      sales.NewSalesOrderUseCase(db, store, ledger, clock, log),
	})
	return app
}

// doJSON lanza la petición y decodifica el cuerpo en out (si no es nil).
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, out any) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
	return resp.StatusCode
}

func createProduct(t *testing.T, app *fiber.App, sku string) string {
	t.Helper()
	var p dto.ProductResponse
	status := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"sku": sku, "name": "Producto " + sku}, &p)
	require.Equal(t, http.StatusCreated, status)
	return p.ID
}

func stockOf(t *testing.T, app *fiber.App, productID string) decimal.Decimal {
	t.Helper()
	var s dto.StockResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/inventory/stock/"+productID, nil, &s))
	return s.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo e inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_DuplicateSKUIsConflict(t *testing.T) {
	app := buildTestApp(t)
	id := createProduct(t, app, "ABC-1")

	var e dto.ErrorResponse
	status := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"sku": "abc-1", "name": "Otro"}, &e)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", e.Code)
	assert.Equal(t, id, e.ResourceID)
}

func TestInventory_EntryExitAndStock(t *testing.T) {
	app := buildTestApp(t)
	id := createProduct(t, app, "SKU-1")

	var res dto.MovementResultResponse
	status := doJSON(t, app, http.MethodPost, "/api/inventory/entries", map[string]any{"product_id": id, "quantity": 10, "reason": "inicial"}, &res)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, res.OldQuantity.IsZero())
	assert.True(t, res.NewQuantity.Equal(decimal.NewFromInt(10)))

	status = doJSON(t, app, http.MethodPost, "/api/inventory/exits", map[string]any{"product_id": id, "quantity": 4}, &res)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, stockOf(t, app, id).Equal(decimal.NewFromInt(6)))

	var movements []dto.StockMovementResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/inventory/movements/"+id, nil, &movements))
	assert.Len(t, movements, 2)
}

func TestInventory_InsufficientStockCarriesProduct(t *testing.T) {
	app := buildTestApp(t)
	id := createProduct(t, app, "SKU-2")

	var e dto.ErrorResponse
	status := doJSON(t, app, http.MethodPost, "/api/inventory/exits", map[string]any{"product_id": id, "quantity": 1}, &e)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)
	assert.Equal(t, id, e.ResourceID)
}

func TestInventory_InvalidQuantityAndUnknownProduct(t *testing.T) {
	app := buildTestApp(t)
	id := createProduct(t, app, "SKU-3")

	var e dto.ErrorResponse
	status := doJSON(t, app, http.MethodPost, "/api/inventory/entries", map[string]any{"product_id": id, "quantity": 0}, &e)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_QUANTITY", e.Code)

	status = doJSON(t, app, http.MethodGet, "/api/inventory/stock/no-existe", nil, &e)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "PRODUCT_NOT_FOUND", e.Code)
	assert.Equal(t, "no-existe", e.ResourceID)
}

func TestInventory_BadDateFilter(t *testing.T) {
	app := buildTestApp(t)
	id := createProduct(t, app, "SKU-4")

	var e dto.ErrorResponse
	status := doJSON(t, app, http.MethodGet, "/api/inventory/movements/"+id+"?from=ayer", nil, &e)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_QUERY", e.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Compras, recepciones y ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchaseOrder_PartialReceptionThenCancel(t *testing.T) {
	app := buildTestApp(t)
	productID := createProduct(t, app, "P-100")
	var supplier dto.PartyResponse
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/suppliers", map[string]any{"name": "Proveedor"}, &supplier))

	var po dto.PurchaseOrderResponse
	status := doJSON(t, app, http.MethodPost, "/api/purchase-orders", map[string]any{
		"supplier_id": supplier.ID,
		"status":      "PENDING",
		"lines":       []map[string]any{{"product_id": productID, "quantity": 10, "unit_price": 5}},
	}, &po)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "PENDING", po.Status)
	assert.True(t, stockOf(t, app, productID).IsZero())

	var rc dto.ReceptionResponse
	status = doJSON(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receptions", map[string]any{
		"document_type":   "Factura",
		"document_number": "F-1",
		"items":           []map[string]any{{"product_id": productID, "quantity": 4, "lot": "L1"}},
	}, &rc)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "INCOMPLETE", rc.PurchaseOrderStatus)
	assert.True(t, stockOf(t, app, productID).Equal(decimal.NewFromInt(4)))

	var e dto.ErrorResponse
	status = doJSON(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receptions", map[string]any{
		"document_type": "INVOICE",
		"items":         []map[string]any{{"product_id": productID, "quantity": 7}},
	}, &e)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "RECEPTION_ERROR", e.Code)

	var receptions []dto.ReceptionResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/purchase-orders/"+po.ID+"/receptions", nil, &receptions))
	assert.Len(t, receptions, 1)

	var links []dto.SupplierProductResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/supplier-products?supplier_id="+supplier.ID, nil, &links))
	require.Len(t, links, 1)
	assert.Equal(t, productID, links[0].ProductID)
}

func TestSalesOrder_CreateCancelAndDelete(t *testing.T) {
	app := buildTestApp(t)
	productID := createProduct(t, app, "V-1")
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/inventory/entries",
		map[string]any{"product_id": productID, "quantity": 5}, nil))
	var customer dto.PartyResponse
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/customers", map[string]any{"name": "Cliente"}, &customer))

	var so dto.SalesOrderResponse
	status := doJSON(t, app, http.MethodPost, "/api/sales-orders", map[string]any{
		"customer_id": customer.ID,
		"lines":       []map[string]any{{"product_id": productID, "quantity": 3, "unit_price": 10}},
	}, &so)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "CONFIRMED", so.Status)
	assert.True(t, stockOf(t, app, productID).Equal(decimal.NewFromInt(2)))

	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, "/api/sales-orders/"+so.ID+"/cancel", nil, &so))
	assert.Equal(t, "CANCELLED", so.Status)
	assert.True(t, stockOf(t, app, productID).Equal(decimal.NewFromInt(5)))

	var e dto.ErrorResponse
	status = doJSON(t, app, http.MethodDelete, "/api/sales-orders/"+so.ID, nil, &e)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "SALES_ERROR", e.Code)
}

func TestSalesOrder_InsufficientStockRegistersNothing(t *testing.T) {
	app := buildTestApp(t)
	productID := createProduct(t, app, "V-2")
	var customer dto.PartyResponse
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/customers", map[string]any{"name": "Cliente"}, &customer))

	var e dto.ErrorResponse
	status := doJSON(t, app, http.MethodPost, "/api/sales-orders", map[string]any{
		"customer_id": customer.ID,
		"lines":       []map[string]any{{"product_id": productID, "quantity": 1, "unit_price": 10}},
	}, &e)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, productID, e.ResourceID)

	var list []dto.SalesOrderResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/sales-orders?customer_id="+customer.ID, nil, &list))
	assert.Empty(t, list)
}

func TestSalesOrder_ListRequiresFilter(t *testing.T) {
	app := buildTestApp(t)

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, doJSON(t, app, http.MethodGet, "/api/sales-orders", nil, &e))
}
