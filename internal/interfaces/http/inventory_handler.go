package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ordenes-inventario/internal/application/dto"
	"github.com/jhoicas/ordenes-inventario/internal/application/inventory"
)

// InventoryHandler ajustes manuales de stock y consultas del libro.
type InventoryHandler struct {
	ledger *inventory.StockLedger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.StockLedger) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// RegisterEntry godoc
// @Summary      Registrar entrada de stock
// @Description  Ajuste manual. Si llegan lot y serial, se conserva lot.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterEntryRequest  true  "product_id, quantity (> 0), reason"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/entries [post]
func (h *InventoryHandler) RegisterEntry(c *fiber.Ctx) error {
	var in dto.RegisterEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.ledger.RegisterEntry(c.UserContext(), inventory.EntryInput{
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		Reason:     in.Reason,
		Date:       in.Date,
		Lot:        in.Lot,
		Serial:     in.Serial,
		ExpiryDate: in.ExpiryDate,
		LocationID: in.LocationID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToMovementResultResponse(res))
}

// RegisterExit godoc
// @Summary      Registrar salida de stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterExitRequest  true  "product_id, quantity (> 0), reason"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/exits [post]
func (h *InventoryHandler) RegisterExit(c *fiber.Ctx) error {
	var in dto.RegisterExitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.ledger.RegisterExit(c.UserContext(), inventory.ExitInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Date:      in.Date,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToMovementResultResponse(res))
}

// GetStock godoc
// @Summary      Stock disponible de un producto
// @Tags         inventory
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{productId} [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	productID := c.Params("productId")
	qty, err := h.ledger.GetStock(c.UserContext(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockResponse{ProductID: productID, Quantity: qty})
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        from       query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to         query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.StockMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{productId} [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	from, ok := timeQuery(c, "from")
	if !ok {
		return badQuery(c, "from inválido")
	}
	to, ok := timeQuery(c, "to")
	if !ok {
		return badQuery(c, "to inválido")
	}
	page := pageFromQuery(c)
	list, err := h.ledger.ListMovements(c.UserContext(), c.Params("productId"), from, to, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToMovementList(list))
}
