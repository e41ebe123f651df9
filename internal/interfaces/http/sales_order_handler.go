package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ordenes-inventario/internal/application/dto"
	"github.com/jhoicas/ordenes-inventario/internal/application/sales"
)

// SalesOrderHandler órdenes de venta.
type SalesOrderHandler struct {
	uc *sales.SalesOrderUseCase
}

// NewSalesOrderHandler construye el handler.
func NewSalesOrderHandler(uc *sales.SalesOrderUseCase) *SalesOrderHandler {
	return &SalesOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de venta
// @Description  status vacío = CONFIRMED. Si falta stock de algún producto no se registra nada.
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesOrderRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.SalesOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales-orders [post]
func (h *SalesOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSalesOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de venta
// @Tags         sales-orders
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.SalesOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id} [get]
func (h *SalesOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de venta
// @Description  Filtrar por customer_id, status o rango from/to (uno es requerido).
// @Tags         sales-orders
// @Produce      json
// @Param        customer_id  query  string  false  "ID del cliente"
// @Param        status       query  string  false  "Estado"
// @Param        from         query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.SalesOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales-orders [get]
func (h *SalesOrderHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	ctx := c.UserContext()
	var (
		out []*dto.SalesOrderResponse
		err error
	)
	switch {
	case c.Query("customer_id") != "":
		out, err = h.uc.ListByCustomer(ctx, c.Query("customer_id"), page)
	case c.Query("status") != "":
		out, err = h.uc.ListByStatus(ctx, c.Query("status"), page)
	default:
		from, okFrom := timeQuery(c, "from")
		to, okTo := timeQuery(c, "to")
		if !okFrom || !okTo || from == nil || to == nil {
			return badQuery(c, "se requiere customer_id, status o el rango from/to")
		}
		out, err = h.uc.ListByDateRange(ctx, *from, *to, page)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar orden de venta
// @Tags         sales-orders
// @Produce      json
// @Param        id              path   string  true   "ID de la orden"
// @Param        apply_to_stock  query  bool    false  "Descontar stock"  default(true)
// @Success      200  {object}  dto.SalesOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id}/confirm [post]
func (h *SalesOrderHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(c.UserContext(), c.Params("id"), c.QueryBool("apply_to_stock", true))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RegisterPayment godoc
// @Summary      Registrar pago de la venta
// @Tags         sales-orders
// @Produce      json
// @Param        id              path   string  true   "ID de la orden"
// @Param        apply_to_stock  query  bool    false  "Descontar stock"  default(true)
// @Success      200  {object}  dto.SalesOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id}/payment [post]
func (h *SalesOrderHandler) RegisterPayment(c *fiber.Ctx) error {
	out, err := h.uc.RegisterPayment(c.UserContext(), c.Params("id"), c.QueryBool("apply_to_stock", true))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Anular orden de venta
// @Tags         sales-orders
// @Produce      json
// @Param        id            path   string  true   "ID de la orden"
// @Param        revert_stock  query  bool    false  "Devolver stock"  default(true)
// @Success      200  {object}  dto.SalesOrderResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id}/cancel [post]
func (h *SalesOrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), c.Params("id"), c.QueryBool("revert_stock", true))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden de venta
// @Description  Borrado lógico: la orden queda ELIMINATED.
// @Tags         sales-orders
// @Param        id            path   string  true   "ID de la orden"
// @Param        revert_stock  query  bool    false  "Devolver stock"  default(true)
// @Success      204
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id} [delete]
func (h *SalesOrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id"), c.QueryBool("revert_stock", true)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
