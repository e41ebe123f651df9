package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ordenes-inventario/internal/application/dto"
	"github.com/jhoicas/ordenes-inventario/internal/application/purchasing"
	"github.com/jhoicas/ordenes-inventario/internal/application/reception"
)

// PurchaseOrderHandler órdenes de compra y sus recepciones.
type PurchaseOrderHandler struct {
	uc         *purchasing.PurchaseOrderUseCase
	receptions *reception.ReceptionUseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *purchasing.PurchaseOrderUseCase, receptions *reception.ReceptionUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc, receptions: receptions}
}

// Create godoc
// @Summary      Crear orden de compra
// @Description  status vacío = COMPLETED (nace recibida e ingresa stock si apply_to_stock). PENDING espera recepciones.
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
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
// @Summary      Obtener orden de compra
// @Tags         purchase-orders
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de compra
// @Description  Filtrar por supplier_id, status o rango from/to (uno es requerido).
// @Tags         purchase-orders
// @Produce      json
// @Param        supplier_id  query  string  false  "ID del proveedor"
// @Param        status       query  string  false  "Estado"
// @Param        from         query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.PurchaseOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	ctx := c.UserContext()
	var (
		out []*dto.PurchaseOrderResponse
		err error
	)
	switch {
	case c.Query("supplier_id") != "":
		out, err = h.uc.ListBySupplier(ctx, c.Query("supplier_id"), page)
	case c.Query("status") != "":
		out, err = h.uc.ListByStatus(ctx, c.Query("status"), page)
	default:
		from, okFrom := timeQuery(c, "from")
		to, okTo := timeQuery(c, "to")
		if !okFrom || !okTo || from == nil || to == nil {
			return badQuery(c, "se requiere supplier_id, status o el rango from/to")
		}
		out, err = h.uc.ListByDateRange(ctx, *from, *to, page)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Anular orden de compra
// @Description  Con revert_stock (por defecto true) descuenta lo ingresado si la orden estaba COMPLETED.
// @Tags         purchase-orders
// @Produce      json
// @Param        id            path   string  true   "ID de la orden"
// @Param        revert_stock  query  bool    false  "Revertir stock"  default(true)
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/cancel [post]
func (h *PurchaseOrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), c.Params("id"), c.QueryBool("revert_stock", true))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Cerrar orden de compra
// @Description  Marca todo lo pendiente como recibido e ingresa el stock faltante si la orden mueve stock.
// @Tags         purchase-orders
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/complete [post]
func (h *PurchaseOrderHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.Complete(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RegisterPayment godoc
// @Summary      Registrar pago de la orden
// @Tags         purchase-orders
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/payment [post]
func (h *PurchaseOrderHandler) RegisterPayment(c *fiber.Ctx) error {
	out, err := h.uc.RegisterPayment(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden de compra
// @Description  Borrado físico de la orden, sus líneas y recepciones. Eliminar una orden inexistente no falla.
// @Tags         purchase-orders
// @Param        id            path   string  true   "ID de la orden"
// @Param        revert_stock  query  bool    false  "Revertir stock"  default(true)
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [delete]
func (h *PurchaseOrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id"), c.QueryBool("revert_stock", true)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ApplyReception godoc
// @Summary      Registrar recepción
// @Description  Todo o nada: un ítem que exceda lo pendiente aborta la recepción.
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.ApplyReceptionRequest  true  "Documento e ítems recibidos"
// @Success      201   {object}  dto.ReceptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receptions [post]
func (h *PurchaseOrderHandler) ApplyReception(c *fiber.Ctx) error {
	var in dto.ApplyReceptionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.receptions.ApplyReception(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListReceptions godoc
// @Summary      Recepciones de una orden
// @Tags         purchase-orders
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {array}   dto.ReceptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receptions [get]
func (h *PurchaseOrderHandler) ListReceptions(c *fiber.Ctx) error {
	out, err := h.receptions.ListByPurchaseOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
