package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ordenes-inventario/internal/application/dto"
	"github.com/jhoicas/ordenes-inventario/internal/application/purchasing"
)

// SupplierProductHandler vínculos proveedor-producto.
type SupplierProductHandler struct {
	uc *purchasing.SupplierProductUseCase
}

// NewSupplierProductHandler construye el handler.
func NewSupplierProductHandler(uc *purchasing.SupplierProductUseCase) *SupplierProductHandler {
	return &SupplierProductHandler{uc: uc}
}

// Upsert godoc
// @Summary      Crear o actualizar vínculo proveedor-producto
// @Tags         supplier-products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertSupplierProductRequest  true  "Par y precio"
// @Success      200   {object}  dto.SupplierProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supplier-products [put]
func (h *SupplierProductHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertSupplierProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpsertLink(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar vínculos
// @Description  Con supplier_id y product_id devuelve el vínculo del par; con uno solo, la lista.
// @Tags         supplier-products
// @Produce      json
// @Param        supplier_id  query  string  false  "ID del proveedor"
// @Param        product_id   query  string  false  "ID del producto"
// @Success      200  {array}   dto.SupplierProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplier-products [get]
func (h *SupplierProductHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	supplierID, productID := c.Query("supplier_id"), c.Query("product_id")
	switch {
	case supplierID != "" && productID != "":
		out, err := h.uc.GetLink(ctx, supplierID, productID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	case supplierID != "":
		out, err := h.uc.ListBySupplier(ctx, supplierID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	case productID != "":
		out, err := h.uc.ListByProduct(ctx, productID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
	return badQuery(c, "se requiere supplier_id o product_id")
}
