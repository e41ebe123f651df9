package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ordenes-inventario/internal/application/dto"
	"github.com/jhoicas/ordenes-inventario/internal/application/reception"
)

// ReceptionHandler corrección de trazabilidad de ítems recibidos.
type ReceptionHandler struct {
	uc *reception.ReceptionUseCase
}

// NewReceptionHandler construye el handler.
func NewReceptionHandler(uc *reception.ReceptionUseCase) *ReceptionHandler {
	return &ReceptionHandler{uc: uc}
}

// UpdateItem godoc
// @Summary      Corregir lote/serie/vencimiento/ubicación de un ítem
// @Description  Parche parcial: los campos omitidos conservan su valor. También reescribe el movimiento de stock asociado. Las cantidades no cambian.
// @Tags         receptions
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID de la recepción"
// @Param        itemId  path  string  true  "ID del ítem"
// @Param        body    body  dto.UpdateReceptionItemRequest  true  "Trazabilidad"
// @Success      200  {object}  dto.ReceptionItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receptions/{id}/items/{itemId} [patch]
func (h *ReceptionHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateReceptionItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateItemTrace(c.UserContext(), c.Params("id"), c.Params("itemId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
