package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jofra02/proyecto-ventas/internal/application/dto"
	"github.com/jofra02/proyecto-ventas/internal/application/sales"
)

// SalesHandler ventas: borrador, confirmación y consulta.
type SalesHandler struct {
	responder
	uc *sales.SaleUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(r responder, uc *sales.SaleUseCase) *SalesHandler {
	return &SalesHandler{responder: r, uc: uc}
}

// Create godoc
// @Summary      Crear venta en borrador
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "warehouse_id, customer_id, items"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := h.bind(c, &in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.uc.CreateSale(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Confirm godoc
// @Summary      Confirmar venta
// @Description  DRAFT → CONFIRMED y reserva de stock. Una venta no DRAFT responde 409 INVALID_STATE.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/confirm [post]
func (h *SalesHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.ConfirmSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

func (h *SalesHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.ListSales(c.UserContext(), c.Query("status"), limit, offset)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}
