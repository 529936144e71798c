package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jofra02/proyecto-ventas/internal/application/dto"
	"github.com/jofra02/proyecto-ventas/internal/application/picking"
)

// PickingHandler tareas de preparación y lectura de códigos.
type PickingHandler struct {
	responder
	uc *picking.PickingUseCase
}

// NewPickingHandler construye el handler.
func NewPickingHandler(r responder, uc *picking.PickingUseCase) *PickingHandler {
	return &PickingHandler{responder: r, uc: uc}
}

func (h *PickingHandler) CreateTask(c *fiber.Ctx) error {
	var in dto.CreatePickTaskRequest
	if err := h.bind(c, &in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.uc.CreateTask(c.UserContext(), in.SaleID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *PickingHandler) GetTask(c *fiber.Ctx) error {
	out, err := h.uc.GetTask(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Scan godoc
// @Summary      Leer código de barras
// @Description  MATCH registra la lectura; MISMATCH y NOT_FOUND responden 200 sin registrar nada.
// @Tags         picking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "task_id, barcode"
// @Success      200   {object}  dto.ScanResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/picking/scan [post]
func (h *PickingHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := h.bind(c, &in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.uc.Scan(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

func (h *PickingHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.CompleteTask(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}
