package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jofra02/proyecto-ventas/internal/application/billing"
	"github.com/jofra02/proyecto-ventas/internal/application/dto"
)

// DocumentHandler emisión y consulta de comprobantes.
type DocumentHandler struct {
	responder
	uc *billing.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(r responder, uc *billing.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{responder: r, uc: uc}
}

// Issue godoc
// @Summary      Emitir documento de una venta
// @Description  Descuenta stock (COMMIT), libera la reserva si la venta estaba CONFIRMED y debita la cuenta corriente.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueDocumentRequest  true  "sale_id"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents/issue [post]
func (h *DocumentHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueDocumentRequest
	if err := h.bind(c, &in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.uc.IssueDocument(c.UserContext(), in.SaleID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetDocument(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

func (h *DocumentHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.ListDocuments(c.UserContext(), limit, offset)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}
