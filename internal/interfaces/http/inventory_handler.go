package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jofra02/proyecto-ventas/internal/application/dto"
	"github.com/jofra02/proyecto-ventas/internal/application/inventory"
)

// InventoryHandler maneja recepciones, ajustes y reportes de stock (protegido).
type InventoryHandler struct {
	responder
	receive *inventory.ReceiveUseCase
	query   *inventory.StockQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(r responder, receive *inventory.ReceiveUseCase, query *inventory.StockQueryUseCase) *InventoryHandler {
	return &InventoryHandler{responder: r, receive: receive, query: query}
}

// Receive godoc
// @Summary      Recibir mercadería
// @Description  Registra un movimiento IN. Crea un lote si el producto maneja lote o se informa vencimiento.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveStockRequest  true  "product_id, warehouse_id, quantity > 0, supplier_id, expiry_date"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/receive [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if err := h.bind(c, &in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.receive.ReceiveStock(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ReceiveBatch godoc
// @Summary      Recepción por lote de líneas
// @Description  Productos inexistentes se omiten; devuelve la cantidad de líneas registradas.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveBatchRequest  true  "warehouse_id, supplier_id por defecto, items"
// @Success      201   {object}  dto.ReceiveBatchResponse
// @Router       /api/inventory/receive-batch [post]
func (h *InventoryHandler) ReceiveBatch(c *fiber.Ctx) error {
	var in dto.ReceiveBatchRequest
	if err := h.bind(c, &in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.receive.ReceiveStockBatch(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Adjust godoc
// @Summary      Ajuste de stock con signo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "quantity distinta de cero; reason queda como referencia"
// @Success      201   {object}  dto.MovementResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := h.bind(c, &in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.receive.AdjustStock(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// StockLevels saldo por producto según la proyección configurada.
func (h *InventoryHandler) StockLevels(c *fiber.Ctx) error {
	out, err := h.query.StockLevels(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// LowStock productos con saldo <= umbral.
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.query.LowStockAlerts(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "alerts": out})
}

// StockDetails desglose por proveedor y lote de un producto.
func (h *InventoryHandler) StockDetails(c *fiber.Ctx) error {
	out, err := h.query.StockDetailsByProduct(c.UserContext(), c.Params("product_id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Expiring godoc
// @Summary      Lotes vencidos o por vencer
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Horizonte en días (default 30)"
// @Success      200   {array}  dto.ExpiringBatchDTO
// @Router       /api/inventory/alerts/expiring [get]
func (h *InventoryHandler) Expiring(c *fiber.Ctx) error {
	days := c.QueryInt("days", inventory.DefaultExpiryDays)
	out, err := h.query.ExpiringBatches(c.UserContext(), days)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}
