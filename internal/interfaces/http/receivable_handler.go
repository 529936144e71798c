package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jofra02/proyecto-ventas/internal/application/dto"
	"github.com/jofra02/proyecto-ventas/internal/application/payments"
	"github.com/jofra02/proyecto-ventas/internal/application/receivable"
)

// ReceivableHandler cuenta corriente y cobros.
type ReceivableHandler struct {
	responder
	accounts *receivable.AccountService
	payments *payments.PaymentUseCase
}

// NewReceivableHandler construye el handler.
func NewReceivableHandler(r responder, accounts *receivable.AccountService, payments *payments.PaymentUseCase) *ReceivableHandler {
	return &ReceivableHandler{responder: r, accounts: accounts, payments: payments}
}

// Ledger asientos del cliente, más recientes primero, con el saldo.
func (h *ReceivableHandler) Ledger(c *fiber.Ctx) error {
	out, err := h.accounts.Entries(c.UserContext(), c.Params("customer_id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

func (h *ReceivableHandler) Balance(c *fiber.Ctx) error {
	out, err := h.accounts.Balance(c.UserContext(), c.Params("customer_id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// CreatePayment godoc
// @Summary      Registrar cobro
// @Description  Acredita la cuenta corriente. Una idempotency_key repetida responde 409 CONFLICT.
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                    false  "Alternativa a idempotency_key en el body"
// @Param        body             body    dto.CreatePaymentRequest  true  "customer_id, amount > 0, method"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *ReceivableHandler) CreatePayment(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if err := h.bind(c, &in); err != nil {
		return h.fail(c, err)
	}
	if in.IdempotencyKey == "" {
		in.IdempotencyKey = c.Get("Idempotency-Key")
	}
	out, err := h.payments.CreatePayment(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ReceivableHandler) ListPayments(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.payments.ListPayments(c.UserContext(), c.Query("customer_id"), limit, offset)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}
