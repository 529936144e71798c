package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jofra02/proyecto-ventas/internal/application/analytics"
	"github.com/jofra02/proyecto-ventas/internal/domain"
)

// maxLookbackDays tope del parámetro days.
const maxLookbackDays = 366

// AnalyticsHandler reportes de ventas confirmadas.
type AnalyticsHandler struct {
	responder
	uc *analytics.SalesAnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(r responder, uc *analytics.SalesAnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{responder: r, uc: uc}
}

func (h *AnalyticsHandler) window(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	start, err := queryTime(c, "start_date")
	if err != nil {
		return nil, nil, err
	}
	end, err := queryTime(c, "end_date")
	if err != nil {
		return nil, nil, err
	}
	if start != nil {
		return start, end, nil
	}
	days, err := lookbackDays(c)
	if err != nil || days == 0 {
		return start, end, err
	}
	to := time.Now().UTC().Truncate(time.Minute)
	if end != nil {
		to = *end
	}
	from := to.AddDate(0, 0, -days)
	return &from, &to, nil
}

// lookbackDays lee days (1..366). Ausente devuelve 0 y se usa la ventana por defecto.
// Sólo aplica cuando no viene start_date.
func lookbackDays(c *fiber.Ctx) (int, error) {
	raw := strings.TrimSpace(c.Query("days"))
	if raw == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > maxLookbackDays {
		return 0, fmt.Errorf("days debe estar entre 1 y %d, recibido %q: %w", maxLookbackDays, raw, domain.ErrInvalidInput)
	}
	return days, nil
}

// Trend godoc
// @Summary      Serie de ingresos
// @Description  Por hora si la ventana dura menos de 48h, por día si no. Sin huecos. Default: últimos 7 días.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        end_date    query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        days        query  int     false  "Días hacia atrás cuando no hay start_date (1-366)"
// @Success      200  {object}  dto.SalesTrendResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/analytics/trend [get]
func (h *AnalyticsHandler) Trend(c *fiber.Ctx) error {
	start, end, err := h.window(c)
	if err != nil {
		return h.fail(c, err)
	}
	out, err := h.uc.SalesTrend(c.UserContext(), start, end)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Totales del período contra el período anterior
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        end_date    query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        days        query  int     false  "Días hacia atrás cuando no hay start_date (1-366)"
// @Success      200  {object}  dto.SalesSummaryResponse
// @Router       /api/sales/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	start, end, err := h.window(c)
	if err != nil {
		return h.fail(c, err)
	}
	out, err := h.uc.Summary(c.UserContext(), start, end)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos más vendidos por unidades
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        end_date    query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        days        query  int     false  "Días hacia atrás cuando no hay start_date (1-366)"
// @Param        limit       query  int     false  "Cantidad (default 5, máximo 100)"
// @Success      200  {array}   dto.TopProductDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/analytics/top-products [get]
func (h *AnalyticsHandler) TopProducts(c *fiber.Ctx) error {
	start, end, err := h.window(c)
	if err != nil {
		return h.fail(c, err)
	}
	out, err := h.uc.TopProducts(c.UserContext(), start, end, c.QueryInt("limit", 0))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}
