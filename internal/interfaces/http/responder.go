package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jofra02/proyecto-ventas/internal/application/dto"
	"github.com/jofra02/proyecto-ventas/internal/domain"
	"github.com/jofra02/proyecto-ventas/pkg/logger"
)

var errInvalidBody = errors.New("cuerpo inválido")

// fieldsError campos que no pasaron los tags `validate`; se reporta como VALIDATION.
type fieldsError struct {
	fields []string
}

func (e *fieldsError) Error() string {
	return "campos inválidos: " + strings.Join(e.fields, ", ")
}

func (e *fieldsError) Unwrap() error { return domain.ErrInvalidInput }

// responder agrupa lo que comparten los handlers: validación de entrada y traducción de errores.
type responder struct {
	validate *validator.Validate
	log      *logger.Logger
}

func newResponder(log *logger.Logger) responder {
	return responder{validate: validator.New(), log: log}
}

// bind parsea el body JSON y valida los tags `validate`.
func (r responder) bind(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return errInvalidBody
	}
	if err := r.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return &fieldsError{fields: fields}
		}
		return fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}
	return nil
}

// fail traduce errores de dominio a HTTP. Los 5xx se registran con la ruta.
func (r responder) fail(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, errInvalidBody):
		status, code = fiber.StatusBadRequest, "INVALID_BODY"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidState):
		status, code = fiber.StatusConflict, "INVALID_STATE"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	}
	body := dto.ErrorResponse{Code: code, Message: err.Error()}
	var fe *fieldsError
	if errors.As(err, &fe) {
		body.Fields = fe.fields
	}
	if status == fiber.StatusInternalServerError {
		r.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		body.Message = "error interno"
	}
	return c.Status(status).JSON(body)
}

// page lee limit/offset; valores no numéricos toman el default.
func page(c *fiber.Ctx) (int, int) {
	p := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}.Normalize()
	return p.Limit, p.Offset
}

// queryTime acepta RFC3339 o YYYY-MM-DD (medianoche UTC). Vacío => nil.
func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%s: formato de fecha inválido %q: %w", key, raw, domain.ErrInvalidInput)
}
