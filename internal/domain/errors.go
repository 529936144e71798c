package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los handlers HTTP los distinguen con errors.Is; los casos de uso los envuelven con %w.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidState = errors.New("operación no permitida en el estado actual")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)
