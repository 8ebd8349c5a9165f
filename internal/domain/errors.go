package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrOverFulfillment  = errors.New("no se puede expedir más de lo solicitado")
	ErrConflict         = errors.New("conflicto de serialización en la transacción")
	ErrTxRetryExhausted = errors.New("la transacción falló después de varios intentos")
)
