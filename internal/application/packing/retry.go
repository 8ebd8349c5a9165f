package packing

import (
	"context"
	"errors"
	"fmt"

	"github.com/uniformes/expedicao-api/internal/domain"
	"github.com/uniformes/expedicao-api/pkg/metrics"
)

// maxTxAttempts acota el reintento de una transacción ante conflictos de
// serialización. Dos ajustes concurrentes sobre la misma caja: uno gana y el
// otro reintenta; operación de baja frecuencia, tres intentos bastan.
const maxTxAttempts = 3

// runWithRetry ejecuta fn hasta maxAttempts mientras retryable(err) sea true.
// Cualquier otro error se propaga de inmediato sin reintentar. Agotar los
// intentos devuelve domain.ErrTxRetryExhausted envolviendo el último error.
func runWithRetry(ctx context.Context, maxAttempts int, retryable func(error) bool, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err = fn()
		if err == nil || !retryable(err) {
			return err
		}
		metrics.TxConflicts.Inc()
	}
	return fmt.Errorf("%w: %v", domain.ErrTxRetryExhausted, err)
}

// isSerializationConflict es el predicado de reintento del motor.
func isSerializationConflict(err error) bool {
	return errors.Is(err, domain.ErrConflict)
}
