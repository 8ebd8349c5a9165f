package packing

import (
	"fmt"
	"strconv"

	"github.com/uniformes/expedicao-api/internal/domain"
)

// ParseBoxNumber convierte el número de caja (texto con ceros a la izquierda)
// a su valor numérico para comparar y renumerar.
func ParseBoxNumber(boxNumber string) (int64, error) {
	n, err := strconv.ParseInt(boxNumber, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("número de caja %q: %w", boxNumber, domain.ErrInvalidInput)
	}
	return n, nil
}

// DecrementBoxNumber resta uno al número de caja conservando el ancho del
// padding, para mantener la secuencia densa después de eliminar una caja.
func DecrementBoxNumber(boxNumber string) (string, error) {
	n, err := ParseBoxNumber(boxNumber)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", len(boxNumber), n-1), nil
}
