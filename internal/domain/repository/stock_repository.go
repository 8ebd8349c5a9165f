package repository

import "github.com/uniformes/expedicao-api/internal/domain/entity"

// StockRepository define el puerto para consultar y ajustar el saldo por variante.
// Los ajustes solo ocurren dentro de transacciones serializables del motor.
type StockRepository interface {
	Get(variantID int64) (*entity.StockEntry, error)
	// AdjustQuantity suma delta (con signo) al saldo de la variante.
	AdjustQuantity(variantID, delta int64) error
}
