package packing

import (
	"context"

	"github.com/uniformes/expedicao-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción serializable de BD,
// pasando repositorios atados a esa tx. Garantiza atomicidad para el motor de
// conciliación: o se confirman todas las mutaciones de stock, pedido y caja,
// o ninguna. Un conflicto de serialización se reporta como domain.ErrConflict.
type TxRunner interface {
	RunSerializable(ctx context.Context, fn func(
		boxRepo repository.BoxRepository,
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		outputRepo repository.OutputRecordRepository,
		variantRepo repository.VariantRepository,
	) error) error
}
