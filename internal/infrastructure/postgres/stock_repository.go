package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/uniformes/expedicao-api/internal/domain"
	"github.com/uniformes/expedicao-api/internal/domain/entity"
	"github.com/uniformes/expedicao-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el saldo de una variante.
func (r *StockRepo) Get(variantID int64) (*entity.StockEntry, error) {
	query := `
		SELECT variant_id, quantity_on_hand, updated_at
		FROM stock_entries WHERE variant_id = $1`
	var s entity.StockEntry
	err := r.q.QueryRow(context.Background(), query, variantID).Scan(
		&s.VariantID, &s.QuantityOnHand, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockEntry{VariantID: variantID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// AdjustQuantity suma delta (con signo) al saldo de la variante. El saldo puede
// quedar negativo: la conciliación registra lo debitado aunque el stock físico
// esté desfasado.
func (r *StockRepo) AdjustQuantity(variantID, delta int64) error {
	query := `
		UPDATE stock_entries
		SET quantity_on_hand = quantity_on_hand + $2, updated_at = now()
		WHERE variant_id = $1`
	cmd, err := r.q.Exec(context.Background(), query, variantID, delta)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("stock de la variante %d: %w", variantID, domain.ErrNotFound)
	}
	return nil
}
