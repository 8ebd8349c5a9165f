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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetByID obtiene un pedido por ID; nil si no existe.
func (r *OrderRepo) GetByID(id int64) (*entity.Order, error) {
	query := `
		SELECT id, school_id, project_id, status, created_at, updated_at
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.SchoolID, &o.ProjectID, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// UpdateStatus actualiza el estado del pedido.
func (r *OrderRepo) UpdateStatus(orderID int64, status string) error {
	query := `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, orderID, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("pedido %d: %w", orderID, domain.ErrNotFound)
	}
	return nil
}

// GetLine obtiene una línea del pedido por ID; nil si no existe.
func (r *OrderRepo) GetLine(lineID int64) (*entity.OrderLine, error) {
	query := `
		SELECT id, order_id, variant_id, requested_qty, fulfilled_qty
		FROM order_lines WHERE id = $1`
	var l entity.OrderLine
	err := r.q.QueryRow(context.Background(), query, lineID).Scan(
		&l.ID, &l.OrderID, &l.VariantID, &l.RequestedQty, &l.FulfilledQty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order line: %w", err)
	}
	return &l, nil
}

// GetLineByVariant obtiene la línea del pedido para una variante; nil si no existe.
func (r *OrderRepo) GetLineByVariant(orderID, variantID int64) (*entity.OrderLine, error) {
	query := `
		SELECT id, order_id, variant_id, requested_qty, fulfilled_qty
		FROM order_lines WHERE order_id = $1 AND variant_id = $2`
	var l entity.OrderLine
	err := r.q.QueryRow(context.Background(), query, orderID, variantID).Scan(
		&l.ID, &l.OrderID, &l.VariantID, &l.RequestedQty, &l.FulfilledQty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order line by variant: %w", err)
	}
	return &l, nil
}

// UpdateLineFulfilledQty fija la cantidad expedida de la línea.
func (r *OrderRepo) UpdateLineFulfilledQty(lineID, fulfilledQty int64) error {
	query := `UPDATE order_lines SET fulfilled_qty = $2 WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, lineID, fulfilledQty)
	if err != nil {
		return fmt.Errorf("update order line fulfilled qty: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("línea de pedido %d: %w", lineID, domain.ErrNotFound)
	}
	return nil
}

// ListLines lista las líneas del pedido.
func (r *OrderRepo) ListLines(orderID int64) ([]entity.OrderLine, error) {
	query := `
		SELECT id, order_id, variant_id, requested_qty, fulfilled_qty
		FROM order_lines WHERE order_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.VariantID, &l.RequestedQty, &l.FulfilledQty); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
