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

var _ repository.BoxRepository = (*BoxRepo)(nil)

// BoxRepo implementación de BoxRepository sobre PostgreSQL (usable con pool o tx).
type BoxRepo struct {
	q Querier
}

// NewBoxRepository construye el adaptador de cajas. Pasar pool o tx (Querier).
func NewBoxRepository(q Querier) *BoxRepo {
	return &BoxRepo{q: q}
}

// Create persiste el encabezado de la caja y asigna su ID.
// (order_id, box_number) tiene constraint único: colisión -> ErrDuplicate.
func (r *BoxRepo) Create(box *entity.Box) error {
	query := `
		INSERT INTO boxes (order_id, box_number, total_qty, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		box.OrderID, box.BoxNumber, box.TotalQty, box.CreatedBy, box.CreatedAt, box.UpdatedAt,
	).Scan(&box.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("caja %s del pedido %d: %w", box.BoxNumber, box.OrderID, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert box: %w", err)
	}
	return nil
}

// GetByID obtiene una caja con sus ítems; nil si no existe.
func (r *BoxRepo) GetByID(id int64) (*entity.Box, error) {
	query := `
		SELECT id, order_id, box_number, total_qty, created_by, created_at, updated_at
		FROM boxes WHERE id = $1`
	var b entity.Box
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.OrderID, &b.BoxNumber, &b.TotalQty, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get box: %w", err)
	}
	items, err := r.ListLineItems(id)
	if err != nil {
		return nil, err
	}
	b.Items = items
	return &b, nil
}

// GetLineItem obtiene el ítem de la caja para una variante; nil si no existe.
func (r *BoxRepo) GetLineItem(boxID, variantID int64) (*entity.BoxLineItem, error) {
	query := `
		SELECT id, box_id, variant_id, item_name, gender, size, quantity
		FROM box_items WHERE box_id = $1 AND variant_id = $2`
	var item entity.BoxLineItem
	err := r.q.QueryRow(context.Background(), query, boxID, variantID).Scan(
		&item.ID, &item.BoxID, &item.VariantID, &item.ItemName, &item.Gender, &item.Size, &item.Quantity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get box item: %w", err)
	}
	return &item, nil
}

// CreateLineItem persiste un ítem de caja y asigna su ID.
func (r *BoxRepo) CreateLineItem(item *entity.BoxLineItem) error {
	query := `
		INSERT INTO box_items (box_id, variant_id, item_name, gender, size, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.BoxID, item.VariantID, item.ItemName, item.Gender, item.Size, item.Quantity,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert box item: %w", err)
	}
	return nil
}

// UpdateLineItemQty actualiza la cantidad de un ítem de caja.
func (r *BoxRepo) UpdateLineItemQty(itemID, quantity int64) error {
	query := `UPDATE box_items SET quantity = $2 WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, itemID, quantity)
	if err != nil {
		return fmt.Errorf("update box item qty: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("ítem de caja %d: %w", itemID, domain.ErrNotFound)
	}
	return nil
}

// DeleteLineItem elimina un ítem de caja.
func (r *BoxRepo) DeleteLineItem(itemID int64) error {
	query := `DELETE FROM box_items WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, itemID)
	if err != nil {
		return fmt.Errorf("delete box item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("ítem de caja %d: %w", itemID, domain.ErrNotFound)
	}
	return nil
}

// ListLineItems lista los ítems de una caja.
func (r *BoxRepo) ListLineItems(boxID int64) ([]entity.BoxLineItem, error) {
	query := `
		SELECT id, box_id, variant_id, item_name, gender, size, quantity
		FROM box_items WHERE box_id = $1
		ORDER BY item_name, size`
	rows, err := r.q.Query(context.Background(), query, boxID)
	if err != nil {
		return nil, fmt.Errorf("list box items: %w", err)
	}
	defer rows.Close()
	var items []entity.BoxLineItem
	for rows.Next() {
		var item entity.BoxLineItem
		if err := rows.Scan(&item.ID, &item.BoxID, &item.VariantID, &item.ItemName, &item.Gender, &item.Size, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan box item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateTotalQty actualiza la cantidad total de la caja.
func (r *BoxRepo) UpdateTotalQty(boxID, totalQty int64) error {
	query := `UPDATE boxes SET total_qty = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, boxID, totalQty)
	if err != nil {
		return fmt.Errorf("update box total: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("caja %d: %w", boxID, domain.ErrNotFound)
	}
	return nil
}

// UpdateBoxNumber actualiza el número de la caja (renumeración).
func (r *BoxRepo) UpdateBoxNumber(boxID int64, boxNumber string) error {
	query := `UPDATE boxes SET box_number = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, boxID, boxNumber)
	if err != nil {
		return fmt.Errorf("update box number: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("caja %d: %w", boxID, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina la caja; sus ítems caen en cascada.
func (r *BoxRepo) Delete(boxID int64) error {
	query := `DELETE FROM boxes WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, boxID)
	if err != nil {
		return fmt.Errorf("delete box: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("caja %d: %w", boxID, domain.ErrNotFound)
	}
	return nil
}

// ListByOrder lista las cajas del pedido sin ítems (para renumerar).
func (r *BoxRepo) ListByOrder(orderID int64) ([]entity.Box, error) {
	query := `
		SELECT id, order_id, box_number, total_qty, created_by, created_at, updated_at
		FROM boxes WHERE order_id = $1
		ORDER BY (box_number)::bigint`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list boxes by order: %w", err)
	}
	defer rows.Close()
	var boxes []entity.Box
	for rows.Next() {
		var b entity.Box
		if err := rows.Scan(&b.ID, &b.OrderID, &b.BoxNumber, &b.TotalQty, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan box: %w", err)
		}
		boxes = append(boxes, b)
	}
	return boxes, rows.Err()
}

// ListSummariesByOrder lista las cajas del pedido anotadas con el nombre del
// creador y el estado del pedido, ordenadas por número de caja numérico
// descendente (la "10" antes que la "9").
func (r *BoxRepo) ListSummariesByOrder(orderID int64) ([]repository.BoxSummary, error) {
	query := `
		SELECT b.id, b.order_id, b.box_number, b.total_qty, b.created_by, b.created_at, b.updated_at,
		       u.name, o.status
		FROM boxes b
		JOIN users u ON u.id = b.created_by
		JOIN orders o ON o.id = b.order_id
		WHERE b.order_id = $1
		ORDER BY (b.box_number)::bigint DESC`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list box summaries: %w", err)
	}
	defer rows.Close()
	var summaries []repository.BoxSummary
	var ids []int64
	for rows.Next() {
		var s repository.BoxSummary
		if err := rows.Scan(
			&s.Box.ID, &s.Box.OrderID, &s.Box.BoxNumber, &s.Box.TotalQty, &s.Box.CreatedBy,
			&s.Box.CreatedAt, &s.Box.UpdatedAt, &s.CreatorName, &s.OrderStatus,
		); err != nil {
			return nil, fmt.Errorf("scan box summary: %w", err)
		}
		summaries = append(summaries, s)
		ids = append(ids, s.Box.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return summaries, nil
	}

	itemsByBox, err := r.listItemsForBoxes(ids)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		summaries[i].Box.Items = itemsByBox[summaries[i].Box.ID]
	}
	return summaries, nil
}

// GetDetail obtiene la caja con los nombres del pedido, escuela y proyecto; nil si no existe.
func (r *BoxRepo) GetDetail(boxID int64) (*repository.BoxDetail, error) {
	query := `
		SELECT b.id, b.order_id, b.box_number, b.total_qty, b.created_by, b.created_at, b.updated_at,
		       o.status, s.name, s.number, p.name
		FROM boxes b
		JOIN orders o ON o.id = b.order_id
		JOIN schools s ON s.id = o.school_id
		JOIN projects p ON p.id = o.project_id
		WHERE b.id = $1`
	var d repository.BoxDetail
	err := r.q.QueryRow(context.Background(), query, boxID).Scan(
		&d.Box.ID, &d.Box.OrderID, &d.Box.BoxNumber, &d.Box.TotalQty, &d.Box.CreatedBy,
		&d.Box.CreatedAt, &d.Box.UpdatedAt, &d.OrderStatus, &d.SchoolName, &d.SchoolNumber, &d.ProjectName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get box detail: %w", err)
	}
	items, err := r.ListLineItems(boxID)
	if err != nil {
		return nil, err
	}
	d.Box.Items = items
	return &d, nil
}

// listItemsForBoxes carga los ítems de varias cajas en una sola consulta.
func (r *BoxRepo) listItemsForBoxes(boxIDs []int64) (map[int64][]entity.BoxLineItem, error) {
	query := `
		SELECT id, box_id, variant_id, item_name, gender, size, quantity
		FROM box_items WHERE box_id = ANY($1)
		ORDER BY item_name, size`
	rows, err := r.q.Query(context.Background(), query, boxIDs)
	if err != nil {
		return nil, fmt.Errorf("list items for boxes: %w", err)
	}
	defer rows.Close()
	itemsByBox := make(map[int64][]entity.BoxLineItem, len(boxIDs))
	for rows.Next() {
		var item entity.BoxLineItem
		if err := rows.Scan(&item.ID, &item.BoxID, &item.VariantID, &item.ItemName, &item.Gender, &item.Size, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan box item: %w", err)
		}
		itemsByBox[item.BoxID] = append(itemsByBox[item.BoxID], item)
	}
	return itemsByBox, rows.Err()
}
