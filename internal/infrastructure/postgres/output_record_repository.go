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

var _ repository.OutputRecordRepository = (*OutputRecordRepo)(nil)

// OutputRecordRepo implementación de OutputRecordRepository sobre PostgreSQL
// (usable con pool o tx).
type OutputRecordRepo struct {
	q Querier
}

// NewOutputRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOutputRecordRepository(q Querier) *OutputRecordRepo {
	return &OutputRecordRepo{q: q}
}

// Create persiste un registro de salida y asigna su ID.
func (r *OutputRecordRepo) Create(record *entity.OutputRecord) error {
	query := `
		INSERT INTO output_records (transaction_id, stock_variant_id, order_id, box_id, kit_origin_variant_id, quantity, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		record.TransactionID, record.StockVariantID, record.OrderID, record.BoxID,
		record.KitOriginVariantID, record.Quantity, record.CreatedAt, record.CreatedBy,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("insert output record: %w", err)
	}
	return nil
}

// Find localiza el registro por su clave lógica (caja, variante, pedido,
// origen-kit); nil si no existe. Origen nulo busca la salida de una línea simple.
func (r *OutputRecordRepo) Find(boxID, variantID, orderID int64, kitOriginVariantID *int64) (*entity.OutputRecord, error) {
	query := `
		SELECT id, transaction_id, stock_variant_id, order_id, box_id, kit_origin_variant_id, quantity, created_at, created_by
		FROM output_records
		WHERE box_id = $1 AND stock_variant_id = $2 AND order_id = $3
		  AND kit_origin_variant_id IS NOT DISTINCT FROM $4`
	var rec entity.OutputRecord
	err := r.q.QueryRow(context.Background(), query, boxID, variantID, orderID, kitOriginVariantID).Scan(
		&rec.ID, &rec.TransactionID, &rec.StockVariantID, &rec.OrderID, &rec.BoxID,
		&rec.KitOriginVariantID, &rec.Quantity, &rec.CreatedAt, &rec.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find output record: %w", err)
	}
	return &rec, nil
}

// UpdateQuantity fija la cantidad del registro.
func (r *OutputRecordRepo) UpdateQuantity(recordID, quantity int64) error {
	query := `UPDATE output_records SET quantity = $2 WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, recordID, quantity)
	if err != nil {
		return fmt.Errorf("update output record qty: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("registro de salida %d: %w", recordID, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina un registro de salida.
func (r *OutputRecordRepo) Delete(recordID int64) error {
	query := `DELETE FROM output_records WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, recordID)
	if err != nil {
		return fmt.Errorf("delete output record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("registro de salida %d: %w", recordID, domain.ErrNotFound)
	}
	return nil
}

// DeleteByBox elimina todo registro que aún referencie la caja.
func (r *OutputRecordRepo) DeleteByBox(boxID int64) error {
	query := `DELETE FROM output_records WHERE box_id = $1`
	if _, err := r.q.Exec(context.Background(), query, boxID); err != nil {
		return fmt.Errorf("delete output records by box: %w", err)
	}
	return nil
}

// SummaryByItem agrupa las salidas vivas por nombre de ítem.
func (r *OutputRecordRepo) SummaryByItem() ([]repository.OutputSummaryRow, error) {
	query := `
		SELECT v.item_name, COALESCE(SUM(o.quantity), 0)
		FROM output_records o
		JOIN item_variants v ON v.id = o.stock_variant_id
		GROUP BY v.item_name
		ORDER BY SUM(o.quantity) DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("output summary: %w", err)
	}
	defer rows.Close()
	var result []repository.OutputSummaryRow
	for rows.Next() {
		var row repository.OutputSummaryRow
		if err := rows.Scan(&row.ItemName, &row.Total); err != nil {
			return nil, fmt.Errorf("scan output summary: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
