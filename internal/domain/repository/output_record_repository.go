package repository

import "github.com/uniformes/expedicao-api/internal/domain/entity"

// OutputSummaryRow es una fila del resumen de salidas agrupado por ítem.
type OutputSummaryRow struct {
	ItemName string
	Total    int64
}

// OutputRecordRepository define el puerto de persistencia para registros de
// salida (débitos de stock con procedencia). La clave lógica de búsqueda es
// (caja, variante, pedido, origen-kit); el ajuste depende de encontrar
// exactamente el registro que la creación dejó.
type OutputRecordRepository interface {
	Create(record *entity.OutputRecord) error
	// Find localiza el registro por su clave lógica; kitOriginVariantID nil
	// busca el registro de una línea simple. Devuelve nil si no existe.
	Find(boxID, variantID, orderID int64, kitOriginVariantID *int64) (*entity.OutputRecord, error)
	UpdateQuantity(recordID, quantity int64) error
	Delete(recordID int64) error
	// DeleteByBox elimina todo registro que aún referencie la caja (limpieza
	// defensiva al eliminar una caja vacía).
	DeleteByBox(boxID int64) error
	// SummaryByItem agrupa las salidas vivas por nombre de ítem.
	SummaryByItem() ([]OutputSummaryRow, error)
}
