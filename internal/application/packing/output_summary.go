package packing

import (
	"context"
	"fmt"

	"github.com/uniformes/expedicao-api/internal/domain/repository"
)

// OutputSummaryRow una fila del resumen de salidas con su porcentaje del total.
type OutputSummaryRow struct {
	ItemName string
	Total    int64
	Percent  string
}

// OutputSummaryUseCase agrega los registros de salida vivos por ítem, con el
// total general y la participación porcentual de cada uno.
type OutputSummaryUseCase struct {
	outputRepo repository.OutputRecordRepository
}

// NewOutputSummaryUseCase construye el caso de uso.
func NewOutputSummaryUseCase(outputRepo repository.OutputRecordRepository) *OutputSummaryUseCase {
	return &OutputSummaryUseCase{outputRepo: outputRepo}
}

// Summarize devuelve el resumen y el total general de unidades salidas.
func (uc *OutputSummaryUseCase) Summarize(ctx context.Context) ([]OutputSummaryRow, int64, error) {
	rows, err := uc.outputRepo.SummaryByItem()
	if err != nil {
		return nil, 0, err
	}
	var grandTotal int64
	for _, row := range rows {
		grandTotal += row.Total
	}
	result := make([]OutputSummaryRow, 0, len(rows))
	for _, row := range rows {
		percent := "0.00%"
		if grandTotal > 0 {
			percent = fmt.Sprintf("%.2f%%", float64(row.Total)/float64(grandTotal)*100)
		}
		result = append(result, OutputSummaryRow{ItemName: row.ItemName, Total: row.Total, Percent: percent})
	}
	return result, grandTotal, nil
}
