package packing

import (
	"context"
	"fmt"

	"github.com/uniformes/expedicao-api/internal/domain"
	"github.com/uniformes/expedicao-api/internal/domain/entity"
	dompacking "github.com/uniformes/expedicao-api/internal/domain/packing"
	"github.com/uniformes/expedicao-api/internal/domain/repository"
	"github.com/uniformes/expedicao-api/pkg/logger"
	"github.com/uniformes/expedicao-api/pkg/metrics"
)

// AdjustBoxUseCase modifica el contenido de una caja tratando la entrada como
// estado objetivo, no como parche incremental: por cada línea calcula el delta
// contra el estado actual, revierte o corrige los registros de salida que la
// creación dejó (incluida la descomposición de kits), mantiene coherentes las
// cantidades expedidas del pedido y, si la caja queda vacía, la elimina y
// renumera las restantes. Todo bajo una transacción serializable con reintento
// acotado ante conflictos.
type AdjustBoxUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewAdjustBoxUseCase construye el caso de uso.
func NewAdjustBoxUseCase(txRunner TxRunner, log *logger.Logger) *AdjustBoxUseCase {
	return &AdjustBoxUseCase{txRunner: txRunner, log: log}
}

// TargetLine cantidad deseada para una variante ya presente en la caja.
type TargetLine struct {
	VariantID int64
	Quantity  int64
}

// AdjustBoxInput entrada para ajustar una caja.
type AdjustBoxInput struct {
	BoxID   int64
	OrderID int64
	Targets []TargetLine
}

// AdjustResult es el resultado con dos variantes: caja actualizada o caja
// eliminada. Vaciar una caja es un desenlace válido, no un error.
type AdjustResult struct {
	deleted      bool
	box          *entity.Box
	deletedBoxID int64
	notice       string
}

// Updated devuelve la caja refrescada; ok es false si la caja fue eliminada.
func (r AdjustResult) Updated() (*entity.Box, bool) { return r.box, !r.deleted }

// Deleted devuelve el id de la caja eliminada y el aviso; ok es false si la
// caja sigue existiendo.
func (r AdjustResult) Deleted() (int64, string, bool) {
	return r.deletedBoxID, r.notice, r.deleted
}

func adjustUpdated(box *entity.Box) AdjustResult {
	return AdjustResult{box: box}
}

func adjustDeleted(boxID int64, notice string) AdjustResult {
	return AdjustResult{deleted: true, deletedBoxID: boxID, notice: notice}
}

// AdjustBox aplica el estado objetivo dentro de una transacción serializable,
// reintentando hasta tres veces solo ante conflictos de serialización.
// Referencias faltantes (caja, ítem, registro de salida, línea del pedido)
// fallan con ErrNotFound y abortan la transacción completa.
func (uc *AdjustBoxUseCase) AdjustBox(ctx context.Context, input AdjustBoxInput) (AdjustResult, error) {
	if input.BoxID <= 0 || input.OrderID <= 0 || len(input.Targets) == 0 {
		return AdjustResult{}, domain.ErrInvalidInput
	}
	for _, target := range input.Targets {
		if target.VariantID <= 0 || target.Quantity < 0 {
			return AdjustResult{}, domain.ErrInvalidInput
		}
	}

	var result AdjustResult
	err := runWithRetry(ctx, maxTxAttempts, isSerializationConflict, func() error {
		metrics.TxAttempts.WithLabelValues("adjust_box").Inc()
		return uc.txRunner.RunSerializable(ctx, func(
			boxRepo repository.BoxRepository,
			orderRepo repository.OrderRepository,
			stockRepo repository.StockRepository,
			outputRepo repository.OutputRecordRepository,
			variantRepo repository.VariantRepository,
		) error {
			var err error
			result, err = uc.adjust(boxRepo, orderRepo, stockRepo, outputRepo, variantRepo, input)
			return err
		})
	})
	if err != nil {
		return AdjustResult{}, err
	}

	if id, _, ok := result.Deleted(); ok {
		metrics.BoxesDeleted.Inc()
		uc.log.Info().Int64("box_id", id).Int64("order_id", input.OrderID).Msg("caja vaciada y eliminada")
	} else {
		uc.log.Info().Int64("box_id", input.BoxID).Int64("order_id", input.OrderID).Msg("caja ajustada")
	}
	return result, nil
}

// adjust es el cuerpo de la transacción: procesa cada línea objetivo y después
// decide entre refrescar la caja o eliminarla y renumerar.
func (uc *AdjustBoxUseCase) adjust(
	boxRepo repository.BoxRepository,
	orderRepo repository.OrderRepository,
	stockRepo repository.StockRepository,
	outputRepo repository.OutputRecordRepository,
	variantRepo repository.VariantRepository,
	input AdjustBoxInput,
) (AdjustResult, error) {
	box, err := boxRepo.GetByID(input.BoxID)
	if err != nil {
		return AdjustResult{}, err
	}
	if box == nil || box.OrderID != input.OrderID {
		return AdjustResult{}, fmt.Errorf("caja %d: %w", input.BoxID, domain.ErrNotFound)
	}

	for _, target := range input.Targets {
		item, err := boxRepo.GetLineItem(input.BoxID, target.VariantID)
		if err != nil {
			return AdjustResult{}, err
		}
		if item == nil {
			return AdjustResult{}, fmt.Errorf("variante %d no está en la caja %d: %w", target.VariantID, input.BoxID, domain.ErrNotFound)
		}

		rl, err := resolveLine(variantRepo, target.VariantID)
		if err != nil {
			return AdjustResult{}, err
		}

		// diff > 0: cantidad que sale de la caja y vuelve al stock;
		// diff < 0: cantidad que entra a la caja y se debita del stock.
		diff := item.Quantity - target.Quantity

		switch l := rl.(type) {
		case dompacking.KitLine:
			err = uc.adjustKitLine(boxRepo, orderRepo, stockRepo, outputRepo, l, item, target, input, diff)
		case dompacking.SimpleLine:
			err = uc.adjustSimpleLine(boxRepo, orderRepo, stockRepo, outputRepo, item, target, input, diff)
		default:
			err = domain.ErrInvalidInput
		}
		if err != nil {
			return AdjustResult{}, err
		}
	}

	remaining, err := boxRepo.ListLineItems(input.BoxID)
	if err != nil {
		return AdjustResult{}, err
	}
	if len(remaining) == 0 {
		notice, err := uc.deleteEmptyBox(boxRepo, outputRepo, box)
		if err != nil {
			return AdjustResult{}, err
		}
		return adjustDeleted(box.ID, notice), nil
	}

	var total int64
	for _, item := range remaining {
		total += item.Quantity
	}
	if err := boxRepo.UpdateTotalQty(input.BoxID, total); err != nil {
		return AdjustResult{}, err
	}
	refreshed, err := boxRepo.GetByID(input.BoxID)
	if err != nil {
		return AdjustResult{}, err
	}
	if refreshed == nil {
		return AdjustResult{}, fmt.Errorf("caja %d: %w", input.BoxID, domain.ErrNotFound)
	}
	return adjustUpdated(refreshed), nil
}

// adjustKitLine corrige los registros de salida de cada componente del kit.
// Exige que la línea sea rastreable: cada componente debe tener el registro
// que la creación dejó con origen = id del kit.
func (uc *AdjustBoxUseCase) adjustKitLine(
	boxRepo repository.BoxRepository,
	orderRepo repository.OrderRepository,
	stockRepo repository.StockRepository,
	outputRepo repository.OutputRecordRepository,
	line dompacking.KitLine,
	item *entity.BoxLineItem,
	target TargetLine,
	input AdjustBoxInput,
	diff int64,
) error {
	kitID := line.Variant().ID
	for _, comp := range line.Components {
		record, err := outputRepo.Find(input.BoxID, comp.ComponentVariantID, input.OrderID, &kitID)
		if err != nil {
			return err
		}
		if record == nil {
			return fmt.Errorf("salida del componente %d del kit %d: %w", comp.ComponentVariantID, kitID, domain.ErrNotFound)
		}
		if target.Quantity == 0 {
			// Reversión completa: borra el registro y devuelve todo lo debitado.
			if err := outputRepo.Delete(record.ID); err != nil {
				return err
			}
			if err := stockRepo.AdjustQuantity(comp.ComponentVariantID, record.Quantity); err != nil {
				return err
			}
			continue
		}
		if err := outputRepo.UpdateQuantity(record.ID, target.Quantity*comp.UnitsPerKit); err != nil {
			return err
		}
		if err := stockRepo.AdjustQuantity(comp.ComponentVariantID, diff*comp.UnitsPerKit); err != nil {
			return err
		}
	}

	// La línea del pedido del propio kit, no la de sus componentes.
	orderLine, err := orderRepo.GetLineByVariant(input.OrderID, kitID)
	if err != nil {
		return err
	}
	if orderLine == nil {
		return fmt.Errorf("línea del pedido para el kit %d: %w", kitID, domain.ErrNotFound)
	}
	if target.Quantity == 0 {
		if err := orderRepo.UpdateLineFulfilledQty(orderLine.ID, orderLine.FulfilledQty-item.Quantity); err != nil {
			return err
		}
	} else if diff != 0 {
		if err := orderRepo.UpdateLineFulfilledQty(orderLine.ID, orderLine.FulfilledQty-diff); err != nil {
			return err
		}
	}

	if target.Quantity == 0 {
		return boxRepo.DeleteLineItem(item.ID)
	}
	return boxRepo.UpdateLineItemQty(item.ID, target.Quantity)
}

// adjustSimpleLine corrige el único registro de salida (origen nulo) de una
// línea no kit.
func (uc *AdjustBoxUseCase) adjustSimpleLine(
	boxRepo repository.BoxRepository,
	orderRepo repository.OrderRepository,
	stockRepo repository.StockRepository,
	outputRepo repository.OutputRecordRepository,
	item *entity.BoxLineItem,
	target TargetLine,
	input AdjustBoxInput,
	diff int64,
) error {
	record, err := outputRepo.Find(input.BoxID, target.VariantID, input.OrderID, nil)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("salida de la variante %d en la caja %d: %w", target.VariantID, input.BoxID, domain.ErrNotFound)
	}

	orderLine, err := orderRepo.GetLineByVariant(input.OrderID, target.VariantID)
	if err != nil {
		return err
	}
	if orderLine == nil {
		return fmt.Errorf("línea del pedido para la variante %d: %w", target.VariantID, domain.ErrNotFound)
	}

	if target.Quantity == 0 {
		// Reversión completa: borra el registro, devuelve todo lo debitado y
		// deshace la cantidad expedida.
		if err := outputRepo.Delete(record.ID); err != nil {
			return err
		}
		if err := stockRepo.AdjustQuantity(target.VariantID, record.Quantity); err != nil {
			return err
		}
		if err := orderRepo.UpdateLineFulfilledQty(orderLine.ID, orderLine.FulfilledQty-record.Quantity); err != nil {
			return err
		}
		return boxRepo.DeleteLineItem(item.ID)
	}

	if err := outputRepo.UpdateQuantity(record.ID, target.Quantity); err != nil {
		return err
	}
	if diff != 0 {
		if err := stockRepo.AdjustQuantity(target.VariantID, diff); err != nil {
			return err
		}
		if err := orderRepo.UpdateLineFulfilledQty(orderLine.ID, orderLine.FulfilledQty-diff); err != nil {
			return err
		}
	}
	return boxRepo.UpdateLineItemQty(item.ID, target.Quantity)
}

// deleteEmptyBox elimina la caja vaciada, limpia cualquier registro de salida
// que aún la referencie y renumera las cajas posteriores del pedido para que
// la secuencia quede densa, conservando el ancho del padding.
func (uc *AdjustBoxUseCase) deleteEmptyBox(
	boxRepo repository.BoxRepository,
	outputRepo repository.OutputRecordRepository,
	box *entity.Box,
) (string, error) {
	deletedNumber, err := dompacking.ParseBoxNumber(box.BoxNumber)
	if err != nil {
		return "", err
	}

	// Por construcción los registros ya fueron borrados línea a línea; esto
	// cubre registros huérfanos de datos anteriores a la trazabilidad.
	if err := outputRepo.DeleteByBox(box.ID); err != nil {
		return "", err
	}
	if err := boxRepo.Delete(box.ID); err != nil {
		return "", err
	}

	others, err := boxRepo.ListByOrder(box.OrderID)
	if err != nil {
		return "", err
	}
	for _, other := range others {
		n, err := dompacking.ParseBoxNumber(other.BoxNumber)
		if err != nil {
			return "", err
		}
		if n <= deletedNumber {
			continue
		}
		renumbered, err := dompacking.DecrementBoxNumber(other.BoxNumber)
		if err != nil {
			return "", err
		}
		if err := boxRepo.UpdateBoxNumber(other.ID, renumbered); err != nil {
			return "", err
		}
	}

	notice := fmt.Sprintf("La caja %s quedó vacía y fue eliminada; las cajas posteriores fueron renumeradas.", box.BoxNumber)
	return notice, nil
}
