package packing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uniformes/expedicao-api/internal/domain"
	"github.com/uniformes/expedicao-api/internal/domain/entity"
	dompacking "github.com/uniformes/expedicao-api/internal/domain/packing"
	"github.com/uniformes/expedicao-api/internal/domain/repository"
	"github.com/uniformes/expedicao-api/pkg/logger"
	"github.com/uniformes/expedicao-api/pkg/metrics"
)

// CreateBoxUseCase crea una caja contra un pedido de forma transaccional:
// encabezado + ítems, actualización de las líneas del pedido, débito de stock
// con registro de salida por línea (expandiendo kits por componente) y cierre
// automático del pedido cuando queda completamente expedido.
type CreateBoxUseCase struct {
	txRunner TxRunner
	userRepo repository.UserRepository
	log      *logger.Logger
}

// NewCreateBoxUseCase construye el caso de uso. userRepo va atado al pool: la
// verificación del usuario actuante es una lectura previa, fuera de la tx.
func NewCreateBoxUseCase(txRunner TxRunner, userRepo repository.UserRepository, log *logger.Logger) *CreateBoxUseCase {
	return &CreateBoxUseCase{txRunner: txRunner, userRepo: userRepo, log: log}
}

// BoxLineInput una variante con su cantidad a empacar.
type BoxLineInput struct {
	VariantID int64
	Quantity  int64
}

// OrderLineDelta nueva cantidad expedida que el caller declara para una línea del pedido.
type OrderLineDelta struct {
	OrderLineID     int64
	NewFulfilledQty int64
}

// CreateBoxInput entrada para crear una caja.
type CreateBoxInput struct {
	OrderID   int64
	BoxNumber string
	Lines     []BoxLineInput
	Deltas    []OrderLineDelta
	UserID    int64
}

// CreateBox ejecuta la creación completa en una sola transacción serializable.
// Precondición por delta: la línea existe y NewFulfilledQty <= RequestedQty,
// si no falla con ErrOverFulfillment antes de escribir stock. Cualquier fallo
// aborta la transacción entera: jamás persiste un débito parcial.
func (uc *CreateBoxUseCase) CreateBox(ctx context.Context, input CreateBoxInput) (*entity.Box, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %d: %w", input.UserID, domain.ErrNotFound)
	}

	now := time.Now()
	txID := uuid.New().String()

	var created *entity.Box
	metrics.TxAttempts.WithLabelValues("create_box").Inc()
	err = uc.txRunner.RunSerializable(ctx, func(
		boxRepo repository.BoxRepository,
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		outputRepo repository.OutputRecordRepository,
		variantRepo repository.VariantRepository,
	) error {
		order, err := orderRepo.GetByID(input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("pedido %d: %w", input.OrderID, domain.ErrNotFound)
		}

		// 1. Encabezado de la caja
		box := &entity.Box{
			OrderID:   input.OrderID,
			BoxNumber: input.BoxNumber,
			TotalQty:  totalQuantity(input.Lines),
			CreatedBy: input.UserID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := boxRepo.Create(box); err != nil {
			return err
		}

		// 2. Ítems de la caja, con metadata descriptiva desnormalizada y la
		// línea ya clasificada como simple o kit para el paso de stock.
		resolved := make(map[int64]dompacking.ResolvedLine, len(input.Lines))
		for _, line := range input.Lines {
			rl, err := resolveLine(variantRepo, line.VariantID)
			if err != nil {
				return err
			}
			resolved[line.VariantID] = rl
			variant := rl.Variant()
			item := &entity.BoxLineItem{
				BoxID:     box.ID,
				VariantID: line.VariantID,
				ItemName:  variant.ItemName,
				Gender:    variant.Gender,
				Size:      variant.Size,
				Quantity:  line.Quantity,
			}
			if err := boxRepo.CreateLineItem(item); err != nil {
				return err
			}
			box.Items = append(box.Items, *item)
		}

		// 3. Nueva cantidad expedida por línea del pedido (precondición antes de escribir)
		for _, delta := range input.Deltas {
			orderLine, err := orderRepo.GetLine(delta.OrderLineID)
			if err != nil {
				return err
			}
			if orderLine == nil {
				return fmt.Errorf("línea de pedido %d: %w", delta.OrderLineID, domain.ErrNotFound)
			}
			if delta.NewFulfilledQty > orderLine.RequestedQty {
				return fmt.Errorf("línea %d: %w", delta.OrderLineID, domain.ErrOverFulfillment)
			}
			if delta.NewFulfilledQty < 0 {
				return fmt.Errorf("línea %d: %w", delta.OrderLineID, domain.ErrInvalidInput)
			}
			if err := orderRepo.UpdateLineFulfilledQty(delta.OrderLineID, delta.NewFulfilledQty); err != nil {
				return err
			}
		}

		// 4. Débito de stock + registro de salida por ítem
		for _, line := range input.Lines {
			if err := uc.debitStock(stockRepo, outputRepo, resolved[line.VariantID], line, box, txID, now, input.UserID); err != nil {
				return err
			}
		}

		// 5. Cierre automático del pedido si todas las líneas quedaron expedidas
		if err := closeOrderIfFulfilled(orderRepo, order); err != nil {
			return err
		}

		created = box
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BoxesCreated.Inc()
	uc.log.Info().
		Int64("order_id", input.OrderID).
		Str("box_number", input.BoxNumber).
		Int64("box_id", created.ID).
		Msg("caja creada")
	return created, nil
}

// debitStock aplica el débito según el tipo de línea: simple debita la variante
// directa con un registro de origen nulo; kit debita cada componente con un
// registro por componente marcado con el id del kit.
func (uc *CreateBoxUseCase) debitStock(
	stockRepo repository.StockRepository,
	outputRepo repository.OutputRecordRepository,
	rl dompacking.ResolvedLine,
	line BoxLineInput,
	box *entity.Box,
	txID string,
	now time.Time,
	userID int64,
) error {
	switch l := rl.(type) {
	case dompacking.SimpleLine:
		if err := stockRepo.AdjustQuantity(line.VariantID, -line.Quantity); err != nil {
			return err
		}
		return outputRepo.Create(&entity.OutputRecord{
			TransactionID:  txID,
			StockVariantID: line.VariantID,
			OrderID:        box.OrderID,
			BoxID:          box.ID,
			Quantity:       line.Quantity,
			CreatedAt:      now,
			CreatedBy:      userID,
		})
	case dompacking.KitLine:
		kitID := l.Variant().ID
		for _, comp := range l.Components {
			qty := comp.UnitsPerKit * line.Quantity
			if err := stockRepo.AdjustQuantity(comp.ComponentVariantID, -qty); err != nil {
				return err
			}
			origin := kitID
			if err := outputRepo.Create(&entity.OutputRecord{
				TransactionID:      txID,
				StockVariantID:     comp.ComponentVariantID,
				OrderID:            box.OrderID,
				BoxID:              box.ID,
				KitOriginVariantID: &origin,
				Quantity:           qty,
				CreatedAt:          now,
				CreatedBy:          userID,
			}); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("línea %d: %w", line.VariantID, domain.ErrInvalidInput)
}

func (uc *CreateBoxUseCase) validate(input CreateBoxInput) error {
	if input.OrderID <= 0 || input.UserID <= 0 || len(input.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	if _, err := dompacking.ParseBoxNumber(input.BoxNumber); err != nil {
		return err
	}
	for _, line := range input.Lines {
		if line.VariantID <= 0 || line.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// closeOrderIfFulfilled relee las líneas del pedido y lo cierra cuando todas
// quedaron completamente expedidas. Transición de una sola vía.
func closeOrderIfFulfilled(orderRepo repository.OrderRepository, order *entity.Order) error {
	if order.Status == entity.OrderStatusClosed {
		return nil
	}
	lines, err := orderRepo.ListLines(order.ID)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if !line.Fulfilled() {
			return nil
		}
	}
	return orderRepo.UpdateStatus(order.ID, entity.OrderStatusClosed)
}

func totalQuantity(lines []BoxLineInput) int64 {
	var total int64
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}
