package packing

import (
	"context"
	"fmt"

	"github.com/uniformes/expedicao-api/internal/domain"
	"github.com/uniformes/expedicao-api/internal/domain/entity"
	"github.com/uniformes/expedicao-api/internal/domain/repository"
	"github.com/uniformes/expedicao-api/pkg/timezone"
)

// BoxQueryUseCase expone las proyecciones de lectura de cajas: listado por
// pedido y detalle. No muta estado; va directo al pool, sin transacción.
type BoxQueryUseCase struct {
	boxRepo    repository.BoxRepository
	normalizer *timezone.Normalizer
}

// NewBoxQueryUseCase construye el caso de uso.
func NewBoxQueryUseCase(boxRepo repository.BoxRepository, normalizer *timezone.Normalizer) *BoxQueryUseCase {
	return &BoxQueryUseCase{boxRepo: boxRepo, normalizer: normalizer}
}

// GetBoxesForOrder lista las cajas del pedido anotadas con el nombre del
// creador y el estado del pedido, ordenadas por número de caja interpretado
// numéricamente, descendente (la 10 antes que la 9).
func (uc *BoxQueryUseCase) GetBoxesForOrder(ctx context.Context, orderID int64) ([]repository.BoxSummary, error) {
	if orderID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	summaries, err := uc.boxRepo.ListSummariesByOrder(orderID)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		uc.normalizeBoxTimes(&summaries[i].Box)
	}
	return summaries, nil
}

// GetBoxDetail devuelve una caja con el pedido, la escuela y el proyecto, y
// los timestamps normalizados a la zona horaria de display.
func (uc *BoxQueryUseCase) GetBoxDetail(ctx context.Context, boxID int64) (*repository.BoxDetail, error) {
	if boxID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	detail, err := uc.boxRepo.GetDetail(boxID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("caja %d: %w", boxID, domain.ErrNotFound)
	}
	uc.normalizeBoxTimes(&detail.Box)
	return detail, nil
}

func (uc *BoxQueryUseCase) normalizeBoxTimes(box *entity.Box) {
	box.CreatedAt = uc.normalizer.Normalize(box.CreatedAt)
	box.UpdatedAt = uc.normalizer.Normalize(box.UpdatedAt)
}
