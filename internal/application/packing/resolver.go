package packing

import (
	"fmt"

	"github.com/uniformes/expedicao-api/internal/domain"
	dompacking "github.com/uniformes/expedicao-api/internal/domain/packing"
	"github.com/uniformes/expedicao-api/internal/domain/repository"
)

// resolveLine carga la variante con su composición y la clasifica como línea
// simple o kit. Lectura pura; seguro de llamar varias veces dentro de una tx.
func resolveLine(variantRepo repository.VariantRepository, variantID int64) (dompacking.ResolvedLine, error) {
	variant, err := variantRepo.GetWithComponents(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, fmt.Errorf("variante %d: %w", variantID, domain.ErrNotFound)
	}
	return dompacking.ResolveLine(variant), nil
}
