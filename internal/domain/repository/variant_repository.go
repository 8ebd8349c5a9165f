package repository

import "github.com/uniformes/expedicao-api/internal/domain/entity"

// VariantRepository define el puerto de lectura del catálogo de variantes.
// GetWithComponents carga la composición del kit cuando aplica; es la fuente
// del resolver de kits y es seguro llamarlo repetidas veces dentro de una tx.
type VariantRepository interface {
	GetWithComponents(variantID int64) (*entity.ItemVariant, error)
}
