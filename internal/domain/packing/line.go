package packing

import "github.com/uniformes/expedicao-api/internal/domain/entity"

// ResolvedLine es el resultado del resolver de kits: una línea de caja ya
// clasificada como simple o kit. El motor despacha por tipo una sola vez en
// lugar de ramificar por el flag IsKit en cada paso.
type ResolvedLine interface {
	Variant() *entity.ItemVariant
}

// SimpleLine es una variante que debita stock directamente.
type SimpleLine struct {
	variant *entity.ItemVariant
}

// Variant devuelve la variante de la línea.
func (l SimpleLine) Variant() *entity.ItemVariant { return l.variant }

// KitLine es una variante compuesta que se descompone en componentes al
// debitar stock; cada componente lleva su multiplicador por unidad de kit.
type KitLine struct {
	variant    *entity.ItemVariant
	Components []entity.KitComponent
}

// Variant devuelve la variante del kit.
func (l KitLine) Variant() *entity.ItemVariant { return l.variant }

// ResolveLine clasifica una variante como línea simple o kit.
func ResolveLine(v *entity.ItemVariant) ResolvedLine {
	if v.IsKit {
		return KitLine{variant: v, Components: v.Components}
	}
	return SimpleLine{variant: v}
}
