package entity

// Géneros de un ítem.
const (
	GenderMale   = "MASCULINO"
	GenderFemale = "FEMININO"
	GenderUnisex = "UNISSEX"
)

// ItemVariant es una configuración empacable: ítem x talla x género.
// Si IsKit es true, la variante se descompone en componentes al mover stock;
// la composición es configuración compartida de solo lectura para el motor.
type ItemVariant struct {
	ID         int64
	ItemName   string
	Gender     string
	Size       string
	IsKit      bool
	Components []KitComponent
}

// KitComponent es un componente de un kit con su multiplicador por unidad.
type KitComponent struct {
	ComponentVariantID int64
	UnitsPerKit        int64
}
