package entity

import "time"

// Box representa una caja física empacada contra un pedido.
// BoxNumber es texto con ceros a la izquierda y forma una secuencia densa por
// pedido; al eliminar una caja las posteriores se renumeran para no dejar huecos.
type Box struct {
	ID        int64
	OrderID   int64
	BoxNumber string
	TotalQty  int64
	CreatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []BoxLineItem
}

// BoxLineItem es una variante con su cantidad dentro de una caja.
// Los datos descriptivos (nombre, género, talla) van desnormalizados para display.
type BoxLineItem struct {
	ID        int64
	BoxID     int64
	VariantID int64
	ItemName  string
	Gender    string
	Size      string
	Quantity  int64
}
