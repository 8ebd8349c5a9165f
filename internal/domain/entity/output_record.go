package entity

import "time"

// OutputRecord es el registro de procedencia de un débito de stock causado por
// una caja. Para una línea normal existe exactamente un registro con
// KitOriginVariantID nulo por (caja, variante); para una línea kit existe un
// registro por componente con KitOriginVariantID = id del kit. El ajuste de
// cajas usa estos registros como fuente de verdad para revertir o corregir
// débitos anteriores.
type OutputRecord struct {
	ID                 int64
	TransactionID      string
	StockVariantID     int64
	OrderID            int64
	BoxID              int64
	KitOriginVariantID *int64
	Quantity           int64
	CreatedAt          time.Time
	CreatedBy          int64
}
