package entity

import "time"

// StockEntry es el saldo en mano de una variante (relación 1:1 con item_variants).
// Solo se muta dentro de una transacción del motor de conciliación.
type StockEntry struct {
	VariantID      int64
	QuantityOnHand int64
	UpdatedAt      time.Time
}
