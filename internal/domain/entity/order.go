package entity

import "time"

// Estados de un pedido (grade). La transición OPEN -> CLOSED es de una sola vía:
// el motor cierra el pedido cuando todas sus líneas quedan completamente expedidas
// y nunca lo reabre.
const (
	OrderStatusOpen       = "OPEN"
	OrderStatusInProgress = "IN_PROGRESS"
	OrderStatusClosed     = "CLOSED"
)

// Order representa un pedido de una escuela dentro de un proyecto, compuesto por líneas.
type Order struct {
	ID        int64
	SchoolID  int64
	ProjectID int64
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderLine es una línea del pedido: cantidad solicitada vs. expedida de una variante.
// Invariante al commit: 0 <= FulfilledQty <= RequestedQty.
type OrderLine struct {
	ID           int64
	OrderID      int64
	VariantID    int64
	RequestedQty int64
	FulfilledQty int64
}

// Fulfilled indica si la línea quedó completamente expedida.
func (l OrderLine) Fulfilled() bool {
	return l.FulfilledQty == l.RequestedQty
}
