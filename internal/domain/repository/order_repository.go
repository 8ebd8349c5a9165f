package repository

import "github.com/uniformes/expedicao-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para pedidos y sus líneas.
type OrderRepository interface {
	GetByID(id int64) (*entity.Order, error)
	UpdateStatus(orderID int64, status string) error
	GetLine(lineID int64) (*entity.OrderLine, error)
	// GetLineByVariant obtiene la línea del pedido para una variante; nil si no existe.
	GetLineByVariant(orderID, variantID int64) (*entity.OrderLine, error)
	UpdateLineFulfilledQty(lineID, fulfilledQty int64) error
	ListLines(orderID int64) ([]entity.OrderLine, error)
}
