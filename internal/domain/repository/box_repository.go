package repository

import "github.com/uniformes/expedicao-api/internal/domain/entity"

// BoxSummary es la proyección plana de una caja para el listado por pedido:
// caja + nombre del usuario creador + estado y fechas del pedido padre.
type BoxSummary struct {
	Box         entity.Box
	CreatorName string
	OrderStatus string
}

// BoxDetail es la proyección completa de una caja con los nombres del pedido,
// la escuela y el proyecto.
type BoxDetail struct {
	Box          entity.Box
	OrderStatus  string
	SchoolName   string
	SchoolNumber string
	ProjectName  string
}

// BoxRepository define el puerto de persistencia para cajas y sus ítems.
// Usado dentro de transacciones del motor de conciliación.
type BoxRepository interface {
	Create(box *entity.Box) error
	GetByID(id int64) (*entity.Box, error)
	// GetLineItem obtiene el ítem de la caja para una variante; nil si no existe.
	GetLineItem(boxID, variantID int64) (*entity.BoxLineItem, error)
	CreateLineItem(item *entity.BoxLineItem) error
	UpdateLineItemQty(itemID, quantity int64) error
	DeleteLineItem(itemID int64) error
	ListLineItems(boxID int64) ([]entity.BoxLineItem, error)
	UpdateTotalQty(boxID, totalQty int64) error
	UpdateBoxNumber(boxID int64, boxNumber string) error
	Delete(boxID int64) error
	// ListByOrder devuelve las cajas del pedido (sin proyección) para renumerar.
	ListByOrder(orderID int64) ([]entity.Box, error)
	// ListSummariesByOrder devuelve el listado anotado, ordenado por número de
	// caja interpretado numéricamente, descendente.
	ListSummariesByOrder(orderID int64) ([]BoxSummary, error)
	GetDetail(boxID int64) (*BoxDetail, error)
}
