package dto

import "time"

// CreateBoxRequest cuerpo para crear una caja contra un pedido.
type CreateBoxRequest struct {
	OrderID   int64                 `json:"order_id"`
	BoxNumber string                `json:"box_number"`
	Items     []BoxItemRequest      `json:"items"`
	Lines     []OrderLineDeltaInput `json:"order_lines"`
}

// BoxItemRequest una variante con su cantidad a empacar.
type BoxItemRequest struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int64 `json:"quantity"`
}

// OrderLineDeltaInput nueva cantidad expedida declarada para una línea del pedido.
type OrderLineDeltaInput struct {
	OrderLineID     int64 `json:"order_line_id"`
	NewFulfilledQty int64 `json:"new_fulfilled_qty"`
}

// AdjustBoxRequest estado objetivo del contenido de una caja.
type AdjustBoxRequest struct {
	OrderID int64            `json:"order_id"`
	Items   []BoxItemRequest `json:"items"`
}

// BoxItemResponse un ítem de caja en respuestas.
type BoxItemResponse struct {
	ID        int64  `json:"id"`
	VariantID int64  `json:"variant_id"`
	ItemName  string `json:"item_name"`
	Gender    string `json:"gender"`
	Size      string `json:"size"`
	Quantity  int64  `json:"quantity"`
}

// BoxResponse una caja en respuestas.
type BoxResponse struct {
	ID        int64             `json:"id"`
	OrderID   int64             `json:"order_id"`
	BoxNumber string            `json:"box_number"`
	TotalQty  int64             `json:"total_qty"`
	CreatedBy int64             `json:"created_by"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Items     []BoxItemResponse `json:"items"`
}

// BoxSummaryResponse una caja anotada en el listado por pedido.
type BoxSummaryResponse struct {
	BoxResponse
	CreatorName string `json:"creator_name"`
	OrderStatus string `json:"order_status"`
}

// BoxDetailResponse el detalle de una caja con pedido, escuela y proyecto.
type BoxDetailResponse struct {
	BoxResponse
	OrderStatus  string `json:"order_status"`
	SchoolName   string `json:"school_name"`
	SchoolNumber string `json:"school_number"`
	ProjectName  string `json:"project_name"`
}

// BoxDeletedResponse resultado del ajuste cuando la caja quedó vacía y fue
// eliminada: desenlace válido, no un error.
type BoxDeletedResponse struct {
	Status  string `json:"status"` // siempre "DELETED"
	BoxID   int64  `json:"box_id"`
	Message string `json:"message"`
}

// OutputSummaryResponse resumen de salidas agrupado por ítem.
type OutputSummaryResponse struct {
	Items      []OutputSummaryItem `json:"items"`
	GrandTotal int64               `json:"grand_total"`
}

// OutputSummaryItem una fila del resumen de salidas.
type OutputSummaryItem struct {
	ItemName string `json:"item_name"`
	Total    int64  `json:"total"`
	Percent  string `json:"percent"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
