package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/uniformes/expedicao-api/internal/application/dto"
	"github.com/uniformes/expedicao-api/internal/application/packing"
	"github.com/uniformes/expedicao-api/internal/domain"
	"github.com/uniformes/expedicao-api/internal/domain/entity"
	"github.com/uniformes/expedicao-api/internal/domain/repository"
)

// BoxHandler maneja las peticiones HTTP de cajas.
type BoxHandler struct {
	createUC *packing.CreateBoxUseCase
	adjustUC *packing.AdjustBoxUseCase
	queryUC  *packing.BoxQueryUseCase
}

// NewBoxHandler construye el handler.
func NewBoxHandler(createUC *packing.CreateBoxUseCase, adjustUC *packing.AdjustBoxUseCase, queryUC *packing.BoxQueryUseCase) *BoxHandler {
	return &BoxHandler{createUC: createUC, adjustUC: adjustUC, queryUC: queryUC}
}

// Create godoc
// @Summary      Crear una caja contra un pedido
// @Tags         boxes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBoxRequest  true  "order_id, box_number, items, order_lines"
// @Success      201   {object}  dto.BoxResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/boxes [post]
func (h *BoxHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "usuario inválido"})
	}
	var in dto.CreateBoxRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	input := packing.CreateBoxInput{
		OrderID:   in.OrderID,
		BoxNumber: in.BoxNumber,
		UserID:    userID,
	}
	for _, item := range in.Items {
		input.Lines = append(input.Lines, packing.BoxLineInput{VariantID: item.VariantID, Quantity: item.Quantity})
	}
	for _, line := range in.Lines {
		input.Deltas = append(input.Deltas, packing.OrderLineDelta{OrderLineID: line.OrderLineID, NewFulfilledQty: line.NewFulfilledQty})
	}

	box, err := h.createUC.CreateBox(c.Context(), input)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBoxResponse(box))
}

// Adjust godoc
// @Summary      Ajustar el contenido de una caja (estado objetivo)
// @Tags         boxes
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "ID de la caja"
// @Param        body  body  dto.AdjustBoxRequest  true  "order_id, items con cantidad deseada"
// @Success      200   {object}  dto.BoxResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/boxes/{id}/adjust [post]
func (h *BoxHandler) Adjust(c *fiber.Ctx) error {
	boxID, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de caja inválido"})
	}
	var in dto.AdjustBoxRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	input := packing.AdjustBoxInput{BoxID: boxID, OrderID: in.OrderID}
	for _, item := range in.Items {
		input.Targets = append(input.Targets, packing.TargetLine{VariantID: item.VariantID, Quantity: item.Quantity})
	}

	result, err := h.adjustUC.AdjustBox(c.Context(), input)
	if err != nil {
		return writeEngineError(c, err)
	}
	if id, notice, ok := result.Deleted(); ok {
		return c.JSON(dto.BoxDeletedResponse{Status: "DELETED", BoxID: id, Message: notice})
	}
	box, _ := result.Updated()
	return c.JSON(toBoxResponse(box))
}

// ListByOrder godoc
// @Summary      Listar las cajas de un pedido
// @Tags         boxes
// @Produce      json
// @Param        id  path  int  true  "ID del pedido"
// @Success      200  {array}   dto.BoxSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/boxes [get]
func (h *BoxHandler) ListByOrder(c *fiber.Ctx) error {
	orderID, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de pedido inválido"})
	}
	summaries, err := h.queryUC.GetBoxesForOrder(c.Context(), orderID)
	if err != nil {
		return writeEngineError(c, err)
	}
	out := make([]dto.BoxSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, toBoxSummaryResponse(s))
	}
	return c.JSON(out)
}

// Detail godoc
// @Summary      Detalle de una caja con pedido, escuela y proyecto
// @Tags         boxes
// @Produce      json
// @Param        id  path  int  true  "ID de la caja"
// @Success      200  {object}  dto.BoxDetailResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boxes/{id} [get]
func (h *BoxHandler) Detail(c *fiber.Ctx) error {
	boxID, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de caja inválido"})
	}
	detail, err := h.queryUC.GetBoxDetail(c.Context(), boxID)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(toBoxDetailResponse(detail))
}

// parseID convierte un parámetro de ruta a ID numérico positivo.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}

// currentUserID lee el usuario actuante del header X-User-ID.
// La autenticación real queda fuera de este servicio (gateway upstream).
func currentUserID(c *fiber.Ctx) (int64, error) {
	return parseID(c.Get("X-User-ID"))
}

// writeEngineError traduce los errores del motor a códigos HTTP.
func writeEngineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrOverFulfillment):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "OVER_FULFILLMENT", Message: "no se puede expedir más de lo solicitado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrTxRetryExhausted), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TX_CONFLICT", Message: "la transacción falló después de varios intentos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toBoxResponse(box *entity.Box) dto.BoxResponse {
	resp := dto.BoxResponse{
		ID:        box.ID,
		OrderID:   box.OrderID,
		BoxNumber: box.BoxNumber,
		TotalQty:  box.TotalQty,
		CreatedBy: box.CreatedBy,
		CreatedAt: box.CreatedAt,
		UpdatedAt: box.UpdatedAt,
	}
	for _, item := range box.Items {
		resp.Items = append(resp.Items, dto.BoxItemResponse{
			ID:        item.ID,
			VariantID: item.VariantID,
			ItemName:  item.ItemName,
			Gender:    item.Gender,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}
	return resp
}

func toBoxSummaryResponse(s repository.BoxSummary) dto.BoxSummaryResponse {
	return dto.BoxSummaryResponse{
		BoxResponse: toBoxResponse(&s.Box),
		CreatorName: s.CreatorName,
		OrderStatus: s.OrderStatus,
	}
}

func toBoxDetailResponse(d *repository.BoxDetail) dto.BoxDetailResponse {
	return dto.BoxDetailResponse{
		BoxResponse:  toBoxResponse(&d.Box),
		OrderStatus:  d.OrderStatus,
		SchoolName:   d.SchoolName,
		SchoolNumber: d.SchoolNumber,
		ProjectName:  d.ProjectName,
	}
}
