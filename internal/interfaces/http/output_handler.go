package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/uniformes/expedicao-api/internal/application/dto"
	"github.com/uniformes/expedicao-api/internal/application/packing"
)

// OutputHandler maneja las consultas sobre registros de salida.
type OutputHandler struct {
	summaryUC *packing.OutputSummaryUseCase
}

// NewOutputHandler construye el handler.
func NewOutputHandler(summaryUC *packing.OutputSummaryUseCase) *OutputHandler {
	return &OutputHandler{summaryUC: summaryUC}
}

// Summary godoc
// @Summary      Resumen de salidas agrupado por ítem
// @Tags         outputs
// @Produce      json
// @Success      200  {object}  dto.OutputSummaryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/outputs/summary [get]
func (h *OutputHandler) Summary(c *fiber.Ctx) error {
	rows, grandTotal, err := h.summaryUC.Summarize(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	resp := dto.OutputSummaryResponse{GrandTotal: grandTotal, Items: make([]dto.OutputSummaryItem, 0, len(rows))}
	for _, row := range rows {
		resp.Items = append(resp.Items, dto.OutputSummaryItem{ItemName: row.ItemName, Total: row.Total, Percent: row.Percent})
	}
	return c.JSON(resp)
}
