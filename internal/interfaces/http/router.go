package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uniformes/expedicao-api/internal/application/packing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateBox     *packing.CreateBoxUseCase
	AdjustBox     *packing.AdjustBoxUseCase
	BoxQueries    *packing.BoxQueryUseCase
	OutputSummary *packing.OutputSummaryUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(MetricsMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	boxes := api.Group("/boxes")
	boxHandler := NewBoxHandler(deps.CreateBox, deps.AdjustBox, deps.BoxQueries)
	boxes.Post("/", boxHandler.Create)
	boxes.Get("/:id", boxHandler.Detail)
	boxes.Post("/:id/adjust", boxHandler.Adjust)

	orders := api.Group("/orders")
	orders.Get("/:id/boxes", boxHandler.ListByOrder)

	outputs := api.Group("/outputs")
	outputHandler := NewOutputHandler(deps.OutputSummary)
	outputs.Get("/summary", outputHandler.Summary)
}
