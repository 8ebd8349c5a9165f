package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/uniformes/expedicao-api/pkg/metrics"
)

// MetricsMiddleware registra cada petición HTTP en Prometheus por método,
// ruta y código de estado.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).Inc()
		return err
	}
}
