package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas del motor de conciliación y del servidor HTTP.
var (
	// TxAttempts cuenta los intentos de transacción por operación del motor.
	TxAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "expedicao_tx_attempts_total",
			Help: "Total de intentos de transacción del motor de conciliación",
		},
		[]string{"operation"},
	)

	// TxConflicts cuenta los conflictos de serialización que provocaron reintento.
	TxConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "expedicao_tx_conflicts_total",
			Help: "Total de conflictos de serialización detectados",
		},
	)

	// BoxesCreated cuenta las cajas creadas.
	BoxesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "expedicao_boxes_created_total",
			Help: "Total de cajas creadas",
		},
	)

	// BoxesDeleted cuenta las cajas eliminadas por quedar vacías en un ajuste.
	BoxesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "expedicao_boxes_deleted_total",
			Help: "Total de cajas eliminadas al quedar vacías",
		},
	)

	// HTTPRequestsTotal cuenta las peticiones HTTP por método, ruta y estado.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "expedicao_http_requests_total",
			Help: "Total de peticiones HTTP",
		},
		[]string{"method", "path", "status"},
	)
)
