package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	ShipmentsCreated   prometheus.Counter
	ShipmentsDelivered prometheus.Counter
	ShipmentsFailed    prometheus.Counter
	MovementSteps      prometheus.Counter
	SeedRetries        prometheus.Counter
	TaskErrors         *prometheus.CounterVec
	TaskDuration       *prometheus.HistogramVec
}

// New builds the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ShipmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_shipments_created_total",
			Help: "Total number of shipments created by the originator",
		}),
		ShipmentsDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_shipments_delivered_total",
			Help: "Total number of shipments resolved as delivered",
		}),
		ShipmentsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_shipments_failed_total",
			Help: "Total number of shipments resolved as failed and cancelled",
		}),
		MovementSteps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_movement_steps_total",
			Help: "Total number of vehicle movement steps persisted",
		}),
		SeedRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_seed_retries_total",
			Help: "Total number of unique-conflict retries while seeding users",
		}),
		TaskErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sim_task_errors_total",
			Help: "Total number of task invocations that ended in an error or panic",
		}, []string{"task"}),
		TaskDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sim_task_duration_seconds",
			Help:    "Duration of each task invocation",
			Buckets: prometheus.DefBuckets,
		}, []string{"task"}),
	}

	reg.MustRegister(
		m.ShipmentsCreated,
		m.ShipmentsDelivered,
		m.ShipmentsFailed,
		m.MovementSteps,
		m.SeedRetries,
		m.TaskErrors,
		m.TaskDuration,
	)
	return m
}
