// Package metrics provides Prometheus metrics definitions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

var (
	// HTTPRequestDuration tracks HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route", "status_code"},
	)

	// DBPoolConnections tracks database connection pool state.
	DBPoolConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "pool_connections",
			Help:      "Number of database connections by state",
		},
		[]string{"state"},
	)

	// OrdersCreated counts orders inserted at checkout.
	OrdersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Total number of orders created",
		},
	)

	// PaymentFailures counts failed calls to the payment processor.
	PaymentFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "failures_total",
			Help:      "Total number of failed payment processor calls",
		},
		[]string{"gateway"},
	)
)
