package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics set.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "ember").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for command duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the metrics set.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the command-duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "ember",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus metrics for one store. Attach with
// WithMetrics; use a distinct Registry per store to avoid duplicate
// registration.
//
// Metrics collected:
//   - ember_commands_total: counter of dispatched commands by name and status
//   - ember_command_duration_seconds: histogram of command duration by name
//   - ember_notifications_total: counter of change events by kind
//   - ember_observers: gauge of registered observers
//   - ember_keys: gauge of keys in the base map
//   - ember_resume_coalesced_total: counter of net events emitted by resume
type Metrics struct {
	commands        *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	notifications   *prometheus.CounterVec
	observers       prometheus.Gauge
	keys            prometheus.Gauge
	resumeCoalesced prometheus.Counter
}

// NewMetrics creates and registers the metrics set.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "commands_total",
			Help:        "Total number of dispatched commands",
			ConstLabels: config.ConstLabels,
		}, []string{"command", "status"}),

		commandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "command_duration_seconds",
			Help:        "Command execution duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"command"}),

		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "notifications_total",
			Help:        "Total number of change notifications by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		observers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "observers",
			Help:        "Number of registered observers",
			ConstLabels: config.ConstLabels,
		}),

		keys: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "keys",
			Help:        "Number of keys in the store",
			ConstLabels: config.ConstLabels,
		}),

		resumeCoalesced: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "resume_coalesced_total",
			Help:        "Net change events emitted when resuming observers",
			ConstLabels: config.ConstLabels,
		}),
	}
}
