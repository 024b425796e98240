// Package metrics exports shared cell events to Prometheus.
//
// Usage:
//
//	collector := metrics.New(metrics.WithRegistry(reg))
//	var Counter = shared.NewCell(0, shared.WithName("counter"), shared.WithMonitor(collector))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "shared").
	Namespace string

	// Subsystem is the metrics subsystem (default: "cell").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

type Option func(*Config)

func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "shared",
		Subsystem: "cell",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector implements shared.Monitor. Every metric is labelled by cell name.
//
// Metrics:
//   - shared_cell_observers: attached observers
//   - shared_cell_updates_total: value-changing sets
//   - shared_cell_skipped_updates_total: sets short-circuited because the value was equal
//   - shared_cell_wakes_total: observer wakes
type Collector struct {
	observers *prometheus.GaugeVec
	updates   *prometheus.CounterVec
	skipped   *prometheus.CounterVec
	wakes     *prometheus.CounterVec
}

// New registers the collector's metrics. It panics if they are already registered on the registry.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)
	labels := []string{"cell"}

	return &Collector{
		observers: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "observers",
			Help:        "Number of observers attached to the cell",
			ConstLabels: config.ConstLabels,
		}, labels),

		updates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "updates_total",
			Help:        "Total number of sets that changed the cell value",
			ConstLabels: config.ConstLabels,
		}, labels),

		skipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "skipped_updates_total",
			Help:        "Total number of sets ignored because the value was unchanged",
			ConstLabels: config.ConstLabels,
		}, labels),

		wakes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "wakes_total",
			Help:        "Total number of observer wakes",
			ConstLabels: config.ConstLabels,
		}, labels),
	}
}

func (c *Collector) ObserverAttached(cell string) {
	c.observers.WithLabelValues(cell).Inc()
}

func (c *Collector) ObserverDetached(cell string) {
	c.observers.WithLabelValues(cell).Dec()
}

func (c *Collector) Updated(cell string, woken int) {
	c.updates.WithLabelValues(cell).Inc()
	c.wakes.WithLabelValues(cell).Add(float64(woken))
}

func (c *Collector) Skipped(cell string) {
	c.skipped.WithLabelValues(cell).Inc()
}
